package sentiment

import (
	"log/slog"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/pscheid92/reviewpulse/internal/domain"
	"github.com/pscheid92/reviewpulse/internal/metrics"
)

// Scorer computes hybrid sentiment scores. Safe for concurrent use: the
// VADER analyzer and the lexicon are read-only after construction.
type Scorer struct {
	vader   *govader.SentimentIntensityAnalyzer
	lexicon *lexiconScorer
}

// NewScorer creates a scorer with the default VADER lexicon.
func NewScorer() *Scorer {
	return &Scorer{
		vader:   govader.NewSentimentIntensityAnalyzer(),
		lexicon: newLexiconScorer(),
	}
}

// Score maps one unit of text to a hybrid sentiment score. Empty input
// yields a neutral zero score and a Neutral label; it is a normal outcome,
// not a degradation.
func (s *Scorer) Score(text string) domain.SentimentScore {
	metrics.ReviewsScoredTotal.Inc()

	text = strings.TrimSpace(text)
	if text == "" {
		return domain.SentimentScore{Label: domain.LabelNeutral}
	}

	vaderScore, vaderOK := s.scoreVader(text)
	lexiconScore := s.lexicon.Score(text)

	score := domain.SentimentScore{
		VaderScore:   vaderScore,
		LexiconScore: lexiconScore,
		Degraded:     !vaderOK,
	}
	score.Combined = (score.VaderScore + score.LexiconScore) / 2
	score.Label = labelFor(score.Combined)

	if score.Degraded {
		metrics.ScorerDegradationsTotal.Inc()
	}
	return score
}

// scoreVader wraps the VADER analyzer with panic recovery. A failure on one
// review must never abort the whole pipeline.
func (s *Scorer) scoreVader(text string) (score float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.Warn("VADER scoring failed, substituting neutral", "panic", r)
			score, ok = 0, false
		}
	}()
	return s.vader.PolarityScores(text).Compound, true
}

// labelFor buckets a hybrid score into the five-label set.
func labelFor(combined float64) domain.SentimentLabel {
	switch {
	case combined >= 0.6:
		return domain.LabelStrongPositive
	case combined <= -0.6:
		return domain.LabelStrongNegative
	case combined > 0.05:
		return domain.LabelMildPositive
	case combined < -0.05:
		return domain.LabelMildNegative
	default:
		return domain.LabelNeutral
	}
}
