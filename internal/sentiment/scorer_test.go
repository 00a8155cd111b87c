package sentiment

import (
	"math"
	"strings"
	"testing"

	"github.com/pscheid92/reviewpulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_EmptyInputNeutral(t *testing.T) {
	scorer := NewScorer()

	for _, input := range []string{"", "   ", "\t\n"} {
		score := scorer.Score(input)
		assert.Zero(t, score.Combined, "input %q", input)
		assert.Zero(t, score.VaderScore)
		assert.Zero(t, score.LexiconScore)
		assert.Equal(t, domain.LabelNeutral, score.Label)
		assert.False(t, score.Degraded)
	}
}

func TestScore_PositiveText(t *testing.T) {
	scorer := NewScorer()

	score := scorer.Score("Absolutely love this case, great quality and fits perfectly")
	assert.Greater(t, score.Combined, 0.05)
	assert.Contains(t, []domain.SentimentLabel{domain.LabelMildPositive, domain.LabelStrongPositive}, score.Label)
}

func TestScore_NegativeText(t *testing.T) {
	scorer := NewScorer()

	score := scorer.Score("Terrible shirt, cheap flimsy fabric, shrank after one wash, waste of money")
	assert.Less(t, score.Combined, -0.05)
	assert.Contains(t, []domain.SentimentLabel{domain.LabelMildNegative, domain.LabelStrongNegative}, score.Label)
}

func TestScore_BoundedAndFinite(t *testing.T) {
	scorer := NewScorer()

	inputs := []string{
		"ok",
		"love love love love love",
		"hate hate hate hate hate",
		strings.Repeat("great terrible ", 500),
		"1234567890 !@#$%",
		"ñ ö ü 中文 テスト",
	}

	for _, input := range inputs {
		score := scorer.Score(input)
		require.False(t, math.IsNaN(score.Combined), "input %q", input)
		require.False(t, math.IsInf(score.Combined, 0), "input %q", input)
		assert.GreaterOrEqual(t, score.Combined, -1.0)
		assert.LessOrEqual(t, score.Combined, 1.0)
		assert.Contains(t, []domain.SentimentLabel{
			domain.LabelStrongPositive, domain.LabelMildPositive, domain.LabelNeutral,
			domain.LabelMildNegative, domain.LabelStrongNegative,
		}, score.Label)
	}
}

func TestScore_CombinedIsMean(t *testing.T) {
	scorer := NewScorer()

	score := scorer.Score("great product but the strap broke")
	assert.InDelta(t, (score.VaderScore+score.LexiconScore)/2, score.Combined, 1e-9)
}

func TestLabelFor_Thresholds(t *testing.T) {
	tests := []struct {
		combined float64
		want     domain.SentimentLabel
	}{
		{0.8, domain.LabelStrongPositive},
		{0.6, domain.LabelStrongPositive},
		{0.59, domain.LabelMildPositive},
		{0.06, domain.LabelMildPositive},
		{0.05, domain.LabelNeutral},
		{0.0, domain.LabelNeutral},
		{-0.05, domain.LabelNeutral},
		{-0.06, domain.LabelMildNegative},
		{-0.59, domain.LabelMildNegative},
		{-0.6, domain.LabelStrongNegative},
		{-0.9, domain.LabelStrongNegative},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, labelFor(tt.combined), "combined=%v", tt.combined)
	}
}

func TestLexicon_Negation(t *testing.T) {
	lex := newLexiconScorer()

	assert.Positive(t, lex.Score("this is good"))
	assert.Negative(t, lex.Score("this is not good"))
	assert.Positive(t, lex.Score("never broke once"))
}

func TestLexicon_NoMatchesNeutral(t *testing.T) {
	lex := newLexiconScorer()
	assert.Zero(t, lex.Score("the package arrived on a tuesday"))
}
