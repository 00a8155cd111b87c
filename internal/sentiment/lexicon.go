package sentiment

import (
	"strings"
	"unicode"
)

// lexiconScorer is the second, independent scoring method: plain word-set
// polarity over a compact retail-review lexicon. Polarity is
// (positive - negative) / matched words, in [-1, 1].
type lexiconScorer struct {
	positive map[string]struct{}
	negative map[string]struct{}
	negators map[string]struct{}
}

func newLexiconScorer() *lexiconScorer {
	return &lexiconScorer{
		positive: wordSet(
			"good", "great", "excellent", "amazing", "awesome", "love",
			"loved", "loves", "perfect", "best", "fantastic", "wonderful",
			"nice", "happy", "comfortable", "durable", "sturdy", "recommend",
			"recommended", "quality", "works", "worked", "fits", "fit",
			"beautiful", "soft", "easy", "fast", "solid", "satisfied",
		),
		negative: wordSet(
			"bad", "terrible", "awful", "horrible", "hate", "hated",
			"worst", "poor", "broken", "broke", "breaks", "cheap", "flimsy",
			"disappointed", "disappointing", "defective", "useless",
			"waste", "refund", "returned", "return", "uncomfortable",
			"small", "tight", "ripped", "tore", "shrank", "faded", "slow",
		),
		negators: wordSet("not", "no", "never", "dont", "didnt", "doesnt", "wont", "cant", "isnt", "wasnt"),
	}
}

// Score computes lexicon polarity for the text. Unmatched text is neutral
// zero. A sentiment word preceded by a negator flips sign.
func (l *lexiconScorer) Score(text string) float64 {
	words := tokenize(text)
	if len(words) == 0 {
		return 0
	}

	var positive, negative, matched int
	for i, w := range words {
		sign := 1
		if i > 0 {
			if _, ok := l.negators[words[i-1]]; ok {
				sign = -1
			}
		}

		if _, ok := l.positive[w]; ok {
			matched++
			if sign > 0 {
				positive++
			} else {
				negative++
			}
			continue
		}
		if _, ok := l.negative[w]; ok {
			matched++
			if sign > 0 {
				negative++
			} else {
				positive++
			}
		}
	}

	if matched == 0 {
		return 0
	}
	return float64(positive-negative) / float64(matched)
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func wordSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
