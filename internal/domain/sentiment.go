package domain

// SentimentLabel is the five-way per-review sentiment bucket.
type SentimentLabel string

const (
	LabelStrongPositive SentimentLabel = "Strong Positive"
	LabelMildPositive   SentimentLabel = "Mild Positive"
	LabelNeutral        SentimentLabel = "Neutral"
	LabelMildNegative   SentimentLabel = "Mild Negative"
	LabelStrongNegative SentimentLabel = "Strong Negative"
)

// SentimentScore is the result of scoring one unit of text. Combined is the
// mean of the two method scores. Degraded is set when a scoring method
// failed and a neutral zero was substituted, so recovery is visible to the
// caller rather than silent.
type SentimentScore struct {
	VaderScore   float64
	LexiconScore float64
	Combined     float64
	Label        SentimentLabel
	Degraded     bool
}
