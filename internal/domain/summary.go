package domain

// SeriesDirection is the cheap two-point (first vs. last) trend of a series.
type SeriesDirection string

const (
	DirectionIncreasing SeriesDirection = "Increasing"
	DirectionDecreasing SeriesDirection = "Decreasing"
	DirectionStable     SeriesDirection = "Stable"
)

// SeriesExtreme is a value together with the week it occurred in,
// ISO-formatted for transport.
type SeriesExtreme struct {
	Value float64 `json:"value"`
	Date  string  `json:"date"`
}

// SeriesSummary is the fixed-shape descriptive record for one series. It is
// fully primitive so it can cross the boundary into presentation unchanged.
// An empty input series yields Empty=true with only Label and Message set.
type SeriesSummary struct {
	Label      string          `json:"label"`
	Empty      bool            `json:"-"`
	Message    string          `json:"message,omitempty"`
	Average    float64         `json:"average"`
	Latest     float64         `json:"latest"`
	Min        SeriesExtreme   `json:"min"`
	Max        SeriesExtreme   `json:"max"`
	Trend      SeriesDirection `json:"trend"`
	Prediction string          `json:"prediction"`
}
