package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pscheid92/reviewpulse/internal/domain"
	"github.com/pscheid92/reviewpulse/internal/metrics"
)

// timestampLayouts are tried in order. The first is the classic Amazon
// review dump format ("09 1, 2014").
var timestampLayouts = []string{
	"01 2, 2006",
	"2006-01-02",
	time.RFC3339,
}

// CSVSource reads reviews from a CSV dataset, local or remote.
type CSVSource struct {
	path    string
	fetcher *remoteFetcher // nil for local files
}

var _ domain.ReviewSource = (*CSVSource)(nil)

// NewCSVSource creates a source for the given path. Paths starting with
// http:// or https:// are fetched over the network.
func NewCSVSource(path string) *CSVSource {
	s := &CSVSource{path: path}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		s.fetcher = newRemoteFetcher(path)
	}
	return s
}

// LoadAll reads and parses the whole dataset.
func (s *CSVSource) LoadAll(ctx context.Context) ([]domain.Review, error) {
	start := time.Now()

	rc, err := s.open(ctx)
	if err != nil {
		metrics.DatasetLoadFailures.Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrDatasetUnavailable, err)
	}
	defer rc.Close()

	reviews, err := parse(rc)
	if err != nil {
		metrics.DatasetLoadFailures.Inc()
		return nil, fmt.Errorf("%w: %v", domain.ErrDatasetUnavailable, err)
	}

	metrics.DatasetLoadDuration.Observe(time.Since(start).Seconds())
	slog.DebugContext(ctx, "Dataset loaded", "reviews", len(reviews), "duration", time.Since(start))
	return reviews, nil
}

// LoadProduct reads the dataset and keeps only the given product's reviews.
func (s *CSVSource) LoadProduct(ctx context.Context, productID string) ([]domain.Review, error) {
	all, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	want := strings.ToUpper(strings.TrimSpace(productID))
	var out []domain.Review
	for _, r := range all {
		if strings.ToUpper(strings.TrimSpace(r.ProductID)) == want {
			out = append(out, r)
		}
	}
	return out, nil
}

// Check verifies the dataset is reachable without parsing it. Local paths
// stat the file; remote paths open the response and discard it.
func (s *CSVSource) Check(ctx context.Context) error {
	if s.fetcher != nil {
		rc, err := s.fetcher.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrDatasetUnavailable, err)
		}
		return rc.Close()
	}
	if _, err := os.Stat(s.path); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDatasetUnavailable, err)
	}
	return nil
}

func (s *CSVSource) open(ctx context.Context) (io.ReadCloser, error) {
	if s.fetcher != nil {
		return s.fetcher.Fetch(ctx)
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	return f, nil
}

// parse reads CSV rows into reviews, dropping malformed rows. The header row
// names the columns; order does not matter.
func parse(r io.Reader) ([]domain.Review, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"asin", "reviewTime", "overall", "reviewerID"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("dataset missing column %q", required)
		}
	}

	field := func(row []string, name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	var reviews []domain.Review
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A ragged row is a row problem, not a dataset problem.
			metrics.DatasetRowsDropped.WithLabelValues("short_row").Inc()
			continue
		}

		ts, ok := parseTimestamp(field(row, "reviewTime"))
		if !ok {
			metrics.DatasetRowsDropped.WithLabelValues("bad_timestamp").Inc()
			continue
		}

		rating, err := strconv.ParseFloat(field(row, "overall"), 64)
		if err != nil {
			metrics.DatasetRowsDropped.WithLabelValues("bad_rating").Inc()
			continue
		}

		summary := field(row, "summary")
		text := strings.TrimSpace(field(row, "reviewText") + " " + summary)

		reviews = append(reviews, domain.Review{
			ProductID:  strings.ToUpper(field(row, "asin")),
			ReviewedAt: ts,
			Rating:     rating,
			ReviewerID: field(row, "reviewerID"),
			Text:       text,
			Summary:    summary,
		})
	}

	return reviews, nil
}

func parseTimestamp(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}
