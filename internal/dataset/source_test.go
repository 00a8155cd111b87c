package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pscheid92/reviewpulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `asin,reviewTime,overall,reviewerID,reviewText,summary
B00007GDFV,"09 1, 2014",5,A1,Great case fits perfectly,phone case
b00007gdfv,"09 8, 2014",4,A2,Still holding up,phone case
B00062NHH0,2014-09-02,2,A3,Shirt shrank after one wash,shirt
B00062NHH0,not-a-date,1,A4,This row is dropped,shirt
B00062NHH0,"09 9, 2014",five,A5,This row is dropped too,shirt
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reviews.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))
	return path
}

func TestLoadAll_ParsesAndDropsMalformed(t *testing.T) {
	src := NewCSVSource(writeSample(t))

	reviews, err := src.LoadAll(context.Background())
	require.NoError(t, err)

	// 5 data rows, 2 dropped (bad timestamp, bad rating)
	require.Len(t, reviews, 3)

	first := reviews[0]
	assert.Equal(t, "B00007GDFV", first.ProductID)
	assert.Equal(t, time.Date(2014, 9, 1, 0, 0, 0, 0, time.UTC), first.ReviewedAt)
	assert.Equal(t, 5.0, first.Rating)
	assert.Equal(t, "A1", first.ReviewerID)
	assert.Contains(t, first.Text, "Great case")
	assert.Contains(t, first.Text, "phone case")
	assert.Equal(t, "phone case", first.Summary)
}

func TestLoadAll_NormalizesProductIDCase(t *testing.T) {
	src := NewCSVSource(writeSample(t))

	reviews, err := src.LoadAll(context.Background())
	require.NoError(t, err)

	for _, r := range reviews[:2] {
		assert.Equal(t, "B00007GDFV", r.ProductID)
	}
}

func TestLoadProduct_FiltersCaseInsensitive(t *testing.T) {
	src := NewCSVSource(writeSample(t))

	reviews, err := src.LoadProduct(context.Background(), "b00007gdfv")
	require.NoError(t, err)
	require.Len(t, reviews, 2)

	reviews, err = src.LoadProduct(context.Background(), "B00062NHH0")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
}

func TestLoadProduct_UnknownProductEmptyNotError(t *testing.T) {
	src := NewCSVSource(writeSample(t))

	reviews, err := src.LoadProduct(context.Background(), "B0000MISSING")
	require.NoError(t, err)
	assert.Empty(t, reviews)
}

func TestLoadAll_MissingFile(t *testing.T) {
	src := NewCSVSource(filepath.Join(t.TempDir(), "nope.csv"))

	_, err := src.LoadAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDatasetUnavailable)
}

func TestLoadAll_MissingRequiredColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reviews.csv")
	require.NoError(t, os.WriteFile(path, []byte("foo,bar\n1,2\n"), 0o644))
	src := NewCSVSource(path)

	_, err := src.LoadAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDatasetUnavailable)
	assert.Contains(t, err.Error(), "asin")
}

func TestLoadAll_RemoteHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	src := NewCSVSource(srv.URL)
	reviews, err := src.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, reviews, 3)
}

func TestLoadAll_RemoteHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	src := NewCSVSource(srv.URL)
	_, err := src.LoadAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDatasetUnavailable)
}

func TestParseTimestamp_Layouts(t *testing.T) {
	tests := []struct {
		raw  string
		ok   bool
		want time.Time
	}{
		{"09 1, 2014", true, time.Date(2014, 9, 1, 0, 0, 0, 0, time.UTC)},
		{"2014-09-01", true, time.Date(2014, 9, 1, 0, 0, 0, 0, time.UTC)},
		{"2014-09-01T12:30:00Z", true, time.Date(2014, 9, 1, 12, 30, 0, 0, time.UTC)},
		{"", false, time.Time{}},
		{"last tuesday", false, time.Time{}},
	}

	for _, tt := range tests {
		got, ok := parseTimestamp(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw=%q", tt.raw)
		if tt.ok {
			assert.True(t, got.Equal(tt.want), "raw=%q got=%v", tt.raw, got)
		}
	}
}
