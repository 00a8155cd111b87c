package dataset

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

const remoteFetchTimeout = 30 * time.Second

// remoteFetcher retrieves the dataset over HTTP behind a circuit breaker.
// Once the upstream has failed repeatedly, further loads fail fast instead
// of stalling every request for the full HTTP timeout.
type remoteFetcher struct {
	url     string
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
}

func newRemoteFetcher(url string) *remoteFetcher {
	return &remoteFetcher{
		url:    url,
		client: &http.Client{Timeout: remoteFetchTimeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "dataset",
			MaxRequests: 1,
			Interval:    60 * time.Second,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.Requests >= 3 && float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				slog.Warn("Dataset circuit breaker state changed",
					"from", from.String(),
					"to", to.String(),
				)
			},
		}),
	}
}

func (f *remoteFetcher) Fetch(ctx context.Context) (io.ReadCloser, error) {
	body, err := f.breaker.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch dataset: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch dataset: unexpected status %d", resp.StatusCode)
		}

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("read dataset body: %w", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	return io.NopCloser(bytes.NewReader(body.([]byte))), nil
}
