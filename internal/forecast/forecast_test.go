package forecast

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/pscheid92/reviewpulse/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func weeklySeries(values ...float64) domain.WeeklySeries {
	start := time.Date(2014, 9, 1, 0, 0, 0, 0, time.UTC)
	out := make(domain.WeeklySeries, len(values))
	for i, v := range values {
		out[i] = domain.WeeklyPoint{Week: start.AddDate(0, 0, 7*i), Value: v}
	}
	return out
}

func TestNew_EngineSelection(t *testing.T) {
	holt, err := New("holt")
	require.NoError(t, err)
	assert.Equal(t, "holt", holt.Name())

	dec, err := New("decompose")
	require.NoError(t, err)
	assert.Equal(t, "decompose", dec.Name())

	_, err = New("prophet")
	assert.Error(t, err)
}

func TestForecast_ShortHistoryEmpty(t *testing.T) {
	for _, engine := range []domain.Forecaster{&HoltForecaster{}, &DecomposeForecaster{}} {
		for n := 0; n < MinHistory; n++ {
			series := weeklySeries(make([]float64, n)...)
			got := engine.Forecast(context.Background(), series, 12)
			assert.Empty(t, got, "engine=%s n=%d", engine.Name(), n)
		}
	}
}

func TestForecast_HorizonAndOrdering(t *testing.T) {
	series := weeklySeries(-0.1, -0.05, 0.0, 0.2, 0.1, 0.15)

	for _, engine := range []domain.Forecaster{&HoltForecaster{}, &DecomposeForecaster{}} {
		got := engine.Forecast(context.Background(), series, 12)
		require.Len(t, got, 12, "engine=%s", engine.Name())

		last := series.LastWeek()
		for i, p := range got {
			assert.True(t, p.Week.After(last), "engine=%s point %d", engine.Name(), i)
			last = p.Week
			assert.False(t, math.IsNaN(p.Value))
			assert.False(t, math.IsInf(p.Value, 0))
		}
	}
}

func TestForecast_Deterministic(t *testing.T) {
	// Same input must reproduce the same forecast and label across runs.
	series := weeklySeries(-0.1, -0.05, 0.0, 0.2, 0.1, 0.15)

	for _, engine := range []domain.Forecaster{&HoltForecaster{}, &DecomposeForecaster{}} {
		first := engine.Forecast(context.Background(), series, 12)
		require.NotEmpty(t, first, "engine=%s", engine.Name())
		label := Classify(first)
		assert.NotEqual(t, domain.TrendInsufficient, label)

		for i := 0; i < 5; i++ {
			again := engine.Forecast(context.Background(), series, 12)
			assert.Equal(t, first, again, "engine=%s", engine.Name())
			assert.Equal(t, label, Classify(again))
		}
	}
}

func TestForecast_UpwardTrendProjectsUp(t *testing.T) {
	series := weeklySeries(0.0, 0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7)

	for _, engine := range []domain.Forecaster{&HoltForecaster{}, &DecomposeForecaster{}} {
		got := engine.Forecast(context.Background(), series, 4)
		require.Len(t, got, 4, "engine=%s", engine.Name())
		assert.Greater(t, got[0].Value, 0.5, "engine=%s", engine.Name())
		assert.Greater(t, got[3].Value, got[0].Value, "engine=%s", engine.Name())
	}
}

func TestForecast_ConstantSeriesStable(t *testing.T) {
	series := weeklySeries(0.3, 0.3, 0.3, 0.3, 0.3, 0.3, 0.3)

	for _, engine := range []domain.Forecaster{&HoltForecaster{}, &DecomposeForecaster{}} {
		got := engine.Forecast(context.Background(), series, 6)
		require.Len(t, got, 6, "engine=%s", engine.Name())
		for _, p := range got {
			assert.InDelta(t, 0.3, p.Value, 0.05, "engine=%s", engine.Name())
		}
	}
}

func TestForecast_CancelledContextEmpty(t *testing.T) {
	series := weeklySeries(-0.1, -0.05, 0.0, 0.2, 0.1, 0.15)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, engine := range []domain.Forecaster{&HoltForecaster{}, &DecomposeForecaster{}} {
		got := engine.Forecast(ctx, series, 12)
		assert.Empty(t, got, "engine=%s", engine.Name())
	}
}

func TestForecast_NaNGapsZeroFilled(t *testing.T) {
	series := weeklySeries(0.2, math.NaN(), 0.3, math.NaN(), 0.1, 0.2, 0.25)

	for _, engine := range []domain.Forecaster{&HoltForecaster{}, &DecomposeForecaster{}} {
		got := engine.Forecast(context.Background(), series, 4)
		require.Len(t, got, 4, "engine=%s", engine.Name())
		for _, p := range got {
			assert.False(t, math.IsNaN(p.Value), "engine=%s", engine.Name())
		}
	}
}

func TestSmooth_CenteredWindow(t *testing.T) {
	series := weeklySeries(1, 2, 3, 4, 5)

	got := Smooth(series, 3)
	require.Len(t, got, 3)

	// Centered means: (1+2+3)/3, (2+3+4)/3, (3+4+5)/3
	assert.InDelta(t, 2.0, got[0].Value, 1e-9)
	assert.InDelta(t, 3.0, got[1].Value, 1e-9)
	assert.InDelta(t, 4.0, got[2].Value, 1e-9)

	// Smoothed points keep their original week stamps (no edge values).
	assert.Equal(t, series[1].Week, got[0].Week)
	assert.Equal(t, series[3].Week, got[2].Week)
}

func TestSmooth_TooShort(t *testing.T) {
	assert.Nil(t, Smooth(weeklySeries(1, 2), 3))
	assert.Nil(t, Smooth(nil, 3))
}

func TestClassify_Total(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   domain.TrendLabel
	}{
		{"empty", nil, domain.TrendInsufficient},
		{"positive mean", []float64{0.2, 0.3, 0.4}, domain.TrendImprove},
		{"negative mean", []float64{-0.2, -0.3, -0.4}, domain.TrendDecline},
		{"near zero", []float64{0.05, -0.05, 0.0}, domain.TrendStable},
		{"boundary positive", []float64{0.1, 0.1, 0.1}, domain.TrendStable},
		{"boundary negative", []float64{-0.1, -0.1, -0.1}, domain.TrendStable},
		{"just above boundary", []float64{0.1001}, domain.TrendImprove},
		{"just below boundary", []float64{-0.1001}, domain.TrendDecline},
		{"single element", []float64{0.5}, domain.TrendImprove},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(weeklySeries(tt.values...)))
		})
	}
}
