package server

import (
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/reviewpulse/internal/domain"
	apperrors "github.com/pscheid92/reviewpulse/internal/errors"
)

const dateLayout = "2006-01-02"

// identifierRequest is the JSON body accepted by POST endpoints. Either
// field may carry the identifier; product_id wins when both are set.
type identifierRequest struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
}

type forecastRow struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// sentimentRow carries a nullable score: weeks inside the observed span
// with no reviews have no defined sentiment.
type sentimentRow struct {
	Date  string   `json:"date"`
	Score *float64 `json:"score"`
}

// extractIdentifier pulls the product identifier from query parameters or,
// for POST, from the JSON body. A malformed body reads as empty rather than
// failing the request.
func extractIdentifier(c echo.Context) (string, error) {
	raw := c.QueryParam("product_id")
	if raw == "" {
		raw = c.QueryParam("product_name")
	}
	if raw == "" && c.Request().Method == http.MethodPost {
		var req identifierRequest
		if err := c.Bind(&req); err == nil {
			raw = req.ProductID
			if raw == "" {
				raw = req.ProductName
			}
		}
	}
	if strings.TrimSpace(raw) == "" {
		return "", apperrors.ValidationError("missing 'product_id' or 'product_name'")
	}
	return raw, nil
}

// ensureProduct resolves the request's identifier and lazily initializes
// the product.
func (s *Server) ensureProduct(c echo.Context) (string, error) {
	raw, err := extractIdentifier(c)
	if err != nil {
		return "", err
	}
	id, err := s.app.Resolve(raw)
	if err != nil {
		return "", err
	}
	if err := s.app.EnsureReady(c.Request().Context(), id); err != nil {
		return "", err
	}
	return id, nil
}

func forecastRows(series domain.WeeklySeries) []forecastRow {
	out := make([]forecastRow, 0, len(series))
	for _, p := range series {
		if math.IsNaN(p.Value) {
			continue
		}
		out = append(out, forecastRow{Date: p.Week.Format(dateLayout), Value: p.Value})
	}
	return out
}

func sentimentRows(series domain.WeeklySeries) []sentimentRow {
	out := make([]sentimentRow, 0, len(series))
	for _, p := range series {
		row := sentimentRow{Date: p.Week.Format(dateLayout)}
		if !math.IsNaN(p.Value) {
			v := p.Value
			row.Score = &v
		}
		out = append(out, row)
	}
	return out
}

func (s *Server) handleProducts(c echo.Context) error {
	products := s.app.Products()
	return c.JSON(http.StatusOK, map[string]any{
		"count":    len(products),
		"products": products,
	})
}

func (s *Server) handleInitAll(c echo.Context) error {
	if !s.refreshLimiter.Allow() {
		return echo.NewHTTPError(http.StatusTooManyRequests, "refresh rate limit exceeded, try again later")
	}

	n, err := s.app.RefreshAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "ok",
		"products": n,
	})
}

func (s *Server) handleInitProduct(c echo.Context) error {
	raw, err := extractIdentifier(c)
	if err != nil {
		return err
	}
	id, err := s.app.Resolve(raw)
	if err != nil {
		return err
	}
	if err := s.app.EnsureReady(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":     "initialized",
		"product_id": id,
	})
}

func (s *Server) handleForecast(c echo.Context) error {
	id, err := s.ensureProduct(c)
	if err != nil {
		return err
	}
	entry, err := s.app.GetForecast(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"product_id":   id,
		"product_name": entry.DisplayName,
		"forecast":     forecastRows(entry.Forecast),
	})
}

func (s *Server) handleSentiment(c echo.Context) error {
	id, err := s.ensureProduct(c)
	if err != nil {
		return err
	}
	series, err := s.app.GetSentiment(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{
		"product_id": id,
		"sentiment":  sentimentRows(series),
	})
}

func (s *Server) handleProductSummary(c echo.Context) error {
	id, err := s.ensureProduct(c)
	if err != nil {
		return err
	}
	sum, err := s.app.GetSummary(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}

// handleGraph serves the frontend graph feed by display name: future-only
// forecast points split at the last historical week, plus the full
// sentiment history.
func (s *Server) handleGraph(c echo.Context) error {
	name := c.Param("name")
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if strings.TrimSpace(name) == "" {
		return apperrors.ValidationError("missing product name")
	}

	id, err := s.app.Resolve(name)
	if err != nil {
		return err
	}
	if err := s.app.EnsureReady(c.Request().Context(), id); err != nil {
		return err
	}

	entry, err := s.app.GetForecast(id)
	if err != nil {
		return err
	}
	series, err := s.app.GetSentiment(id)
	if err != nil {
		return err
	}

	lastHist := series.LastWeek()
	var future domain.WeeklySeries
	for _, p := range entry.Forecast {
		if p.Week.After(lastHist) {
			future = append(future, p)
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"product_id":   id,
		"product_name": entry.DisplayName,
		"forecast":     forecastRows(future),
		"sentiment":    sentimentRows(series),
	})
}
