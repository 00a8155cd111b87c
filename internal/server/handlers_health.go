package server

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/reviewpulse/internal/version"
)

const readinessTimeout = 5 * time.Second

func (s *Server) handleHome(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Review sentiment forecasting service is running",
		"available_endpoints": []string{
			"/products",
			"/init_all (POST)",
			"/init_product (POST)",
			"/forecast (GET/POST)",
			"/sentiment (GET/POST)",
			"/product_summary (GET/POST)",
			"/graph/:name",
		},
	})
}

func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(s.startTime).Seconds(),
	})
}

// handleReadiness reports ready only when the backing dataset is reachable.
// A service that cannot load reviews can serve nothing useful.
func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessTimeout)
	defer cancel()

	if err := s.dataset.Check(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status":       "unhealthy",
			"failed_check": "dataset",
			"error":        err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(http.StatusOK, version.Get())
}
