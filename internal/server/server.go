package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pscheid92/reviewpulse/internal/config"
	"github.com/pscheid92/reviewpulse/internal/domain"
	apperrors "github.com/pscheid92/reviewpulse/internal/errors"
	"github.com/pscheid92/reviewpulse/internal/logging"
	"golang.org/x/time/rate"
)

// datasetChecker verifies the backing dataset is reachable. Used by the
// readiness probe only; handlers go through the application layer.
type datasetChecker interface {
	Check(ctx context.Context) error
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	app       domain.AppService
	dataset   datasetChecker
	startTime time.Time

	// refreshLimiter throttles POST /init_all. A wholesale refresh reloads
	// and rescores the entire dataset.
	refreshLimiter *rate.Limiter
}

func NewServer(cfg *config.Config, app domain.AppService, dataset datasetChecker) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(correlationMiddleware())
	e.Use(requestLogger())
	e.Use(apperrors.Middleware())

	srv := &Server{
		echo:           e,
		config:         cfg,
		app:            app,
		dataset:        dataset,
		startTime:      time.Now(),
		refreshLimiter: rate.NewLimiter(rate.Every(30*time.Second), 1),
	}

	srv.registerRoutes()
	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// correlationMiddleware assigns each request a short correlation ID, puts it
// on the request context for log enrichment, and echoes it back in a header.
func correlationMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get("X-Correlation-ID")
			if id == "" {
				id = logging.NewCorrelationID()
			}
			ctx := logging.WithCorrelationID(c.Request().Context(), id)
			c.SetRequest(c.Request().WithContext(ctx))
			c.Response().Header().Set("X-Correlation-ID", id)
			return next(c)
		}
	}
}

// requestLogger logs one line per request via slog.
func requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			req := c.Request()
			slog.InfoContext(req.Context(), "Request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", c.Response().Status,
				"duration_ms", time.Since(start).Milliseconds())
			return err
		}
	}
}
