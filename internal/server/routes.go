package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/version", s.handleVersion)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Service banner
	s.echo.GET("/", s.handleHome)
	s.echo.GET("/favicon.ico", func(c echo.Context) error { return c.NoContent(204) })

	// Product catalogue
	s.echo.GET("/products", s.handleProducts)

	// Initialization (heavy, hence POST only; /init_all is rate limited)
	s.echo.POST("/init_all", s.handleInitAll)
	s.echo.POST("/init_product", s.handleInitProduct)

	// Read endpoints with lazy initialization
	s.echo.GET("/forecast", s.handleForecast)
	s.echo.POST("/forecast", s.handleForecast)
	s.echo.GET("/sentiment", s.handleSentiment)
	s.echo.POST("/sentiment", s.handleSentiment)
	s.echo.GET("/product_summary", s.handleProductSummary)
	s.echo.POST("/product_summary", s.handleProductSummary)

	// Frontend graph feed, addressed by display name
	s.echo.GET("/graph/:name", s.handleGraph)
}
