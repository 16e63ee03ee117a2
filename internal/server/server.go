// Package server exposes the routing pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/ppiankov/claimroute/internal/cache"
	"github.com/ppiankov/claimroute/internal/ingest"
	"github.com/ppiankov/claimroute/internal/model"
	"github.com/ppiankov/claimroute/internal/pipeline"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Engine routes FNOL document text
//
//go:generate mockgen -destination=mocks/mock_engine.go -package=mocks -source=server.go Engine
type Engine interface {
	Process(text string) model.ClaimDecision
	Tables() pipeline.Tables
}

// Server provides HTTP endpoints for claim routing
type Server struct {
	echo    *echo.Echo
	engine  Engine
	loader  *ingest.Loader
	cache   cache.Cache
	metrics *Metrics
	logger  *zap.Logger
	config  *model.ServerConfig
}

// NewServer creates a new HTTP server
func NewServer(engine Engine, logger *zap.Logger, cfg *model.ServerConfig) (*Server, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking")
	}
	if cfg == nil {
		defaults := model.DefaultConfig().Server
		cfg = &defaults
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{
		echo:    e,
		engine:  engine,
		loader:  ingest.NewLoader(0),
		metrics: NewMetrics(),
		logger:  logger,
		config:  cfg,
	}
	if cfg.CacheTTL > 0 {
		s.cache = cache.NewMemoryCache(cfg.CacheTTL, 2*cfg.CacheTTL)
	}

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(s.requestLogger())
	if cfg.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.BodyLimit))
	}
	if cfg.RequestsPerSecond > 0 {
		e.Use(RateLimit(NewLimiter(cfg.RequestsPerSecond, cfg.BurstSize), s.metrics))
	}

	s.registerRoutes()

	return s, nil
}

// requestLogger logs every request with its id and latency
func (s *Server) requestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			s.logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return nil
		}
	}
}

// registerRoutes sets up the HTTP endpoints
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := s.echo.Group("/api/v1")
	v1.POST("/claims/route", s.handleRoute)
	v1.GET("/rules", s.handleRules)
}

// RouteRequest is the JSON request body for POST /api/v1/claims/route
type RouteRequest struct {
	Document    *string `json:"document"`
	ContentType string  `json:"content_type,omitempty"` // e.g. text/html; defaults to text/plain
}

// HealthResponse is the response body for GET /health
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

func (s *Server) handleRules(c echo.Context) error {
	return c.JSON(http.StatusOK, s.engine.Tables())
}

// handleRoute accepts either a JSON envelope or a raw text/plain or
// text/html body and returns the claim decision
func (s *Server) handleRoute(c echo.Context) error {
	text, err := s.readDocument(c)
	if err != nil {
		return err
	}

	key := cache.DocumentKey(text)
	if s.cache != nil {
		if body, ok := s.cache.Get(key); ok {
			s.metrics.CacheHitsTotal.Inc()
			c.Response().Header().Set("X-Cache", "hit")
			return c.JSONBlob(http.StatusOK, body)
		}
		s.metrics.CacheMissesTotal.Inc()
	}

	start := time.Now()
	decision := s.engine.Process(text)
	s.metrics.ObserveDecision(decision, time.Since(start))

	s.logger.Debug("claim routed",
		zap.String("route", string(decision.RecommendedRoute)),
		zap.Int("missing_fields", len(decision.MissingFields)),
		zap.Int("fraud_flags", len(decision.FraudFlags)),
		zap.Int("warnings", len(decision.Warnings)),
	)

	var buf strings.Builder
	if err := pipeline.NewRenderer(false).WriteJSON(&buf, decision); err != nil {
		return fmt.Errorf("encode decision: %w", err)
	}
	body := []byte(buf.String())

	if s.cache != nil {
		if err := s.cache.Set(key, body, 0); err != nil {
			s.logger.Warn("cache decision", zap.Error(err))
		}
		c.Response().Header().Set("X-Cache", "miss")
	}

	return c.JSONBlob(http.StatusOK, body)
}

// readDocument extracts document text from the request body
func (s *Server) readDocument(c echo.Context) (string, error) {
	req := c.Request()
	contentType := req.Header.Get(echo.HeaderContentType)

	switch {
	case strings.HasPrefix(contentType, echo.MIMEApplicationJSON):
		var body RouteRequest
		if err := c.Bind(&body); err != nil {
			s.logger.Warn("invalid route request", zap.Error(err))
			return "", echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
		}
		if body.Document == nil {
			return "", echo.NewHTTPError(http.StatusBadRequest, "document field is required")
		}
		docType := body.ContentType
		if docType == "" {
			docType = echo.MIMETextPlain
		}
		return s.convert([]byte(*body.Document), docType)

	case strings.HasPrefix(contentType, echo.MIMETextPlain),
		strings.HasPrefix(contentType, echo.MIMETextHTML):
		raw, err := io.ReadAll(req.Body)
		if err != nil {
			var tooLarge *echo.HTTPError
			if errors.As(err, &tooLarge) {
				return "", tooLarge
			}
			return "", echo.NewHTTPError(http.StatusBadRequest, "could not read request body")
		}
		return s.convert(raw, contentType)
	}

	return "", echo.NewHTTPError(http.StatusUnsupportedMediaType,
		"expected application/json, text/plain or text/html")
}

func (s *Server) convert(raw []byte, contentType string) (string, error) {
	doc, err := s.loader.Convert(raw, "request", contentType)
	if err != nil {
		return "", echo.NewHTTPError(http.StatusBadRequest, "could not read document: "+err.Error())
	}
	return doc.Text, nil
}

// Handler exposes the router for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start starts the HTTP server
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
