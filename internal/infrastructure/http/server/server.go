package server

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// LivenessText is the static body returned on the root path
const LivenessText = "Bot is running"

// HealthResponse represents the JSON response for health check
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Uptime    string    `json:"uptime"`
	Timestamp time.Time `json:"timestamp"`
}

// Server represents the keep-alive fasthttp server
type Server struct {
	server  *fasthttp.Server
	Router  *router.Router
	addr    string
	name    string
	started time.Time
	logger  zerolog.Logger
}

// NewServer creates a new fasthttp server with liveness routes registered
func NewServer(name, port string, logger zerolog.Logger) *Server {
	r := router.New()

	srv := &fasthttp.Server{
		Handler:      r.Handler,
		Name:         name,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	s := &Server{
		server:  srv,
		Router:  r,
		addr:    fmt.Sprintf(":%s", port),
		name:    name,
		started: time.Now(),
		logger:  logger,
	}

	r.GET("/", s.handleRoot)
	r.HEAD("/", s.handleRoot)
	r.GET("/health", s.handleHealth)

	return s
}

// RegisterMetrics registers Prometheus metrics endpoint
func (s *Server) RegisterMetrics() {
	// Adapt promhttp.Handler to fasthttp
	prometheusHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	s.Router.GET("/metrics", prometheusHandler)
}

func (s *Server) handleRoot(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("text/plain; charset=utf-8")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBodyString(LivenessText)
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	resp := HealthResponse{
		Status:    "ok",
		Service:   s.name,
		Uptime:    time.Since(s.started).Round(time.Second).String(),
		Timestamp: time.Now().UTC(),
	}

	body, err := json.Marshal(resp)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode health response")
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusOK)
	ctx.SetBody(body)
}

// Start starts the HTTP server in a separate goroutine
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.addr).
		Msg("Starting HTTP server")

	go func() {
		if err := s.server.ListenAndServe(s.addr); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server error")
		}
	}()

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("Shutting down HTTP server")

	if err := s.server.ShutdownWithContext(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	s.logger.Info().Msg("HTTP server stopped gracefully")
	return nil
}
