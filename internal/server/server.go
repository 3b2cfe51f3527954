// Package server is the assistant HTTP service the chat panel talks to.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/rashisahu/folio/internal/api"
	"github.com/rashisahu/folio/internal/assistant"
	"github.com/rashisahu/folio/internal/chatlog"
	"github.com/rashisahu/folio/internal/config"
	"github.com/rashisahu/folio/internal/models"
)

// Route paths
const (
	EndPointChat    = api.ChatPath
	EndPointHealth  = "/health"
	EndPointProfile = "/api/profile"
)

// ServiceName is reported by the health endpoint
const ServiceName = "folio"

// recordTimeout bounds the chat log write after an answer
const recordTimeout = 5 * time.Second

// Server wires the answerer and the chat log behind a gin router
type Server struct {
	cfg      config.ServerConfig
	engine   *gin.Engine
	answerer assistant.Answerer
	store    chatlog.Store
	profile  models.Profile
	logger   log.Interface
	version  string
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the logger
func WithLogger(logger log.Interface) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithVersion sets the version reported by /health
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// New builds the service. A nil store disables the chat log.
func New(cfg config.ServerConfig, answerer assistant.Answerer, store chatlog.Store, profile models.Profile, opts ...Option) *Server {
	if store == nil {
		store = chatlog.Nop{}
	}

	s := &Server{
		cfg:      cfg,
		answerer: answerer,
		store:    store,
		profile:  profile,
		logger:   log.Log,
		version:  "dev",
	}
	for _, opt := range opts {
		opt(s)
	}

	s.engine = s.setupRouter()
	return s
}

func (s *Server) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(s.logger))
	router.Use(gzip.Gzip(gzip.DefaultCompression))
	router.Use(CORS(s.cfg.Origins()))

	router.GET(EndPointHealth, s.handleHealth)
	router.GET(EndPointProfile, s.handleProfile)

	limited := router.Group("/")
	limited.Use(RateLimit(s.cfg.RateLimitPerMinute))
	{
		limited.POST(EndPointChat, s.handleChat)
	}

	return router
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("addr", ln.Addr().String()).Info("assistant service listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down assistant service")

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
