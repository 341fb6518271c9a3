package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/internal/database"
	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/internal/server/handlers"
	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/internal/server/response"
	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/pkg/logger"
	"github.com/amclaughlin2005/ai-text-analysis-platform-sub000/pkg/wordcloud"
)

// Server is the HTTP server hosting the word cloud API
type Server struct {
	config     *Config
	db         *database.Database
	engine     *wordcloud.Engine
	log        *logger.Logger
	httpServer *http.Server
	sweeper    *cron.Cron
}

// New creates the server, wiring the engine over the database-backed corpus
// store
func New(config *Config, db *database.Database, log *logger.Logger) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	store := database.NewCorpusStore(db)
	engine := wordcloud.NewEngine(store, nil, newResultCache(config, log), config.Engine, log)

	s := &Server{
		config: config,
		db:     db,
		engine: engine,
		log:    log,
	}
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      s.router(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}
	return s
}

// newResultCache builds the result cache the configured backend names. A
// nil return lets the engine fall back to its default memory cache.
func newResultCache(config *Config, log *logger.Logger) wordcloud.ResultCache {
	if config.CacheBackend == CacheBackendRedis {
		return wordcloud.NewRedisResultCache(config.Redis, log)
	}
	return nil
}

// Engine exposes the composed word cloud engine
func (s *Server) Engine() *wordcloud.Engine {
	return s.engine
}

// router builds the route table with the middleware stack applied
func (s *Server) router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET "+s.config.HealthCheckPath, s.healthHandler)

	wc := handlers.NewWordCloudHandler(s.engine, s.log)
	prefix := s.config.APIPrefix
	mux.HandleFunc("POST "+prefix+"/wordcloud", wc.Generate)
	mux.HandleFunc("DELETE "+prefix+"/cache", wc.InvalidateAll)
	mux.HandleFunc("DELETE "+prefix+"/cache/{dataset_id}", wc.InvalidateDataset)

	stack := NewMiddlewareStack()
	stack.Use(RecoveryMiddleware(s.log))
	stack.Use(RequestIDMiddleware(s.config.RequestIDHeader))
	stack.Use(LoggingMiddleware(s.log))
	return stack.Apply(mux)
}

// healthHandler reports liveness and database health
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	rw := response.NewWriter(w, RequestID(r.Context()))
	status := map[string]string{"status": "ok", "database": "ok"}
	if err := s.db.Ping(r.Context()); err != nil {
		status["database"] = "unreachable"
		rw.Error(http.StatusServiceUnavailable, "unhealthy", "database unreachable")
		return
	}
	rw.Success(status)
}

// Run starts the server and the cache sweep schedule, blocking until an
// interrupt or termination signal arrives, then shuts down gracefully.
func (s *Server) Run() error {
	s.sweeper = cron.New()
	if _, err := s.sweeper.AddFunc(s.config.CacheSweepSchedule, func() {
		s.engine.Cache().Sweep(context.Background())
		s.log.Debug("result cache sweep complete")
	}); err != nil {
		return fmt.Errorf("invalid cache sweep schedule %q: %w", s.config.CacheSweepSchedule, err)
	}
	s.sweeper.Start()

	errCh := make(chan error, 1)
	go func() {
		s.log.WithField("addr", s.httpServer.Addr).Info("server listening")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-stop:
		s.log.WithField("signal", sig.String()).Info("shutting down")
	}

	return s.Shutdown()
}

// Shutdown stops the sweep schedule and drains in-flight requests
func (s *Server) Shutdown() error {
	if s.sweeper != nil {
		s.sweeper.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	if closer, ok := s.engine.Cache().(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.log.WithField("error", err.Error()).Warn("result cache close failed")
		}
	}
	s.log.Info("server shutdown complete")
	return nil
}
