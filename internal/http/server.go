package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Clark-Hu/movie-sentiment/internal/config"
	"github.com/Clark-Hu/movie-sentiment/internal/dataset"
	"github.com/Clark-Hu/movie-sentiment/internal/domain"
)

// Analyzer resolves a title into an analysis.
type Analyzer interface {
	Resolve(title string) domain.MovieAnalysis
}

// DatasetStatus reports on the loaded dataset.
type DatasetStatus interface {
	Loaded() bool
	Stats() dataset.Stats
}

// Server wires HTTP routing, middleware, and handlers.
type Server struct {
	cfg      config.Config
	dataset  DatasetStatus
	analyzer Analyzer
	logger   *zap.Logger
	router   chi.Router
	httpSrv  *http.Server
}

// New constructs the HTTP server with base middleware and routes.
func New(cfg config.Config, status DatasetStatus, analyzer Analyzer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	s := &Server{
		cfg:      cfg,
		dataset:  status,
		analyzer: analyzer,
		logger:   logger,
		router:   r,
	}
	s.registerRoutes()
	s.httpSrv = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.router,
		ReadTimeout:  time.Duration(cfg.ReadTimeoutSecs) * time.Second,
		WriteTimeout: time.Duration(cfg.WriteTimeoutSecs) * time.Second,
		IdleTimeout:  time.Duration(cfg.IdleTimeoutSecs) * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.router.Get("/", s.handlePage)
	s.router.Get("/healthz", s.handleHealthz)
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/analysis", s.handleGetAnalysis)
		r.Post("/analysis", s.handlePostAnalysis)
		r.Get("/stats", s.handleStats)
	})
}

// Handler exposes the routed handler, mainly for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start boots the HTTP server and blocks until ctx is cancelled or the
// listener fails. Shutdown may be called concurrently.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.httpSrv.Shutdown(shutdownCtx)
		return ctx.Err()
	case err := <-errCh:
		return err
	}
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpSrv.Shutdown(ctx)
}

type healthResponse struct {
	Status        string `json:"status"`
	DatasetLoaded bool   `json:"datasetLoaded"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		DatasetLoaded: s.dataset.Loaded(),
	})
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				logger.Info("http request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", status),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("requestId", middleware.GetReqID(r.Context())))
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
