package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jub0bs/cors"

	"github.com/Bhavya700/CSE-412/internal/logger"
	"github.com/Bhavya700/CSE-412/internal/ui/client"
	"github.com/Bhavya700/CSE-412/internal/ui/config"
	"github.com/Bhavya700/CSE-412/internal/ui/handlers"
	"github.com/Bhavya700/CSE-412/internal/ui/middleware"
	"github.com/Bhavya700/CSE-412/internal/ui/session"
	"github.com/Bhavya700/CSE-412/web"
)

type Server struct {
	router         *chi.Mux
	config         *config.Config
	corsMiddleware *cors.Middleware
	apiClient      *client.Client
	sessions       *session.Store
	logger         *slog.Logger
}

// New creates the ui server. corsMiddleware may be nil, in which case the ui-api routes are same-origin only.
func New(cfg *config.Config, corsMiddleware *cors.Middleware, apiClient *client.Client, sessions *session.Store, logger *slog.Logger) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		config:         cfg,
		corsMiddleware: corsMiddleware,
		apiClient:      apiClient,
		sessions:       sessions,
		logger:         logger,
	}

	s.setupMiddleware()
	s.registerRoutes()
	return s
}

// Handler returns the root http handler (used in tests)
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupMiddleware() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(logger.RequestLogging(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.SecurityHeaders(s.config.Environment))
	// no Timeout middleware: searches run until the backend responds or the client goes away
}

func (s *Server) registerRoutes() {
	handlerService := &handlers.HandlerService{
		Sessions:  s.sessions,
		ApiClient: s.apiClient,
		TopN:      s.config.TopN,
	}

	staticFiles, err := fs.Sub(web.Static, "static")
	if err != nil {
		// the static dir is embedded at build time
		panic(fmt.Sprintf("static assets not embedded: %v", err))
	}
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(staticFiles)))

	s.router.Get("/health/live", handlerService.HandleLiveness)
	s.router.Get("/health/ready", handlerService.HandleReadiness)

	s.router.Get("/", handlerService.HandleHome)

	rateLimit := middleware.RateLimit(s.config.RateLimitRPS, s.config.RateLimitBurst)

	s.router.Route("/panels/{panel}", func(r chi.Router) {
		r.Use(rateLimit)

		r.Post("/search", handlerService.HandleSimpleSearch)
		r.Post("/join", handlerService.HandleComplexSearch)
	})

	s.router.Route("/ui-api", func(r chi.Router) {
		if s.corsMiddleware != nil {
			r.Use(middleware.CORS(s.corsMiddleware))
		}
		r.Use(rateLimit)

		r.Get("/compare", handlerService.HandleCompare)
	})
}

// Start runs the server until ctx is cancelled and then shuts it down gracefully
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.logger.Info("UI server listening", slog.String("address", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-ctx.Done():
		s.logger.Info("Shutting down UI server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ServerShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("Server forced to shutdown", slog.String("error", err.Error()))
			return err
		}
	}

	return nil
}
