package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/gramfetch/pkg/domain/interfaces"
)

// config holds internal HTTP server configuration
type config struct {
	addr    string
	baseDir string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithBaseDir sets the directory the media file routes are rooted at. It
// must match the use case's working directory.
func WithBaseDir(dir string) Option {
	return func(c *config) {
		if dir != "" {
			c.baseDir = dir
		}
	}
}

// Server represents the HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	fetchUC interfaces.FetchUseCase,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr:    "localhost:8080",
		baseDir: ".",
	}

	// Apply options
	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	// Health check
	router.Get("/health", handleHealth(fetchUC))

	// Download form and submission
	formHandler := NewFormHandler(fetchUC)
	router.Get("/", formHandler.Index)
	router.Post("/fetch", formHandler.Fetch)

	// Relocated media for inline previews. http.FileServer cleans the
	// request path, so traversal out of baseDir is not possible.
	fileServer := http.FileServer(http.Dir(cfg.baseDir))
	router.Handle("/files/*", http.StripPrefix("/files/", fileServer))

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
