// Package mock runs a self-contained in-memory stand-in for the
// platform API so the console can be exercised without a backend. It
// implements the same wire surface the real server exposes, including
// the pagination asymmetry: users and categories return the full
// collection, articles return server-side pages.
package mock

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Config controls the mock server
type Config struct {
	Port int    // Server port (default: 4000)
	Host string // Server host (default: localhost)
	Seed bool   // Load demo data on startup
}

// Server is the mock HTTP server
type Server struct {
	config     Config
	store      *Store
	httpServer *http.Server
}

// NewServer creates a mock server
func NewServer(config Config) *Server {
	if config.Port == 0 {
		config.Port = 4000
	}
	if config.Host == "" {
		config.Host = "localhost"
	}

	store := NewStore()
	if config.Seed {
		store.Seed()
	}

	return &Server{
		config: config,
		store:  store,
	}
}

// Store exposes the backing store, mainly for tests
func (s *Server) Store() *Store {
	return s.store
}

// Handler returns the full route table. The console client prefixes
// every path with /api, so the mux mounts everything under it.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	mux.HandleFunc("GET /api/users", s.handleListUsers)
	mux.HandleFunc("POST /api/users", s.handleCreateUser)
	mux.HandleFunc("PATCH /api/users/{id}", s.handleUpdateUser)
	mux.HandleFunc("DELETE /api/users/{id}", s.handleDeleteUser)

	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("PATCH /api/categories/{id}", s.handleUpdateCategory)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)
	mux.HandleFunc("GET /api/categories/{id}/articles", s.handleCategoryArticles)

	mux.HandleFunc("GET /api/articles", s.handleListArticles)
	mux.HandleFunc("POST /api/articles", s.handleCreateArticle)
	mux.HandleFunc("GET /api/articles/{id}", s.handleGetArticle)
	mux.HandleFunc("PATCH /api/articles/{id}", s.handleUpdateArticle)
	mux.HandleFunc("DELETE /api/articles/{id}", s.handleDeleteArticle)

	mux.HandleFunc("POST /api/uploads", s.handleUpload)

	return mux
}

// Start begins serving in the background
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Mock server error: %v", err)
		}
	}()

	return nil
}

// Stop shuts the server down gracefully
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// Address returns the base URL clients should point at
func (s *Server) Address() string {
	return fmt.Sprintf("http://%s:%d/api", s.config.Host, s.config.Port)
}
