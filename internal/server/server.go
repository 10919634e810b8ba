// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects handlers, middleware, and
// routes. Think of it as the control centre that decides:
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// WHY SEPARATE FROM main.go?
// Keeping server setup in its own package makes it:
// - Testable (we can create a test server without running main)
// - Reusable (multiple entry points could use the same server config)
// - Clean (main.go stays minimal — just "start the server")
//
// DEPENDENCY INJECTION FLOW:
// main.go creates the config and logger, then New() assembles everything:
//
//	kv.DB → directories (user/entry/tag/session) → services → handlers
//
// This is the "composition root" pattern — all dependencies are wired in
// one place (New/setupRoutes), rather than scattered across the codebase.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/paperpal/internal/auth"
	"github.com/sakif/paperpal/internal/handler"
	"github.com/sakif/paperpal/internal/middleware"
	"github.com/sakif/paperpal/internal/repository/kv"
	"github.com/sakif/paperpal/internal/service"
)

// Config holds server configuration.
// Using a struct for config (instead of individual parameters) makes it easy
// to add new options without changing function signatures, and to load
// everything from env vars in one place (main.go).
type Config struct {
	Port      int
	DBPath    string // Path to the SQLite database file
	JWTSecret string // Secret for signing session tokens, min 16 chars
}

// Server represents the HTTP server and all its dependencies.
//
// RESOURCE MANAGEMENT:
// The Server owns the database connection (db). When the server shuts down,
// the connection must be closed to flush pending writes and release the
// file lock. This is handled in Start() during graceful shutdown.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *kv.DB
}

// New creates a new Server with the given config.
//
// DEPENDENCY INJECTION & WIRING:
// This is where the entire dependency chain is assembled:
//  1. Open the key-value store (kv.Open)
//  2. Create the directories over it (users, entries, tags, session)
//  3. Create the service layer with the directories
//  4. Create the handlers with the services
//  5. Wire handlers to routes
//
// Each layer only receives what it needs:
// - Services get repository interfaces (not the concrete kv types)
// - Handlers get services (not the repositories or DB)
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := kv.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close() // Clean up DB if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
// GET    /api/health            → Liveness check (public)
// POST   /api/auth/register     → Create account + session (public)
// POST   /api/auth/login        → Authenticate (public)
// POST   /api/auth/logout       → End session (public)
// GET    /api/auth/remember     → Login-form prefill tuple (public)
// GET    /api/me                → Current user's profile
// PUT    /api/me                → Update profile
// GET    /api/entries           → List diary entries
// POST   /api/entries           → Create entry
// GET    /api/entries/{id}      → Get one entry
// PUT    /api/entries/{id}      → Update entry
// DELETE /api/entries/{id}      → Delete entry
// GET    /api/tags              → List tags
// POST   /api/tags              → Add tag
//
// Everything below /api/me, /api/entries, and /api/tags sits behind
// RequireAuth, which checks the session cookie.
//
// MIDDLEWARE ORDER MATTERS:
// Middleware executes in the order it's added. Our order:
// 1. RequestID — assigns unique ID to each request (for tracing)
// 2. RealIP — extracts real client IP from proxy headers
// 3. Logger — logs each request with timing info
// 4. Recoverer — catches panics and returns 500 instead of crashing
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	// DEPENDENCY CHAIN:
	//   s.db (kv.DB) → implements kv.Store
	//   directories receive the store, services receive the directory
	//   interfaces, handlers receive the services.
	//
	// Notice: the handlers never touch the database directly. The
	// services never touch HTTP. Clean separation!
	users := kv.NewUserDirectory(s.db, s.logger)
	entries := kv.NewEntryDirectory(s.db, s.logger)
	tags := kv.NewTagDirectory(s.db, s.logger)
	sessions := kv.NewSessionStore(s.db, s.logger)

	authSvc := service.NewAuthService(users, sessions, tokens, passwords, s.logger)
	entrySvc := service.NewEntryService(entries, s.logger)
	tagSvc := service.NewTagService(tags, s.logger)

	authHandler := handler.NewAuthHandler(authSvc, s.logger)
	entryHandler := handler.NewEntryHandler(entrySvc, s.logger)
	tagHandler := handler.NewTagHandler(tagSvc, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		// Public routes — no session required
		r.Get("/health", handler.HandleHealth)
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/auth/remember", authHandler.HandleRemembered)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/me", authHandler.HandleMe)
			r.Put("/me", authHandler.HandleUpdateProfile)

			r.Get("/entries", entryHandler.HandleList)
			r.Post("/entries", entryHandler.HandleCreate)
			r.Get("/entries/{id}", entryHandler.HandleGet)
			r.Put("/entries/{id}", entryHandler.HandleUpdate)
			r.Delete("/entries/{id}", entryHandler.HandleDelete)

			r.Get("/tags", tagHandler.HandleList)
			r.Post("/tags", tagHandler.HandleAdd)
		})
	})

	return nil
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the database connection (flushes WAL, releases file lock)
//
// If we skip step 3, the database file might be left in an inconsistent
// state. The `defer s.db.Close()` ensures this happens even if something
// panics.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Give in-flight requests 30 seconds to complete
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
