// Package main is the entry point for the paperpal diary server.
//
// MAIN PACKAGE IN GO:
// Every Go program starts execution in the main() function of the "main"
// package. The main package should be kept minimal — its job is to:
// 1. Read configuration (from env vars)
// 2. Create dependencies (logger)
// 3. Start the application
//
// All actual logic lives in imported packages (internal/server,
// internal/handler, etc.). This separation makes the app testable and its
// components reusable.
package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sakif/paperpal/internal/server"
)

// devJWTSecret is used when JWT_SECRET is unset so the server can run
// locally without configuration. Sessions signed with it are forgeable;
// never ship it.
const devJWTSecret = "paperpal-dev-secret-do-not-use"

func main() {
	// === 1. SET UP LOGGING ===
	// slog.NewTextHandler outputs human-readable structured logs to the
	// terminal. LevelDebug enables all log levels; production would use
	// LevelInfo or LevelWarn to reduce noise.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// === 2. READ CONFIGURATION ===
	// Port from the PORT environment variable, defaulting to 8080.
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	// === 3. DATABASE PATH ===
	// Default to "data/paperpal.db" in the project root. DB_PATH allows
	// overriding for deployments, e.g. DB_PATH=/var/lib/paperpal/prod.db
	dbPath := "data/paperpal.db"
	if envDB := os.Getenv("DB_PATH"); envDB != "" {
		dbPath = envDB
	}

	// Ensure the data directory exists (like `mkdir -p`).
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		logger.Error("failed to create database directory",
			slog.String("dir", dbDir),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}

	// === 4. AUTH CONFIGURATION ===
	// JWT_SECRET must be a long random string. Use:
	//   JWT_SECRET=$(openssl rand -hex 32)
	// If unset, a well-known development secret is used and a warning is
	// logged — fine on a laptop, unacceptable anywhere reachable.
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Warn("JWT_SECRET not set — using insecure development secret")
		jwtSecret = devJWTSecret
	}

	// === 5. CREATE AND START THE SERVER ===
	cfg := server.Config{
		Port:      port,
		DBPath:    dbPath,
		JWTSecret: jwtSecret,
	}

	srv, err := server.New(cfg, logger)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start() blocks until the server is shut down (via Ctrl+C or SIGTERM)
	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
