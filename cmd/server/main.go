package main

import (
	"net"
	"net/http"
	"time"

	"spendbook/internal/config"
	"spendbook/internal/handlers"
	"spendbook/internal/storage"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	// Schema init happens here, once, not lazily inside request handling.
	if err := db.Migrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	h := handlers.NewHandlers(db, logger, cfg.StrictUpdates)
	r := setupRouter(h, cfg.WebDir)

	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}

func setupRouter(h *handlers.Handlers, webDir string) *mux.Router {
	r := mux.NewRouter()
	h.RegisterAPI(r)
	handlers.NewPages(webDir).Register(r)
	return r
}
