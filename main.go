package main

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/dmorenoc/TaskAgenda/auth"
	"github.com/dmorenoc/TaskAgenda/config"
	"github.com/dmorenoc/TaskAgenda/handlers"
	"github.com/dmorenoc/TaskAgenda/middleware"
	"github.com/dmorenoc/TaskAgenda/storage"
)

func main() {
	cfg := config.Load()

	lvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = log.InfoLevel
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
	})

	if cfg.JWTSecret == config.DefaultJWTSecret {
		logger.Warn("using the default JWT secret; set AGENDA_JWT_SECRET in production")
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		logger.Fatal("failed to create data directory", "dir", cfg.DataDir, "err", err)
	}

	users := storage.NewUserStore(filepath.Join(cfg.DataDir, "users.json"), logger)
	tasks := storage.NewTaskStore(filepath.Join(cfg.DataDir, "tasks.json"), logger)
	issuer := auth.NewIssuer([]byte(cfg.JWTSecret), cfg.TokenTTL, users)

	h := handlers.NewHandlers(users, tasks, issuer, logger)
	router := h.Routes()
	router.Use(middleware.Logging(logger))
	registerStatic(router, cfg.StaticDir)

	logger.Info("server listening", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
}

// registerStatic serves the calendar front-end when a static directory is
// present: home.html at /, index.html at /calendario, and everything else
// straight from disk. A headless deployment simply has no such directory.
func registerStatic(router *mux.Router, dir string) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return
	}

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(dir, "home.html"))
	}).Methods("GET")
	router.HandleFunc("/calendario", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(dir, "index.html"))
	}).Methods("GET")
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(dir)))
}
