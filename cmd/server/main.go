package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"finance-tracker/internal/api"
	"finance-tracker/internal/cache"
	"finance-tracker/internal/config"
	"finance-tracker/internal/handlers"
	"finance-tracker/internal/i18n"
	"finance-tracker/internal/log"
	"finance-tracker/internal/models"
	"finance-tracker/internal/session"
	"finance-tracker/internal/storage"
)

// app holds the long-lived pieces main wires together.
type app struct {
	db        *storage.DB
	sessions  *session.Store
	localizer *i18n.Localizer
	caches    *cache.Manager
	handler   http.Handler
}

func newApp(cfg *config.Config, logger *log.Logger) (*app, error) {
	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	sessions, err := session.Open(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("open session: %w", err)
	}
	restored, err := sessions.Restore()
	if err != nil {
		logger.Warn("Failed to drop stale session", log.FieldError, err.Error())
	}
	logger.Info("Session restored", "signed_in", restored)

	localizer := i18n.New(cfg.DefaultLanguage)
	if lang, err := db.Get(storage.KeyLanguage); err == nil {
		localizer.SetLanguage(lang)
	} else if !errors.Is(err, storage.ErrNotFound) {
		logger.Warn("Failed to read language preference", log.FieldError, err.Error())
	}

	client, err := api.New(cfg.APIBaseURL,
		api.WithTimeout(cfg.APITimeout),
		api.WithLogger(logger),
		api.WithTokenSource(func() string {
			token, _ := sessions.Read()
			return token
		}),
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create api client: %w", err)
	}

	categoryCache := cache.NewLRU[[]models.Category](cfg.CategoryCacheSize, cfg.CategoryCacheTTL)
	caches := cache.NewManager(logger)
	caches.Register(categoryCache)

	h := handlers.NewHandlers(client, sessions, localizer, db, categoryCache, logger)

	return &app{
		db:        db,
		sessions:  sessions,
		localizer: localizer,
		caches:    caches,
		handler:   setupRouter(h, logger),
	}, nil
}

func (a *app) Close() error {
	a.caches.Stop()
	return a.db.Close()
}

func setupRouter(h *handlers.Handlers, logger *log.Logger) http.Handler {
	return log.Middleware(logger)(h.Routes())
}

func main() {
	config.LoadEnvFile()
	cfg := config.Load()

	logger := log.New(log.Config{Level: log.ParseLevel(cfg.LogLevel), Component: log.ComponentApp})
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err.Error())
		os.Exit(1)
	}

	a, err := newApp(cfg, logger)
	if err != nil {
		logger.Error("Failed to start", log.NewFields().WithOperation(log.OpStartup).WithError(err).ToSlice()...)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	a.caches.StartCleanup(ctx, cfg.CategoryCacheTTL)

	err = a.serve(ctx, cfg, logger)
	stop()
	if cerr := a.Close(); cerr != nil {
		logger.Warn("Failed to close storage", log.FieldError, cerr.Error())
	}
	if err != nil {
		logger.Error("Server error", log.FieldError, err.Error(), "port", cfg.Port)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

// serve runs the HTTP server until ctx is done or the listener fails.
func (a *app) serve(ctx context.Context, cfg *config.Config, logger *log.Logger) error {
	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        a.handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   cfg.APITimeout + 10*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}

	logger.Info("Starting finance-tracker server",
		"port", cfg.Port, "api", cfg.APIBaseURL, log.FieldLanguage, a.localizer.Language())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
