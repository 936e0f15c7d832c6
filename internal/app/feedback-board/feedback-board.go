// Package feedbackboard собирает приложение: хранилище, кэш, сессии,
// сервисы и HTTP‑сервер с маршрутами.
package feedbackboard

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/magabrotheeeer/feedback-board/internal/cache"
	"github.com/magabrotheeeer/feedback-board/internal/config"
	"github.com/magabrotheeeer/feedback-board/internal/lib/session"
	"github.com/magabrotheeeer/feedback-board/internal/migrations"
	feedbackservice "github.com/magabrotheeeer/feedback-board/internal/services/feedback"
	userservice "github.com/magabrotheeeer/feedback-board/internal/services/user"
	"github.com/magabrotheeeer/feedback-board/internal/storage/repository"
)

// App инкапсулирует HTTP‑сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
}

// New собирает приложение по конфигурации.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	profileCache, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	sessions := session.NewManager(
		session.NewMaker(cfg.SecretKey, cfg.SessionTTL),
		cfg.SessionTTL,
		cfg.Secure,
	)

	users := userservice.NewService(db, profileCache, logger, cfg.PasswordCost)
	feedback := feedbackservice.NewService(db, profileCache, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, sessions, users, feedback)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
	}, nil
}

// Run запускает сервер и блокируется до остановки контекста или ошибки.
// Остановка по контексту завершает сервер мягко.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
