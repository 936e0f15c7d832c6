// Package feedbackboard предоставляет маршруты приложения.
package feedbackboard

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/feedback-board/internal/http-server/handlers/auth/login"
	"github.com/magabrotheeeer/feedback-board/internal/http-server/handlers/auth/logout"
	"github.com/magabrotheeeer/feedback-board/internal/http-server/handlers/auth/register"
	feedbackcreate "github.com/magabrotheeeer/feedback-board/internal/http-server/handlers/feedback/create"
	feedbackremove "github.com/magabrotheeeer/feedback-board/internal/http-server/handlers/feedback/remove"
	feedbackupdate "github.com/magabrotheeeer/feedback-board/internal/http-server/handlers/feedback/update"
	"github.com/magabrotheeeer/feedback-board/internal/http-server/handlers/home"
	userremove "github.com/magabrotheeeer/feedback-board/internal/http-server/handlers/user/remove"
	usershow "github.com/magabrotheeeer/feedback-board/internal/http-server/handlers/user/show"
	"github.com/magabrotheeeer/feedback-board/internal/http-server/mware"
	"github.com/magabrotheeeer/feedback-board/internal/lib/session"
	feedbackservice "github.com/magabrotheeeer/feedback-board/internal/services/feedback"
	userservice "github.com/magabrotheeeer/feedback-board/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, sessions *session.Manager,
	users *userservice.Service, feedback *feedbackservice.Service) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(mware.Session(sessions, logger))

	r.Get("/", home.New())
	r.Get("/logout", logout.New(logger, sessions))

	// Регистрация и вход с ограничением частоты
	r.Group(func(r chi.Router) {
		r.Use(mware.RateLimit(logger, rate.NewLimiter(1, 3)))
		r.Get("/register", register.Form(logger))
		r.Post("/register", register.New(logger, users, sessions))
		r.Get("/login", login.Form(logger))
		r.Post("/login", login.New(logger, users, sessions))
	})

	// Маршруты, доступные только владельцу профиля
	r.Route("/users/{username}", func(r chi.Router) {
		r.Use(mware.RequireOwner(logger))
		r.Get("/", usershow.New(logger, users))
		r.Post("/delete", userremove.New(logger, users, sessions))
		r.Get("/feedback/add", feedbackcreate.Form(logger))
		r.Post("/feedback/add", feedbackcreate.New(logger, feedback))
	})

	// Маршруты отзывов: владелец проверяется после поиска записи
	r.Route("/feedback/{id}", func(r chi.Router) {
		r.Get("/update", feedbackupdate.Form(logger, feedback))
		r.Post("/update", feedbackupdate.New(logger, feedback))
		r.Post("/delete", feedbackremove.New(logger, feedback))
	})

	r.Handle("/metrics", promhttp.Handler())
}
