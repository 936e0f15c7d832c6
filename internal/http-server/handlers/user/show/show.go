// Package show предоставляет HTTP‑обработчик страницы профиля пользователя.
// Доступ к маршруту уже ограничен mware.RequireOwner.
package show

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/feedback-board/internal/http-server/response"
	"github.com/magabrotheeeer/feedback-board/internal/lib/sl"
	"github.com/magabrotheeeer/feedback-board/internal/models"
	"github.com/magabrotheeeer/feedback-board/internal/storage/repository"
)

// ProfileProvider описывает контракт получения профиля пользователя.
type ProfileProvider interface {
	GetProfile(ctx context.Context, username string) (*models.Profile, error)
}

// New возвращает обработчик GET /users/{username}.
func New(log *slog.Logger, profiles ProfileProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.show.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		username := chi.URLParam(r, "username")

		profile, err := profiles.GetProfile(r.Context(), username)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Info("user not found", slog.String("username", username))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("not found"))
				return
			}
			log.Error("failed to load profile", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to load profile"))
			return
		}

		render.JSON(w, r, response.StatusOKWithData(profile))
	}
}
