// Package remove предоставляет HTTP‑обработчик удаления учётной записи.
// Удаление каскадное: вместе с пользователем исчезают все его отзывы,
// одной транзакцией на стороне хранилища.
package remove

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
	"github.com/magabrotheeeer/feedback-board/internal/storage/repository"
)

// AccountRemover описывает контракт удаления учётной записи.
type AccountRemover interface {
	Delete(ctx context.Context, username string) error
}

// SessionClearer описывает контракт сброса сессии в ответе.
type SessionClearer interface {
	Clear(w http.ResponseWriter)
}

// New возвращает обработчик POST /users/{username}/delete.
// После удаления сессия сбрасывается и пользователь отправляется на главную.
func New(log *slog.Logger, accounts AccountRemover, sessions SessionClearer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.user.remove.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		username := chi.URLParam(r, "username")

		if err := accounts.Delete(r.Context(), username); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Info("user not found", slog.String("username", username))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("not found"))
				return
			}
			log.Error("failed to delete user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete user"))
			return
		}

		sessions.Clear(w)
		log.Info("deleted user", slog.String("username", username))
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
