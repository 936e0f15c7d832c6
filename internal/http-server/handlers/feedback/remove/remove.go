// Package remove предоставляет HTTP‑обработчик удаления отзыва.
// Проверки идут в том же порядке, что и при редактировании:
// существование отзыва (404), затем владелец (401).
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/feedback-board/internal/http-server/mware"
	"github.com/magabrotheeeer/feedback-board/internal/http-server/response"
	"github.com/magabrotheeeer/feedback-board/internal/lib/sl"
	"github.com/magabrotheeeer/feedback-board/internal/models"
	"github.com/magabrotheeeer/feedback-board/internal/storage/repository"
)

// FeedbackRemover описывает контракт чтения и удаления отзыва.
type FeedbackRemover interface {
	Get(ctx context.Context, id int) (*models.Feedback, error)
	Remove(ctx context.Context, id int, username string) error
}

// New возвращает обработчик POST /feedback/{id}/delete.
// После удаления пользователь отправляется на профиль владельца.
func New(log *slog.Logger, feedback FeedbackRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.feedback.remove.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Error("failed to decode id from url", sl.Err(err))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("not found"))
			return
		}

		fb, err := feedback.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				log.Info("feedback not found", slog.Int("id", id))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("not found"))
				return
			}
			log.Error("failed to load feedback", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to load feedback"))
			return
		}

		current, ok := mware.Username(r.Context())
		if !ok || current != fb.Username {
			log.Error("unauthorized access attempt", slog.Int("id", id))
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("unauthorized"))
			return
		}

		if err := feedback.Remove(r.Context(), fb.ID, fb.Username); err != nil {
			log.Error("failed to remove feedback", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to remove feedback"))
			return
		}

		log.Info("deleted feedback", slog.Int("id", fb.ID))
		http.Redirect(w, r, "/users/"+fb.Username, http.StatusFound)
	}
}
