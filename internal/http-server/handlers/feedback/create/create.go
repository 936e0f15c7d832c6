// Package create предоставляет HTTP‑обработчики добавления отзыва.
// Доступ к маршруту уже ограничен mware.RequireOwner.
package create

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/feedback-board/internal/http-server/response"
	"github.com/magabrotheeeer/feedback-board/internal/lib/sl"
	"github.com/magabrotheeeer/feedback-board/internal/models"
)

// FeedbackAdder описывает контракт создания отзыва.
type FeedbackAdder interface {
	Add(ctx context.Context, username string, req models.FeedbackRequest) (int, error)
}

// Form возвращает обработчик GET /users/{username}/feedback/add.
func Form(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, response.OK())
	}
}

// New возвращает обработчик POST /users/{username}/feedback/add.
// На валидных данных создаёт отзыв и отправляет на профиль владельца,
// на невалидных возвращает ошибки валидации.
func New(log *slog.Logger, feedback FeedbackAdder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.feedback.create.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		username := chi.URLParam(r, "username")

		var feedbackRequest models.FeedbackRequest
		if err := render.DecodeJSON(r.Body, &feedbackRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(feedbackRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		id, err := feedback.Add(r.Context(), username, feedbackRequest)
		if err != nil {
			log.Error("failed to add feedback", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to add feedback"))
			return
		}

		log.Info("created feedback", slog.Int("id", id), slog.String("username", username))
		http.Redirect(w, r, "/users/"+username, http.StatusFound)
	}
}
