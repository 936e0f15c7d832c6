// Package update предоставляет HTTP‑обработчики редактирования отзыва.
//
// Порядок проверок фиксирован: сначала существование отзыва (404),
// затем владелец (401). Для маршрутов отзывов 404 намеренно виден
// и чужому пользователю — так делает и /users/{username} наоборот,
// закрывая существование профиля ответом 401.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/feedback-board/internal/http-server/mware"
	"github.com/magabrotheeeer/feedback-board/internal/http-server/response"
	"github.com/magabrotheeeer/feedback-board/internal/lib/sl"
	"github.com/magabrotheeeer/feedback-board/internal/models"
	"github.com/magabrotheeeer/feedback-board/internal/storage/repository"
)

// FeedbackProvider описывает контракт чтения отзыва.
type FeedbackProvider interface {
	Get(ctx context.Context, id int) (*models.Feedback, error)
}

// FeedbackUpdater описывает контракт чтения и обновления отзыва.
type FeedbackUpdater interface {
	FeedbackProvider
	Update(ctx context.Context, id int, username string, req models.FeedbackRequest) error
}

// загружает отзыв и проверяет владельца; пишет ответ и возвращает nil,
// если запрос дальше обрабатывать нельзя
func loadOwned(w http.ResponseWriter, r *http.Request, log *slog.Logger, feedback FeedbackProvider) *models.Feedback {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, response.Error("not found"))
		return nil
	}

	fb, err := feedback.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Info("feedback not found", slog.Int("id", id))
			render.Status(r, http.StatusNotFound)
			render.JSON(w, r, response.Error("not found"))
			return nil
		}
		log.Error("failed to load feedback", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to load feedback"))
		return nil
	}

	current, ok := mware.Username(r.Context())
	if !ok || current != fb.Username {
		log.Error("unauthorized access attempt", slog.Int("id", id))
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return nil
	}
	return fb
}

// Form возвращает обработчик GET /feedback/{id}/update.
// Отдаёт текущие данные отзыва для предзаполнения формы.
func Form(log *slog.Logger, feedback FeedbackProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.feedback.update.Form"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		fb := loadOwned(w, r, log, feedback)
		if fb == nil {
			return
		}
		render.JSON(w, r, response.StatusOKWithData(fb))
	}
}

// New возвращает обработчик POST /feedback/{id}/update.
// Меняются только заголовок и текст; владелец и ID неизменны.
func New(log *slog.Logger, feedback FeedbackUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.feedback.update.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		fb := loadOwned(w, r, log, feedback)
		if fb == nil {
			return
		}

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

		if err := feedback.Update(r.Context(), fb.ID, fb.Username, feedbackRequest); err != nil {
			log.Error("failed to update feedback", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update feedback"))
			return
		}

		log.Info("updated feedback", slog.Int("id", fb.ID))
		http.Redirect(w, r, "/users/"+fb.Username, http.StatusFound)
	}
}
