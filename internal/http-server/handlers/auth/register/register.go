// Package register предоставляет HTTP‑обработчики регистрации нового
// пользователя: отдачу формы и обработку отправленных данных.
package register

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/feedback-board/internal/http-server/mware"
	"github.com/magabrotheeeer/feedback-board/internal/http-server/response"
	"github.com/magabrotheeeer/feedback-board/internal/lib/sl"
	"github.com/magabrotheeeer/feedback-board/internal/models"
	"github.com/magabrotheeeer/feedback-board/internal/storage/repository"
)

// Registrar описывает контракт создания учётной записи.
type Registrar interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}

// SessionEstablisher описывает контракт установления сессии в ответе.
type SessionEstablisher interface {
	Establish(w http.ResponseWriter, username string) error
}

// Form возвращает обработчик GET /register.
// Уже аутентифицированный пользователь отправляется на свой профиль.
func Form(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if current, ok := mware.Username(r.Context()); ok {
			http.Redirect(w, r, "/users/"+current, http.StatusFound)
			return
		}
		render.JSON(w, r, response.OK())
	}
}

// New возвращает обработчик POST /register.
// Логика работы:
//  1. Активная сессия — редирект на собственный профиль.
//  2. Валидация полей формы.
//  3. Создание пользователя; конфликт уникальности возвращается
//     как ошибка валидации поля username, без падения запроса.
//  4. Установление сессии и редирект на /users/{username}.
func New(log *slog.Logger, registrar Registrar, sessions SessionEstablisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.register.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if current, ok := mware.Username(r.Context()); ok {
			http.Redirect(w, r, "/users/"+current, http.StatusFound)
			return
		}

		var registerRequest models.RegisterRequest
		if err := render.DecodeJSON(r.Body, &registerRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(registerRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		newUser, err := registrar.Register(r.Context(), registerRequest)
		if err != nil {
			if errors.Is(err, repository.ErrUsernameTaken) {
				log.Info("username taken", slog.String("username", registerRequest.Username))
				render.JSON(w, r, response.Error("Username taken. Please pick another."))
				return
			}
			log.Error("failed to register new user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register new user"))
			return
		}

		if err := sessions.Establish(w, newUser.Username); err != nil {
			log.Error("failed to establish session", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to establish session"))
			return
		}

		log.Info("created new user", slog.String("username", newUser.Username))
		http.Redirect(w, r, "/users/"+newUser.Username, http.StatusFound)
	}
}
