// Package login предоставляет HTTP‑обработчики входа пользователя.
package login

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
	userservice "github.com/magabrotheeeer/feedback-board/internal/services/user"
)

// Authenticator описывает контракт проверки учётных данных.
type Authenticator interface {
	Authenticate(ctx context.Context, username, rawPassword string) (*models.User, error)
}

// SessionEstablisher описывает контракт установления сессии в ответе.
type SessionEstablisher interface {
	Establish(w http.ResponseWriter, username string) error
}

// Form возвращает обработчик GET /login.
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

// New возвращает обработчик POST /login.
// Несуществующий пользователь и неверный пароль дают один и тот же ответ,
// чтобы не раскрывать, какие имена заняты.
func New(log *slog.Logger, authenticator Authenticator, sessions SessionEstablisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.login.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if current, ok := mware.Username(r.Context()); ok {
			http.Redirect(w, r, "/users/"+current, http.StatusFound)
			return
		}

		var loginRequest models.LoginRequest
		if err := render.DecodeJSON(r.Body, &loginRequest); err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err := validator.New().Struct(loginRequest); err != nil {
			validateErr := err.(validator.ValidationErrors)
			log.Error("invalid request", sl.Err(err))
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}

		u, err := authenticator.Authenticate(r.Context(), loginRequest.Username, loginRequest.Password)
		if err != nil {
			if errors.Is(err, userservice.ErrInvalidCredentials) {
				log.Info("failed login attempt", slog.String("username", loginRequest.Username))
				render.JSON(w, r, response.Error("Invalid username/password."))
				return
			}
			log.Error("failed to authenticate user", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to authenticate user"))
			return
		}

		if err := sessions.Establish(w, u.Username); err != nil {
			log.Error("failed to establish session", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to establish session"))
			return
		}

		log.Info("user logged in", slog.String("username", u.Username))
		http.Redirect(w, r, "/users/"+u.Username, http.StatusFound)
	}
}
