// Package mware содержит middleware для HTTP‑сервера.
// Здесь реализовано извлечение сессионной идентичности из подписанной cookie,
// проверка владельца ресурса и ограничение частоты запросов.
package mware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/feedback-board/internal/http-server/response"
)

type ctxKey string

const usernameKey ctxKey = "username"

// Identifier описывает контракт для извлечения username из запроса.
type Identifier interface {
	Identify(r *http.Request) (string, bool)
}

// Username возвращает имя аутентифицированного пользователя из контекста.
func Username(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(usernameKey).(string)
	return username, ok && username != ""
}

// ContextWithUsername кладёт username в контекст. Используется в тестах
// обработчиков, которым нужна готовая идентичность.
func ContextWithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, usernameKey, username)
}

// Session возвращает middleware, которое разбирает сессионную cookie.
// Логика работы:
//  1. Считывает cookie с токеном, если она есть.
//  2. Проверяет подпись и срок действия токена.
//  3. Кладёт имя пользователя в контекст запроса.
//  4. Передаёт управление следующему обработчику.
//
// Запрос без валидной сессии проходит дальше без идентичности:
// решает, пускать или нет, уже конкретный маршрут.
func Session(identifier Identifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, ok := identifier.Identify(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			log.Debug("session identified",
				slog.String("username", username),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)
			ctx := ContextWithUsername(r.Context(), username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOwner возвращает middleware, которое пускает дальше только владельца:
// сессионная идентичность обязана совпадать с {username} из URL.
// Ответ 401 одинаков для чужого и несуществующего пользователя,
// существование ресурса не раскрывается.
func RequireOwner(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "mware.RequireOwner"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			current, ok := Username(r.Context())
			if !ok || current != chi.URLParam(r, "username") {
				log.Error("unauthorized access attempt")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RateLimit возвращает middleware, ограничивающее частоту запросов.
// Применяется к маршрутам регистрации и входа как защита от перебора.
func RateLimit(log *slog.Logger, limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Error("too many requests")
				render.Status(r, http.StatusTooManyRequests)
				render.JSON(w, r, response.Error("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
