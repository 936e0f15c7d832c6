// Package logout предоставляет HTTP‑обработчик выхода из системы.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/feedback-board/internal/http-server/mware"
)

// SessionClearer описывает контракт сброса сессии в ответе.
type SessionClearer interface {
	Clear(w http.ResponseWriter)
}

// New возвращает обработчик GET /logout.
// Сбрасывает сессию, если она есть, и в любом случае отправляет на главную.
func New(log *slog.Logger, sessions SessionClearer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.auth.logout.New"

		if current, ok := mware.Username(r.Context()); ok {
			log.Info("user logged out",
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("username", current),
			)
			sessions.Clear(w)
		}
		http.Redirect(w, r, "/", http.StatusFound)
	}
}
