package session

import (
	"fmt"
	"net/http"
	"time"
)

// Manager объединяет выпуск токена и работу с cookie: одна точка входа
// для установления, чтения и сброса сессионной идентичности.
type Manager struct {
	maker  Maker
	ttl    time.Duration
	secure bool
}

// NewManager создаёт Manager поверх заданного Maker.
func NewManager(maker Maker, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		maker:  maker,
		ttl:    ttl,
		secure: secure,
	}
}

// Establish выпускает токен для username и кладёт его в cookie ответа.
func (m *Manager) Establish(w http.ResponseWriter, username string) error {
	const op = "session.Establish"
	token, err := m.maker.Issue(username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	SetCookie(w, token, int(m.ttl.Seconds()), m.secure)
	return nil
}

// Clear сбрасывает сессионную cookie.
func (m *Manager) Clear(w http.ResponseWriter) {
	ClearCookie(w, m.secure)
}

// Identify извлекает username из cookie запроса.
// Возвращает false, если cookie нет или токен невалиден.
func (m *Manager) Identify(r *http.Request) (string, bool) {
	token := ReadCookie(r)
	if token == "" {
		return "", false
	}
	claims, err := m.maker.Parse(token)
	if err != nil {
		return "", false
	}
	return claims.Username, true
}
