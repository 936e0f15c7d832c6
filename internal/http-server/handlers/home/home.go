// Package home предоставляет обработчик корневого маршрута:
// безусловный редирект на страницу регистрации.
package home

import (
	"net/http"
)

// New возвращает обработчик GET /.
func New() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/register", http.StatusFound)
	}
}
