// Package models содержит доменную модель пользователя системы.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

// User представляет зарегистрированного пользователя системы.
// Username неизменяем и служит первичным ключом.
type User struct {
	Username     string // Имя пользователя (уникальное)
	PasswordHash string // Хэш пароля пользователя, только из lib/password
	Email        string // Электронная почта (уникальная)
	FirstName    string // Имя
	LastName     string // Фамилия
}

// FullName возвращает полное имя пользователя. Не хранится в базе.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// RegisterRequest используется для приёма данных формы регистрации
// из JSON-запроса, прежде чем конвертировать их в User.
type RegisterRequest struct {
	Username  string `json:"username" validate:"required,min=1,max=20"`
	Password  string `json:"password" validate:"required"`
	Email     string `json:"email" validate:"required,email,max=50"`
	FirstName string `json:"first_name" validate:"required,max=30"`
	LastName  string `json:"last_name" validate:"required,max=30"`
}

// LoginRequest используется для приёма данных формы входа.
type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1,max=20"`
	Password string `json:"password" validate:"required"`
}
