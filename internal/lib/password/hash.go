// Package password реализует функции для безопасного хеширования и проверки паролей.
//
// GetHash создает bcrypt-хеш пароля для безопасного хранения.
// CompareHash сравнивает исходный bcrypt-хеш с введённым паролем, проверяя их соответствие.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword возвращается при попытке захешировать пустой пароль.
var ErrEmptyPassword = errors.New("password is empty")

// GetHash принимает пароль пользователя и возвращает его bcrypt‑хэш.
// Соль генерируется bcrypt и встроена в результат, поэтому хэш
// безопасно хранить как обычный текст. Нулевой cost означает
// bcrypt.DefaultCost.
func GetHash(password string, cost int) (string, error) {
	const op = "password.GetHash"
	if password == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashedPassword), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым паролем.
// Сравнение внутри bcrypt выполняется за константное время.
// Возвращает nil, если пароль соответствует хэшу, иначе — ошибку;
// некорректный хэш тоже даёт ошибку, а не панику.
func CompareHash(originalHash, externalPassword string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(externalPassword)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
