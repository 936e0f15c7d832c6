// Package session реализует сессию пользователя в виде подписанной cookie.
//
// Идентичность сессии — это JWT (HS256), подписанный серверным секретом и
// хранящий username аутентифицированного пользователя. Токен живёт только
// на клиенте: сервер ничего не хранит, а проверяет подпись при каждом запросе.
package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims описывает данные, хранящиеся в сессионном токене.
type Claims struct {
	Username             string `json:"username"` // Имя аутентифицированного пользователя
	jwt.RegisteredClaims        // Стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// Maker описывает контракт для выпуска и разбора сессионных токенов.
type Maker interface {
	// Issue создаёт подписанный токен для username.
	Issue(username string) (string, error)
	// Parse проверяет подпись и срок действия токена, возвращает Claims.
	Parse(tokenStr string) (*Claims, error)
}

// MakerImpl реализует Maker на секретном ключе и времени жизни сессии.
type MakerImpl struct {
	secretKey string
	ttl       time.Duration
}

// NewMaker создаёт новый экземпляр MakerImpl.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		ttl:       ttl,
	}
}

// Issue создает сессионный токен для username, подписывая его секретным ключом.
func (m *MakerImpl) Issue(username string) (string, error) {
	const op = "session.Issue"
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(m.secretKey))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// Parse разбирает сессионный токен, проверяет его подпись и срок действия.
func (m *MakerImpl) Parse(tokenStr string) (*Claims, error) {
	const op = "session.Parse"
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return []byte(m.secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
