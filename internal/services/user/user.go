// Package user содержит логику бизнес-уровня для работы с учётными записями:
// регистрацию, проверку учётных данных, сборку профиля и удаление аккаунта.
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/feedback-board/internal/cache"
	"github.com/magabrotheeeer/feedback-board/internal/lib/password"
	"github.com/magabrotheeeer/feedback-board/internal/lib/sl"
	"github.com/magabrotheeeer/feedback-board/internal/models"
	"github.com/magabrotheeeer/feedback-board/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при любой неудаче входа.
// Несуществующий пользователь и неверный пароль неразличимы снаружи.
var ErrInvalidCredentials = errors.New("invalid username/password")

// Время жизни закэшированного профиля.
const profileTTL = 5 * time.Minute

// Repository описывает контракт для работы с пользователями в базе данных.
type Repository interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	DeleteUser(ctx context.Context, username string) error
	ListFeedbackByUsername(ctx context.Context, username string) ([]models.Feedback, error)
}

// ProfileCache описывает контракт кэша профилей.
type ProfileCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// Service отвечает за жизненный цикл учётной записи.
type Service struct {
	users        Repository
	cache        ProfileCache
	log          *slog.Logger
	passwordCost int
}

// NewService создает новый экземпляр Service.
func NewService(users Repository, profileCache ProfileCache, log *slog.Logger, passwordCost int) *Service {
	return &Service{
		users:        users,
		cache:        profileCache,
		log:          log,
		passwordCost: passwordCost,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Конфликт уникальности username/email прозрачно доходит до вызывающего
// как repository.ErrUsernameTaken.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	const op = "services.user.Register"
	hashed, err := password.GetHash(req.Password, s.passwordCost)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u := models.User{
		Username:     req.Username,
		PasswordHash: hashed,
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// Authenticate проверяет учётные данные пользователя.
// Любая причина отказа сворачивается в ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, rawPassword string) (*models.User, error) {
	const op = "services.user.Authenticate"
	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := password.CompareHash(u.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetProfile собирает профиль пользователя вместе с его отзывами.
// Сначала проверяется кэш; промах или ошибка кэша приводят к чтению из базы.
func (s *Service) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	const op = "services.user.GetProfile"

	var cached models.Profile
	found, err := s.cache.Get(ctx, cache.ProfileKey(username), &cached)
	if err != nil {
		s.log.Warn("profile cache read failed", sl.Err(err))
	}
	if found {
		return &cached, nil
	}

	u, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	feedback, err := s.users.ListFeedbackByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	profile := &models.Profile{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Feedback:  feedback,
	}

	if err := s.cache.Set(ctx, cache.ProfileKey(username), profile, profileTTL); err != nil {
		s.log.Warn("profile cache write failed", sl.Err(err))
	}
	return profile, nil
}

// Delete удаляет пользователя вместе со всеми его отзывами и
// инвалидирует закэшированный профиль.
func (s *Service) Delete(ctx context.Context, username string) error {
	const op = "services.user.Delete"
	if err := s.users.DeleteUser(ctx, username); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.cache.Invalidate(ctx, cache.ProfileKey(username)); err != nil {
		s.log.Warn("profile cache invalidation failed", sl.Err(err))
	}
	return nil
}
