// Package feedback содержит логику бизнес-уровня для жизненного цикла отзывов.
package feedback

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/feedback-board/internal/cache"
	"github.com/magabrotheeeer/feedback-board/internal/lib/sl"
	"github.com/magabrotheeeer/feedback-board/internal/models"
)

// Repository описывает контракт для работы с отзывами в базе данных.
type Repository interface {
	CreateFeedback(ctx context.Context, feedback models.Feedback) (int, error)
	GetFeedback(ctx context.Context, id int) (*models.Feedback, error)
	UpdateFeedback(ctx context.Context, id int, title, content string) error
	RemoveFeedback(ctx context.Context, id int) error
}

// ProfileCache описывает контракт кэша профилей: каждая мутация отзыва
// инвалидирует профиль владельца.
type ProfileCache interface {
	Invalidate(ctx context.Context, key string) error
}

// Service отвечает за создание, чтение, обновление и удаление отзывов.
type Service struct {
	feedback Repository
	cache    ProfileCache
	log      *slog.Logger
}

// NewService создает новый экземпляр Service.
func NewService(feedback Repository, profileCache ProfileCache, log *slog.Logger) *Service {
	return &Service{
		feedback: feedback,
		cache:    profileCache,
		log:      log,
	}
}

// Add создаёт отзыв от имени username и возвращает его ID.
func (s *Service) Add(ctx context.Context, username string, req models.FeedbackRequest) (int, error) {
	const op = "services.feedback.Add"
	id, err := s.feedback.CreateFeedback(ctx, models.Feedback{
		Title:    req.Title,
		Content:  req.Content,
		Username: username,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateProfile(ctx, username)
	return id, nil
}

// Get возвращает отзыв по его ID.
func (s *Service) Get(ctx context.Context, id int) (*models.Feedback, error) {
	const op = "services.feedback.Get"
	fb, err := s.feedback.GetFeedback(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return fb, nil
}

// Update обновляет заголовок и текст отзыва. Проверка владельца
// выполняется вызывающим до обращения сюда.
func (s *Service) Update(ctx context.Context, id int, username string, req models.FeedbackRequest) error {
	const op = "services.feedback.Update"
	if err := s.feedback.UpdateFeedback(ctx, id, req.Title, req.Content); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateProfile(ctx, username)
	return nil
}

// Remove удаляет отзыв по его ID.
func (s *Service) Remove(ctx context.Context, id int, username string) error {
	const op = "services.feedback.Remove"
	if err := s.feedback.RemoveFeedback(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidateProfile(ctx, username)
	return nil
}

func (s *Service) invalidateProfile(ctx context.Context, username string) {
	if err := s.cache.Invalidate(ctx, cache.ProfileKey(username)); err != nil {
		s.log.Warn("profile cache invalidation failed", sl.Err(err))
	}
}
