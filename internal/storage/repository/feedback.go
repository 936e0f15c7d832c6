package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/feedback-board/internal/models"
)

// CreateFeedback вставляет новый отзыв и возвращает его ID.
func (s *Storage) CreateFeedback(ctx context.Context, feedback models.Feedback) (int, error) {
	const op = "storage.CreateFeedback"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO feedback (title, content, username)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		feedback.Title, feedback.Content, feedback.Username).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetFeedback возвращает отзыв по его ID. Если отзыва нет, возвращает ErrNotFound.
func (s *Storage) GetFeedback(ctx context.Context, id int) (*models.Feedback, error) {
	const op = "storage.GetFeedback"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, username
			  FROM feedback
			  WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Feedback
	if err := row.Scan(&result.ID, &result.Title, &result.Content, &result.Username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateFeedback обновляет заголовок и текст отзыва по его ID.
// Если отзыва нет, возвращает ErrNotFound.
func (s *Storage) UpdateFeedback(ctx context.Context, id int, title, content string) error {
	const op = "storage.UpdateFeedback"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE feedback
			  SET title = $1, content = $2
			  WHERE id = $3`
	result, err := s.DB.ExecContext(ctx, query, title, content, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// RemoveFeedback удаляет отзыв по его ID. Если отзыва нет, возвращает ErrNotFound.
func (s *Storage) RemoveFeedback(ctx context.Context, id int) error {
	const op = "storage.RemoveFeedback"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM feedback WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// ListFeedbackByUsername возвращает все отзывы пользователя в порядке создания.
func (s *Storage) ListFeedbackByUsername(ctx context.Context, username string) ([]models.Feedback, error) {
	const op = "storage.ListFeedbackByUsername"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, title, content, username
			  FROM feedback
			  WHERE username = $1
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []models.Feedback
	for rows.Next() {
		var item models.Feedback
		if err := rows.Scan(&item.ID, &item.Title, &item.Content, &item.Username); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
