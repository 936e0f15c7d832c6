package feedback_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/feedback-board/internal/models"
	feedbackservice "github.com/magabrotheeeer/feedback-board/internal/services/feedback"
	"github.com/magabrotheeeer/feedback-board/internal/storage/repository"
)

type mockRepository struct {
	CreateFeedbackFunc func(ctx context.Context, fb models.Feedback) (int, error)
	GetFeedbackFunc    func(ctx context.Context, id int) (*models.Feedback, error)
	UpdateFeedbackFunc func(ctx context.Context, id int, title, content string) error
	RemoveFeedbackFunc func(ctx context.Context, id int) error
}

func (m *mockRepository) CreateFeedback(ctx context.Context, fb models.Feedback) (int, error) {
	return m.CreateFeedbackFunc(ctx, fb)
}

func (m *mockRepository) GetFeedback(ctx context.Context, id int) (*models.Feedback, error) {
	return m.GetFeedbackFunc(ctx, id)
}

func (m *mockRepository) UpdateFeedback(ctx context.Context, id int, title, content string) error {
	return m.UpdateFeedbackFunc(ctx, id, title, content)
}

func (m *mockRepository) RemoveFeedback(ctx context.Context, id int) error {
	return m.RemoveFeedbackFunc(ctx, id)
}

type mockCache struct {
	invalidated []string
}

func (m *mockCache) Invalidate(_ context.Context, key string) error {
	m.invalidated = append(m.invalidated, key)
	return nil
}

func makeLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAdd_CreatesAndInvalidatesOwnerProfile(t *testing.T) {
	repo := &mockRepository{
		CreateFeedbackFunc: func(_ context.Context, fb models.Feedback) (int, error) {
			require.Equal(t, "alice", fb.Username)
			require.Equal(t, "Great service", fb.Title)
			return 7, nil
		},
	}
	mc := &mockCache{}
	svc := feedbackservice.NewService(repo, mc, makeLogger())

	id, err := svc.Add(context.Background(), "alice", models.FeedbackRequest{
		Title:   "Great service",
		Content: "Really enjoyed it",
	})
	require.NoError(t, err)
	assert.Equal(t, 7, id)
	assert.Contains(t, mc.invalidated, "user:alice")
}

func TestAdd_StorageError(t *testing.T) {
	repo := &mockRepository{
		CreateFeedbackFunc: func(_ context.Context, _ models.Feedback) (int, error) {
			return 0, errors.New("db down")
		},
	}
	mc := &mockCache{}
	svc := feedbackservice.NewService(repo, mc, makeLogger())

	_, err := svc.Add(context.Background(), "alice", models.FeedbackRequest{Title: "t", Content: "c"})
	require.Error(t, err)
	assert.Empty(t, mc.invalidated)
}

func TestGet_NotFoundPassesThrough(t *testing.T) {
	repo := &mockRepository{
		GetFeedbackFunc: func(_ context.Context, _ int) (*models.Feedback, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := feedbackservice.NewService(repo, &mockCache{}, makeLogger())

	_, err := svc.Get(context.Background(), 99)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdate_InvalidatesOwnerProfile(t *testing.T) {
	repo := &mockRepository{
		UpdateFeedbackFunc: func(_ context.Context, id int, title, content string) error {
			require.Equal(t, 7, id)
			require.Equal(t, "New title", title)
			return nil
		},
	}
	mc := &mockCache{}
	svc := feedbackservice.NewService(repo, mc, makeLogger())

	err := svc.Update(context.Background(), 7, "alice", models.FeedbackRequest{
		Title:   "New title",
		Content: "New content",
	})
	require.NoError(t, err)
	assert.Contains(t, mc.invalidated, "user:alice")
}

func TestRemove_InvalidatesOwnerProfile(t *testing.T) {
	repo := &mockRepository{
		RemoveFeedbackFunc: func(_ context.Context, id int) error {
			require.Equal(t, 7, id)
			return nil
		},
	}
	mc := &mockCache{}
	svc := feedbackservice.NewService(repo, mc, makeLogger())

	require.NoError(t, svc.Remove(context.Background(), 7, "alice"))
	assert.Contains(t, mc.invalidated, "user:alice")
}
