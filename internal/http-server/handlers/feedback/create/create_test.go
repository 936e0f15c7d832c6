package create_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/feedback-board/internal/http-server/handlers/feedback/create"
	"github.com/magabrotheeeer/feedback-board/internal/models"
)

type mockFeedback struct {
	AddFunc func(ctx context.Context, username string, req models.FeedbackRequest) (int, error)
}

func (m *mockFeedback) Add(ctx context.Context, username string, req models.FeedbackRequest) (int, error) {
	return m.AddFunc(ctx, username, req)
}

func makeLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func addRequest(t *testing.T, username string, body any) *http.Request {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("username", username)
	req := httptest.NewRequest(http.MethodPost, "/users/"+username+"/feedback/add", bytes.NewReader(raw))
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestCreateFeedback_Success(t *testing.T) {
	feedback := &mockFeedback{
		AddFunc: func(_ context.Context, username string, req models.FeedbackRequest) (int, error) {
			require.Equal(t, "alice", username)
			require.Equal(t, "Great service", req.Title)
			return 7, nil
		},
	}

	w := httptest.NewRecorder()
	create.New(makeLogger(), feedback).ServeHTTP(w, addRequest(t, "alice", models.FeedbackRequest{
		Title:   "Great service",
		Content: "Really enjoyed it",
	}))

	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/users/alice", w.Header().Get("Location"))
}

func TestCreateFeedback_ValidationError(t *testing.T) {
	feedback := &mockFeedback{
		AddFunc: func(_ context.Context, _ string, _ models.FeedbackRequest) (int, error) {
			t.Fatal("Add should not be called")
			return 0, nil
		},
	}

	w := httptest.NewRecorder()
	create.New(makeLogger(), feedback).ServeHTTP(w, addRequest(t, "alice", models.FeedbackRequest{
		Title:   "",
		Content: "",
	}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "field Title is a required field")
	assert.Contains(t, w.Body.String(), "field Content is a required field")
}

func TestCreateFeedback_TitleTooLong(t *testing.T) {
	feedback := &mockFeedback{
		AddFunc: func(_ context.Context, _ string, _ models.FeedbackRequest) (int, error) {
			t.Fatal("Add should not be called")
			return 0, nil
		},
	}

	longTitle := make([]byte, 101)
	for i := range longTitle {
		longTitle[i] = 'a'
	}

	w := httptest.NewRecorder()
	create.New(makeLogger(), feedback).ServeHTTP(w, addRequest(t, "alice", models.FeedbackRequest{
		Title:   string(longTitle),
		Content: "ok",
	}))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "field Title is longer than 100 characters")
}

func TestCreateFeedback_StorageError(t *testing.T) {
	feedback := &mockFeedback{
		AddFunc: func(_ context.Context, _ string, _ models.FeedbackRequest) (int, error) {
			return 0, errors.New("db down")
		},
	}

	w := httptest.NewRecorder()
	create.New(makeLogger(), feedback).ServeHTTP(w, addRequest(t, "alice", models.FeedbackRequest{
		Title:   "Great service",
		Content: "Really enjoyed it",
	}))

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateFeedbackForm(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/alice/feedback/add", nil)
	w := httptest.NewRecorder()

	create.Form(makeLogger()).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
