package register_test

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/feedback-board/internal/http-server/handlers/auth/register"
	"github.com/magabrotheeeer/feedback-board/internal/http-server/mware"
	"github.com/magabrotheeeer/feedback-board/internal/models"
	"github.com/magabrotheeeer/feedback-board/internal/storage/repository"
)

type mockRegistrar struct {
	RegisterFunc func(ctx context.Context, req models.RegisterRequest) (*models.User, error)
}

func (m *mockRegistrar) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	return m.RegisterFunc(ctx, req)
}

type mockSessions struct {
	established []string
	fail        bool
}

func (m *mockSessions) Establish(_ http.ResponseWriter, username string) error {
	if m.fail {
		return errors.New("sign error")
	}
	m.established = append(m.established, username)
	return nil
}

func makeLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func validBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(models.RegisterRequest{
		Username:  "testuser",
		Password:  "password123",
		Email:     "test@example.com",
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	return body
}

func TestRegisterHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		reg := &mockRegistrar{
			RegisterFunc: func(_ context.Context, req models.RegisterRequest) (*models.User, error) {
				require.Equal(t, "testuser", req.Username)
				return &models.User{Username: req.Username}, nil
			},
		}
		sessions := &mockSessions{}

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(validBody(t)))
		w := httptest.NewRecorder()

		register.New(makeLogger(), reg, sessions).ServeHTTP(w, req)

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/users/testuser", w.Header().Get("Location"))
		// сессия установлена для нового пользователя
		assert.Equal(t, []string{"testuser"}, sessions.established)
	})

	t.Run("username taken", func(t *testing.T) {
		reg := &mockRegistrar{
			RegisterFunc: func(_ context.Context, _ models.RegisterRequest) (*models.User, error) {
				return nil, repository.ErrUsernameTaken
			},
		}
		sessions := &mockSessions{}

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(validBody(t)))
		w := httptest.NewRecorder()

		register.New(makeLogger(), reg, sessions).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Username taken. Please pick another.")
		assert.Empty(t, sessions.established)
	})

	t.Run("validation error", func(t *testing.T) {
		body, _ := json.Marshal(models.RegisterRequest{
			Username: "averyveryverylongusername", // длиннее 20 символов
			Password: "",
			Email:    "not-an-email",
		})
		reg := &mockRegistrar{
			RegisterFunc: func(_ context.Context, _ models.RegisterRequest) (*models.User, error) {
				t.Fatal("Register should not be called")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
		w := httptest.NewRecorder()

		register.New(makeLogger(), reg, &mockSessions{}).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "field Username is longer than 20 characters")
		assert.Contains(t, w.Body.String(), "field Password is a required field")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		reg := &mockRegistrar{
			RegisterFunc: func(_ context.Context, _ models.RegisterRequest) (*models.User, error) {
				t.Fatal("Register should not be called")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader([]byte("{bad json")))
		w := httptest.NewRecorder()

		register.New(makeLogger(), reg, &mockSessions{}).ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), "failed to decode request")
	})

	t.Run("already logged in redirects to own profile", func(t *testing.T) {
		reg := &mockRegistrar{
			RegisterFunc: func(_ context.Context, _ models.RegisterRequest) (*models.User, error) {
				t.Fatal("Register should not be called")
				return nil, nil
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(validBody(t)))
		req = req.WithContext(mware.ContextWithUsername(req.Context(), "alice"))
		w := httptest.NewRecorder()

		register.New(makeLogger(), reg, &mockSessions{}).ServeHTTP(w, req)

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/users/alice", w.Header().Get("Location"))
	})

	t.Run("storage error", func(t *testing.T) {
		reg := &mockRegistrar{
			RegisterFunc: func(_ context.Context, _ models.RegisterRequest) (*models.User, error) {
				return nil, errors.New("db down")
			},
		}

		req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(validBody(t)))
		w := httptest.NewRecorder()

		register.New(makeLogger(), reg, &mockSessions{}).ServeHTTP(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "failed to register new user")
	})
}

func TestRegisterForm(t *testing.T) {
	t.Run("anonymous gets form", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/register", nil)
		w := httptest.NewRecorder()

		register.Form(makeLogger()).ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "OK")
	})

	t.Run("authenticated redirects to own profile", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/register", nil)
		req = req.WithContext(mware.ContextWithUsername(req.Context(), "alice"))
		w := httptest.NewRecorder()

		register.Form(makeLogger()).ServeHTTP(w, req)

		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/users/alice", w.Header().Get("Location"))
	})
}
