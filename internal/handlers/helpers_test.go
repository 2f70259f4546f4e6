package handlers_test

import (
	"Scribz/internal/auth"
	"Scribz/internal/config"
	"Scribz/internal/handlers"
	"Scribz/internal/model"
	"Scribz/internal/repo"
	"Scribz/internal/service"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// Minimal mocks
type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*model.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.UserRepository = (*mockUserRepo)(nil)

// --- Helpers ---

// newTestRouter собирает роутер поверх отдельной in-memory SQLite
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	ctx := context.Background()
	store, err := repo.Open(ctx, "file:"+uuid.NewString()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(ctx) })

	return newRouter(store.Users, store.Notes, store)
}

func newRouter(ur repo.UserRepository, nr repo.NoteRepository, pinger handlers.Pinger) http.Handler {
	cfg := &config.Config{AuthSecret: testSecret, TokenTTL: time.Hour, AppEnv: config.EnvDevelopment}
	logger := zap.NewNop().Sugar()

	tokens := auth.NewTokenManager(cfg.AuthSecret, cfg.TokenTTL)
	userSvc := service.NewUserService(ur, tokens)
	noteSvc := service.NewNoteService(nr, logger)

	return handlers.NewHandler(userSvc, noteSvc, logger, cfg, pinger).Router
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewBufferString(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), "body: %s", rr.Body.String())
	return v
}

type authResponse struct {
	Token string            `json:"token"`
	User  model.UserSummary `json:"user"`
}

type messageBody struct {
	Message string `json:"message"`
}

// signup регистрирует пользователя и возвращает токен
func signup(t *testing.T, h http.Handler, email string) string {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    email,
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[authResponse](t, rr).Token
}
