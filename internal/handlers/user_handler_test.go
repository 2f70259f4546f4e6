package handlers_test

import (
	"Scribz/internal/model"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUser_Signup(t *testing.T) {
	router := newTestRouter(t)

	t.Run("ok", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
			"email": "john@example.com", "password": "secret123",
		})
		require.Equal(t, http.StatusCreated, rr.Code)

		body := decode[authResponse](t, rr)
		assert.NotEmpty(t, body.Token)
		assert.NotEmpty(t, body.User.ID)
		assert.Equal(t, "john@example.com", body.User.Email)
		assert.NotContains(t, rr.Body.String(), "password")
	})

	t.Run("conflict", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
			"email": "john@example.com", "password": "another1",
		})
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, "user already exists", decode[messageBody](t, rr).Message)
	})

	t.Run("conflict wins over password rules", func(t *testing.T) {
		for _, pass := range []string{"abc", ""} {
			rr := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
				"email": "john@example.com", "password": pass,
			})
			assert.Equal(t, http.StatusConflict, rr.Code, "password %q", pass)
		}
	})

	t.Run("validation", func(t *testing.T) {
		for _, body := range []string{
			`{"email":"","password":"secret123"}`,
			`{"email":"not-an-email","password":"secret123"}`,
			`{"email":"a@example.com","password":"short"}`,
			`{"email":"a@example.com"}`,
			`{"email":"a@example.com","password":"` + strings.Repeat("x", 73) + `"}`,
		} {
			rr := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, body)
			assert.NotEmpty(t, decode[messageBody](t, rr).Message)
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", `{"email":`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUser_Login(t *testing.T) {
	router := newTestRouter(t)
	signup(t, router, "alice@example.com")

	t.Run("ok", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "secret123",
		})
		require.Equal(t, http.StatusOK, rr.Code)
		body := decode[authResponse](t, rr)
		assert.NotEmpty(t, body.Token)
		assert.Equal(t, "alice@example.com", body.User.Email)
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		wrong := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "alice@example.com", "password": "bad-password",
		})
		unknown := doJSON(t, router, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email": "ghost@example.com", "password": "secret123",
		})
		assert.Equal(t, http.StatusUnauthorized, wrong.Code)
		assert.Equal(t, http.StatusUnauthorized, unknown.Code)
		assert.Equal(t, wrong.Body.String(), unknown.Body.String())
	})

	t.Run("missing fields", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodPost, "/api/auth/login", "", `{"email":"alice@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestUser_Me(t *testing.T) {
	router := newTestRouter(t)
	token := signup(t, router, "carol@example.com")

	t.Run("authorized", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
		require.Equal(t, http.StatusOK, rr.Code)
		body := decode[model.UserSummary](t, rr)
		assert.Equal(t, "carol@example.com", body.Email)
		assert.NotEmpty(t, body.ID)
	})

	t.Run("missing token", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/auth/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "no token, authorization denied", decode[messageBody](t, rr).Message)
	})

	t.Run("invalid token", func(t *testing.T) {
		rr := doJSON(t, router, http.MethodGet, "/api/auth/me", token+"x", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "token is not valid", decode[messageBody](t, rr).Message)
	})
}

func TestUser_StoreFailureIsGenericServerError(t *testing.T) {
	m := new(mockUserRepo)
	router := newRouter(m, nil, nil)

	m.On("GetUserByEmail", mock.Anything, "x@example.com").Return(nil, errors.New("connection refused")).Once()

	rr := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "x@example.com", "password": "secret123",
	})
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	msg := decode[messageBody](t, rr).Message
	assert.Equal(t, "server error", msg)
	assert.False(t, strings.Contains(msg, "connection refused"))
	m.AssertExpectations(t)
}
