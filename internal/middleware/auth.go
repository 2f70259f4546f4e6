package middleware

import (
	"Scribz/internal/model"
	"Scribz/internal/service"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/render"
)

type ctxKey int

const userCtxKey ctxKey = iota

// TokenResolver разрешает bearer-токен в пользователя.
type TokenResolver interface {
	ResolveToken(ctx context.Context, token string) (*model.User, error)
}

// WithAuth требует заголовок Authorization: Bearer <token>.
// Без токена или с невалидным токеном запрос завершается 401.
func WithAuth(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.ResolveToken(r.Context(), BearerToken(r))
			if err != nil {
				status, msg := authFailure(err)
				if status == http.StatusInternalServerError {
					logger.Errorw("resolve token", "error", err, "uri", r.RequestURI)
				}
				render.Status(r, status)
				render.JSON(w, r, map[string]string{"message": msg})
				return
			}
			ctx := context.WithValue(r.Context(), userCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken извлекает токен из заголовка Authorization. Пустая строка — токена нет.
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		// значение без схемы считаем самим токеном
		if !ok {
			return h
		}
		return ""
	}
	return strings.TrimSpace(token)
}

// GetUserFromContext возвращает пользователя, установленного WithAuth.
func GetUserFromContext(ctx context.Context) (*model.User, bool) {
	u, ok := ctx.Value(userCtxKey).(*model.User)
	return u, ok && u != nil
}

// GetUserIDFromContext возвращает id пользователя, установленного WithAuth.
func GetUserIDFromContext(ctx context.Context) (string, bool) {
	u, ok := GetUserFromContext(ctx)
	if !ok {
		return "", false
	}
	return u.ID, true
}

func authFailure(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrMissingToken):
		return http.StatusUnauthorized, service.ErrMissingToken.Error()
	case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrUnknownUser):
		return http.StatusUnauthorized, service.ErrInvalidToken.Error()
	default:
		return http.StatusInternalServerError, "server error"
	}
}
