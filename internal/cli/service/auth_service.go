package service

import (
	"Scribz/internal/cli/api"
	"Scribz/internal/cli/repo"
	"Scribz/internal/model"
	"context"
	"errors"
	"fmt"
)

// AuthService описывает юзкейс-уровень аутентификации для CLI.
type AuthService interface {
	// Signup регистрирует пользователя и сохраняет его токен.
	Signup(ctx context.Context, email, password string) (*model.UserSummary, error)

	// Login логирование пользователя.
	Login(ctx context.Context, email, password string) (*model.UserSummary, error)

	// Logout очищает локальный контекст аутентификации.
	Logout() error

	// CurrentUser возвращает email текущего пользователя, если он установлен.
	CurrentUser() (string, error)

	// Me проверяет сохранённый токен на сервере.
	Me(ctx context.Context) (*model.UserSummary, error)
}

type authService struct {
	client *api.Client
	tokens repo.TokenStore
	users  repo.UserContextStore
}

func NewAuthService(client *api.Client, tokens repo.TokenStore, users repo.UserContextStore) AuthService {
	return &authService{client: client, tokens: tokens, users: users}
}

func (s *authService) Signup(ctx context.Context, email, password string) (*model.UserSummary, error) {
	res, err := s.client.Signup(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.persist(res)
}

func (s *authService) Login(ctx context.Context, email, password string) (*model.UserSummary, error) {
	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return s.persist(res)
}

func (s *authService) Logout() error {
	return s.tokens.Clear()
}

func (s *authService) CurrentUser() (string, error) {
	return s.users.LoadEmail()
}

func (s *authService) Me(ctx context.Context) (*model.UserSummary, error) {
	token, err := s.tokens.Load()
	if err != nil {
		return nil, err
	}
	return s.client.Me(ctx, token)
}

func (s *authService) persist(res *api.AuthResponse) (*model.UserSummary, error) {
	if res.Token == "" {
		return nil, errors.New("server returned no token")
	}
	if err := s.tokens.Save(res.Token); err != nil {
		return nil, fmt.Errorf("saving auth: %w", err)
	}
	if err := s.users.SaveEmail(res.User.Email); err != nil {
		return nil, fmt.Errorf("saving user context: %w", err)
	}
	return &res.User, nil
}
