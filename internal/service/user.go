package service

import (
	"Scribz/internal/model"
	"Scribz/internal/repo"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLength = 6
	// bcrypt учитывает только первые 72 байта
	MaxPasswordLength = 72
)

// TokenIssuer выпускает и проверяет токены сессии.
type TokenIssuer interface {
	Generate(userID string) (string, error)
	Parse(token string) (string, error)
}

// AuthResult — ответ на регистрацию и вход.
type AuthResult struct {
	Token string            `json:"token"`
	User  model.UserSummary `json:"user"`
}

// UserService инкапсулирует регистрацию, вход и разрешение токена в пользователя.
type UserService struct {
	repo     repo.UserRepository
	tokens   TokenIssuer
	hashCost int
}

func NewUserService(r repo.UserRepository, tokens TokenIssuer) *UserService {
	return &UserService{repo: r, tokens: tokens, hashCost: bcrypt.DefaultCost}
}

// dummyHash сравнивается с паролем для неизвестного email, чтобы время ответа
// не выдавало наличие аккаунта.
var dummyHash = sync.OnceValue(func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("scribz-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
})

// Register создаёт пользователя и сразу выпускает для него токен.
func (s *UserService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	// занятый email отклоняется раньше проверки пароля
	existing, err := s.repo.GetUserByEmail(ctx, email)
	switch {
	case err == nil && existing != nil:
		return nil, ErrDuplicateAccount
	case err != nil && !errors.Is(err, repo.ErrNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.CreateUser(ctx, &model.User{Email: email, Password: string(hash)})
	if err != nil {
		// гонка двух регистраций ловится уникальным индексом
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateAccount
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return s.issue(user)
}

// Authenticate проверяет пару email/пароль. Неизвестный email и неверный пароль
// дают одну и ту же ErrInvalidCredentials.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash(), []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(user)
}

// ResolveToken возвращает пользователя, которому выдан токен.
func (s *UserService) ResolveToken(ctx context.Context, token string) (*model.User, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMissingToken
	}
	userID, err := s.tokens.Parse(token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUnknownUser
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, ErrUnknownUser
	}
	return user, nil
}

func (s *UserService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, User: user.Summary()}, nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return fmt.Errorf("%w: email is invalid", ErrValidation)
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrValidation, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, MaxPasswordLength)
	}
	return nil
}
