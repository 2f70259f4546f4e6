package repo

import (
	"Scribz/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository создаёт реализацию репозитория для User поверх gorm.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&u).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&u).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &u, nil
}

// notFound переводит gorm.ErrRecordNotFound в ErrNotFound, остальное оборачивает.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("query: %w", err)
}

// isDuplicate распознаёт нарушение уникальности: gorm переводит его для postgres,
// а для modernc sqlite приходится смотреть код ошибки.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var se *sqlite.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
	}
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
