package repo

import (
	"Scribz/internal/model"
	"context"
	"errors"
)

var (
	// ErrNotFound — запись не найдена или принадлежит другому пользователю.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate — нарушение уникальности (например, email уже занят).
	ErrDuplicate = errors.New("duplicate record")
)

// UserRepository минимальный контракт доступа к User.
type UserRepository interface {
	// CreateUser сохраняет пользователя; ErrDuplicate, если email уже занят.
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	// GetUserByEmail returns ErrNotFound for an unknown email.
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	// GetUserByID returns ErrNotFound for an unknown id.
	GetUserByID(ctx context.Context, id string) (*model.User, error)
}

// NoteQuery selects the notes returned by NoteRepository.List.
type NoteQuery struct {
	Filter model.NoteFilter
	// Search, when non-empty, is matched as a case-insensitive substring of the title.
	Search string
}

// NotePatch — частичное обновление: nil означает "не менять".
type NotePatch struct {
	Title      *string
	Content    *string
	Color      *string
	IsFavorite *bool
}

// NoteFlag is a boolean note attribute that can be flipped atomically.
type NoteFlag string

const (
	FlagFavorite NoteFlag = "is_favorite"
	FlagTrashed  NoteFlag = "is_trashed"
)

func (f NoteFlag) valid() bool {
	return f == FlagFavorite || f == FlagTrashed
}

// NoteRepository определяет контракт доступа к Note. Каждый метод фильтрует
// по паре (id, userID): чужая заметка возвращает ErrNotFound.
type NoteRepository interface {
	// List returns the user's notes matching q, most recently updated first.
	List(ctx context.Context, userID string, q NoteQuery) ([]model.Note, error)
	Create(ctx context.Context, note *model.Note) error
	GetByID(ctx context.Context, userID, id string) (*model.Note, error)
	Update(ctx context.Context, userID, id string, patch NotePatch) (*model.Note, error)
	// Toggle flips flag in a single atomic write and returns the updated note.
	Toggle(ctx context.Context, userID, id string, flag NoteFlag) (*model.Note, error)
	Delete(ctx context.Context, userID, id string) error
}
