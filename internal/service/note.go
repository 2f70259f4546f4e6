package service

import (
	"Scribz/internal/model"
	"Scribz/internal/repo"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateNoteInput — поля новой заметки; пустые значения получают значения по умолчанию.
type CreateNoteInput struct {
	Title   string
	Content string
	Color   string
}

// UpdateNoteInput — частичное обновление; nil означает "не менять".
// Флаг корзины здесь не задаётся: только через ToggleTrash.
type UpdateNoteInput struct {
	Title      *string
	Content    *string
	Color      *string
	IsFavorite *bool
}

// NoteService реализует жизненный цикл заметки. Каждый вызов ограничен владельцем:
// чужая заметка неотличима от отсутствующей.
type NoteService struct {
	repo   repo.NoteRepository
	logger *zap.SugaredLogger
}

func NewNoteService(r repo.NoteRepository, logger *zap.SugaredLogger) *NoteService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &NoteService{repo: r, logger: logger}
}

// List возвращает заметки владельца для фильтра и строки поиска.
func (s *NoteService) List(ctx context.Context, ownerID string, filter model.NoteFilter, search string) ([]model.Note, error) {
	notes, err := s.repo.List(ctx, ownerID, repo.NoteQuery{Filter: filter, Search: search})
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if notes == nil {
		notes = []model.Note{}
	}
	return notes, nil
}

// Create сохраняет новую заметку: всегда не избранная и не в корзине.
func (s *NoteService) Create(ctx context.Context, ownerID string, in CreateNoteInput) (*model.Note, error) {
	note := &model.Note{
		ID:      uuid.NewString(),
		UserID:  ownerID,
		Title:   model.NormalizeTitle(in.Title),
		Content: in.Content,
		Color:   model.NormalizeColor(in.Color),
	}
	if err := s.repo.Create(ctx, note); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}
	s.logger.Debugw("note created", "user", ownerID, "note", note.ID)
	return note, nil
}

func (s *NoteService) Get(ctx context.Context, ownerID, noteID string) (*model.Note, error) {
	if !validNoteID(noteID) {
		return nil, ErrNotFound
	}
	note, err := s.repo.GetByID(ctx, ownerID, noteID)
	if err != nil {
		return nil, mapRepoErr("get note", err)
	}
	return note, nil
}

// Update применяет только переданные поля.
func (s *NoteService) Update(ctx context.Context, ownerID, noteID string, in UpdateNoteInput) (*model.Note, error) {
	if !validNoteID(noteID) {
		return nil, ErrNotFound
	}
	patch := repo.NotePatch{Content: in.Content, IsFavorite: in.IsFavorite}
	if in.Title != nil {
		t := model.NormalizeTitle(*in.Title)
		patch.Title = &t
	}
	if in.Color != nil {
		c := model.NormalizeColor(*in.Color)
		patch.Color = &c
	}
	note, err := s.repo.Update(ctx, ownerID, noteID, patch)
	if err != nil {
		return nil, mapRepoErr("update note", err)
	}
	return note, nil
}

// ToggleFavorite переключает избранное, не трогая корзину.
func (s *NoteService) ToggleFavorite(ctx context.Context, ownerID, noteID string) (*model.Note, error) {
	return s.toggle(ctx, ownerID, noteID, repo.FlagFavorite)
}

// ToggleTrash переносит заметку в корзину или восстанавливает её.
func (s *NoteService) ToggleTrash(ctx context.Context, ownerID, noteID string) (*model.Note, error) {
	return s.toggle(ctx, ownerID, noteID, repo.FlagTrashed)
}

// DeletePermanently удаляет заметку из любого состояния.
func (s *NoteService) DeletePermanently(ctx context.Context, ownerID, noteID string) error {
	if !validNoteID(noteID) {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, ownerID, noteID); err != nil {
		return mapRepoErr("delete note", err)
	}
	s.logger.Debugw("note deleted", "user", ownerID, "note", noteID)
	return nil
}

func (s *NoteService) toggle(ctx context.Context, ownerID, noteID string, flag repo.NoteFlag) (*model.Note, error) {
	if !validNoteID(noteID) {
		return nil, ErrNotFound
	}
	note, err := s.repo.Toggle(ctx, ownerID, noteID, flag)
	if err != nil {
		return nil, mapRepoErr("toggle "+string(flag), err)
	}
	return note, nil
}

// validNoteID — некорректный id ведёт себя как отсутствующая заметка.
// Допустима только каноническая запись в нижнем регистре, в которой id хранятся.
func validNoteID(id string) bool {
	parsed, err := uuid.Parse(id)
	return err == nil && parsed.String() == id
}

func mapRepoErr(op string, err error) error {
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}
