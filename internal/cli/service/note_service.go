package service

import (
	"Scribz/internal/cli/api"
	"Scribz/internal/cli/repo"
	"Scribz/internal/model"
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoteNotFound  = errors.New("note not found")
	ErrAmbiguousNote = errors.New("note id prefix is ambiguous")
)

// fullIDLength — длина UUID в каноническом виде.
const fullIDLength = 36

// NoteService описывает юзкейс-уровень работы с заметками для CLI. Токен читается
// из хранилища на каждый вызов и явно передаётся API-клиенту.
type NoteService struct {
	client *api.Client
	tokens repo.TokenStore
}

func NewNoteService(client *api.Client, tokens repo.TokenStore) *NoteService {
	return &NoteService{client: client, tokens: tokens}
}

func (s *NoteService) List(ctx context.Context, filter, search string) ([]model.Note, error) {
	token, err := s.tokens.Load()
	if err != nil {
		return nil, err
	}
	return s.client.ListNotes(ctx, token, filter, search)
}

func (s *NoteService) Add(ctx context.Context, in api.NoteInput) (*model.Note, error) {
	token, err := s.tokens.Load()
	if err != nil {
		return nil, err
	}
	return s.client.CreateNote(ctx, token, in)
}

func (s *NoteService) Show(ctx context.Context, ref string) (*model.Note, error) {
	token, id, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.client.GetNote(ctx, token, id)
}

func (s *NoteService) Edit(ctx context.Context, ref string, patch api.NotePatch) (*model.Note, error) {
	token, id, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.client.UpdateNote(ctx, token, id, patch)
}

func (s *NoteService) ToggleFavorite(ctx context.Context, ref string) (*model.Note, error) {
	token, id, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.client.ToggleFavorite(ctx, token, id)
}

// SetTrashed переводит заметку в нужное состояние корзины. Сервер умеет только
// переключать, поэтому текущее состояние проверяется заранее; changed=false,
// если заметка уже в целевом состоянии.
func (s *NoteService) SetTrashed(ctx context.Context, ref string, trashed bool) (note *model.Note, changed bool, err error) {
	token, id, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, false, err
	}
	current, err := s.client.GetNote(ctx, token, id)
	if err != nil {
		return nil, false, err
	}
	if current.IsTrashed == trashed {
		return current, false, nil
	}
	note, err = s.client.ToggleTrash(ctx, token, id)
	if err != nil {
		return nil, false, err
	}
	return note, true, nil
}

func (s *NoteService) Delete(ctx context.Context, ref string) (string, error) {
	token, id, err := s.resolve(ctx, ref)
	if err != nil {
		return "", err
	}
	return id, s.client.DeleteNote(ctx, token, id)
}

// resolve загружает токен и раскрывает короткий префикс id в полный id.
func (s *NoteService) resolve(ctx context.Context, ref string) (token, id string, err error) {
	token, err = s.tokens.Load()
	if err != nil {
		return "", "", err
	}
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return "", "", ErrNoteNotFound
	}
	if len(ref) >= fullIDLength {
		return token, ref, nil
	}

	// префикс ищем и среди активных, и в корзине
	var matches []string
	for _, filter := range []model.NoteFilter{model.FilterAll, model.FilterTrash} {
		notes, err := s.client.ListNotes(ctx, token, string(filter), "")
		if err != nil {
			return "", "", err
		}
		for _, n := range notes {
			if strings.HasPrefix(n.ID, ref) {
				matches = append(matches, n.ID)
			}
		}
	}
	switch len(matches) {
	case 0:
		return "", "", fmt.Errorf("%w: %s", ErrNoteNotFound, ref)
	case 1:
		return token, matches[0], nil
	default:
		return "", "", fmt.Errorf("%w: %s matches %d notes", ErrAmbiguousNote, ref, len(matches))
	}
}
