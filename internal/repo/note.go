package repo

import (
	"Scribz/internal/model"
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type noteRepo struct {
	db *gorm.DB
}

// NewNoteRepository создаёт реализацию репозитория для Note поверх gorm.
func NewNoteRepository(db *gorm.DB) NoteRepository {
	return &noteRepo{db: db}
}

func (r *noteRepo) List(ctx context.Context, userID string, q NoteQuery) ([]model.Note, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID)
	switch q.Filter {
	case model.FilterFavorites:
		tx = tx.Where("is_favorite = ? AND is_trashed = ?", true, false)
	case model.FilterTrash:
		tx = tx.Where("is_trashed = ?", true)
	default:
		tx = tx.Where("is_trashed = ?", false)
	}
	search := strings.ToLower(q.Search)
	// LOWER в SQLite складывает только ASCII, поэтому там заголовки фильтруются в Go
	filterInGo := search != "" && r.db.Dialector.Name() == "sqlite"
	if search != "" && !filterInGo {
		tx = tx.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+escapeLike(search)+"%")
	}

	notes := make([]model.Note, 0)
	if err := tx.Order("updated_at DESC").Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	if filterInGo {
		notes = filterByTitle(notes, search)
	}
	return notes, nil
}

// filterByTitle оставляет заметки, чей заголовок содержит lowered без учёта регистра.
func filterByTitle(notes []model.Note, lowered string) []model.Note {
	out := notes[:0]
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), lowered) {
			out = append(out, n)
		}
	}
	return out
}

func (r *noteRepo) Create(ctx context.Context, note *model.Note) error {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	now := r.db.NowFunc()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	note.UpdatedAt = note.CreatedAt
	if err := r.db.WithContext(ctx).Create(note).Error; err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create note: %w", err)
	}
	return nil
}

func (r *noteRepo) GetByID(ctx context.Context, userID, id string) (*model.Note, error) {
	var n model.Note
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Take(&n).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &n, nil
}

func (r *noteRepo) Update(ctx context.Context, userID, id string, patch NotePatch) (*model.Note, error) {
	updates := map[string]any{"updated_at": r.db.NowFunc()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Content != nil {
		updates["content"] = *patch.Content
	}
	if patch.Color != nil {
		updates["color"] = *patch.Color
	}
	if patch.IsFavorite != nil {
		updates["is_favorite"] = *patch.IsFavorite
	}
	return r.updateAndReload(ctx, userID, id, updates)
}

func (r *noteRepo) Toggle(ctx context.Context, userID, id string, flag NoteFlag) (*model.Note, error) {
	if !flag.valid() {
		return nil, fmt.Errorf("unknown note flag %q", flag)
	}
	// одна UPDATE-инструкция: параллельные переключения не теряются
	updates := map[string]any{
		string(flag): gorm.Expr("NOT " + string(flag)),
		"updated_at":  r.db.NowFunc(),
	}
	return r.updateAndReload(ctx, userID, id, updates)
}

func (r *noteRepo) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Note{})
	if res.Error != nil {
		return fmt.Errorf("delete note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *noteRepo) updateAndReload(ctx context.Context, userID, id string, updates map[string]any) (*model.Note, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Note{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return nil, fmt.Errorf("update note: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.GetByID(ctx, userID, id)
}

// escapeLike экранирует метасимволы LIKE, чтобы поиск был буквальным.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
