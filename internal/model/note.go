package model

import (
	"strings"
	"time"
)

const (
	DefaultNoteTitle = "Untitled"
	DefaultNoteColor = "#ffffff"
)

// Note — серверная модель заметки пользователя.
// IsTrashed — флаг мягкого удаления: заметка в корзине по-прежнему хранится и принадлежит владельцу.
type Note struct {
	ID     string `gorm:"primaryKey;size:36" json:"id" bson:"_id"`
	UserID string `gorm:"not null;size:36;index:idx_notes_user_trashed,priority:1;index:idx_notes_user_favorite,priority:1" json:"user" bson:"user_id"`

	Title   string `gorm:"not null" json:"title" bson:"title"`
	Content string `gorm:"type:text;not null" json:"content" bson:"content"`
	Color   string `gorm:"size:32;not null" json:"color" bson:"color"`

	IsFavorite bool `gorm:"not null;index:idx_notes_user_favorite,priority:2" json:"isFavorite" bson:"is_favorite"`
	IsTrashed  bool `gorm:"not null;index:idx_notes_user_trashed,priority:2" json:"isTrashed" bson:"is_trashed"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt" bson:"updated_at"`
}

// NoteFilter selects a visibility class of notes.
type NoteFilter string

const (
	FilterAll       NoteFilter = "all"
	FilterFavorites NoteFilter = "favorites"
	FilterTrash     NoteFilter = "trash"
)

// ParseNoteFilter maps a query value to a filter. Unknown values mean "all".
func ParseNoteFilter(s string) NoteFilter {
	switch NoteFilter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterFavorites:
		return FilterFavorites
	case FilterTrash:
		return FilterTrash
	default:
		return FilterAll
	}
}

// VisibleIn reports whether the note belongs to the view selected by f.
func (n *Note) VisibleIn(f NoteFilter) bool {
	switch f {
	case FilterFavorites:
		return n.IsFavorite && !n.IsTrashed
	case FilterTrash:
		return n.IsTrashed
	default:
		return !n.IsTrashed
	}
}

// NormalizeTitle trims the title and substitutes the default for an empty one.
func NormalizeTitle(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return DefaultNoteTitle
	}
	return title
}

// NormalizeColor substitutes the default color for an empty one.
func NormalizeColor(color string) string {
	color = strings.TrimSpace(color)
	if color == "" {
		return DefaultNoteColor
	}
	return color
}
