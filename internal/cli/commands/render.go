package commands

import (
	"Scribz/internal/model"
	"fmt"
	"html"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

const (
	shortIDLength  = 8
	previewLength  = 48
	timestampShown = "2006-01-02 15:04"
)

var tagRe = regexp.MustCompile(`<[^>]*>`)

// styles — оформление вывода; в не-терминал пишем без ANSI-последовательностей.
type styles struct {
	enabled  bool
	renderer *lipgloss.Renderer
	muted    lipgloss.Style
	bold     lipgloss.Style
}

func newStyles(w io.Writer) styles {
	enabled := false
	if f, ok := w.(*os.File); ok && os.Getenv("NO_COLOR") == "" {
		enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	r := lipgloss.NewRenderer(w)
	return styles{
		enabled:  enabled,
		renderer: r,
		muted:    r.NewStyle().Faint(true),
		bold:     r.NewStyle().Bold(true),
	}
}

// swatch — заголовок на фоне цвета заметки.
func (s styles) swatch(n model.Note, text string) string {
	if !s.enabled {
		return text
	}
	return s.renderer.NewStyle().
		Background(lipgloss.Color(n.Color)).
		Foreground(lipgloss.Color("#1f2937")).
		Bold(true).
		Padding(0, 1).
		Render(text)
}

func (s styles) faint(text string) string {
	if !s.enabled {
		return text
	}
	return s.muted.Render(text)
}

func (s styles) strong(text string) string {
	if !s.enabled {
		return text
	}
	return s.bold.Render(text)
}

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func markers(n model.Note) string {
	var b strings.Builder
	if n.IsFavorite {
		b.WriteString("★")
	} else {
		b.WriteString(" ")
	}
	if n.IsTrashed {
		b.WriteString("🗑")
	} else {
		b.WriteString(" ")
	}
	return b.String()
}

// plainText превращает HTML содержимого в одну строку текста.
func plainText(content string) string {
	text := tagRe.ReplaceAllString(content, " ")
	return strings.Join(strings.Fields(html.UnescapeString(text)), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// printNoteList выводит заметки по одной на строку.
func printNoteList(w io.Writer, notes []model.Note) {
	st := newStyles(w)
	for _, n := range notes {
		line := fmt.Sprintf("%s %s %s", st.faint(shortID(n.ID)), markers(n), st.swatch(n, n.Title))
		if preview := truncate(plainText(n.Content), previewLength); preview != "" {
			line += "  " + st.faint(preview)
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintf(w, "Total: %d\n", len(notes))
}

// printNote выводит заметку целиком.
func printNote(w io.Writer, n *model.Note) {
	st := newStyles(w)
	fmt.Fprintln(w, st.swatch(*n, n.Title))
	fmt.Fprintf(w, "  id:       %s\n", n.ID)
	fmt.Fprintf(w, "  color:    %s\n", n.Color)
	fmt.Fprintf(w, "  favorite: %t\n", n.IsFavorite)
	fmt.Fprintf(w, "  trashed:  %t\n", n.IsTrashed)
	fmt.Fprintf(w, "  created:  %s\n", n.CreatedAt.Local().Format(timestampShown))
	fmt.Fprintf(w, "  updated:  %s\n", n.UpdatedAt.Local().Format(timestampShown))
	if text := plainText(n.Content); text != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  "+text)
	}
}
