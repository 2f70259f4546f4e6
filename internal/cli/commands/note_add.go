package commands

import (
	"Scribz/internal/cli/api"
	"Scribz/internal/config"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
)

// In — источник для `--content -`. В тестах переназначается.
var In io.Reader = os.Stdin

type addCmd struct{}

func (addCmd) Name() string        { return "add" }
func (addCmd) Description() string { return "Create a note; --content - reads stdin" }
func (addCmd) Usage() string {
	return "add [--color <hex>] [--content <text>|-] [title...]"
}

func (addCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	color := fs.String("color", "", "card color, e.g. #fde68a")
	content := fs.String("content", "", "note body (HTML allowed), - for stdin")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	body, err := readContent(*content)
	if err != nil {
		return err
	}
	_, notes := services(cfg)
	n, err := notes.Add(ctx, api.NoteInput{
		Title:   strings.Join(fs.Args(), " "),
		Content: body,
		Color:   strings.TrimSpace(*color),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Created %s %q\n", shortID(n.ID), n.Title)
	return nil
}

func readContent(v string) (string, error) {
	if v != "-" {
		return v, nil
	}
	b, err := io.ReadAll(In)
	if err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}

func init() { RegisterCmd(addCmd{}) }
