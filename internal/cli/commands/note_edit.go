package commands

import (
	"Scribz/internal/cli/api"
	"Scribz/internal/config"
	"context"
	"flag"
	"fmt"
	"io"
)

type editCmd struct{}

func (editCmd) Name() string        { return "edit" }
func (editCmd) Description() string { return "Change title, content, color or favorite flag" }
func (editCmd) Usage() string {
	return "edit <id> [--title <t>] [--content <c>|-] [--color <hex>] [--favorite=true|false]"
}

func (editCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	ref := args[0]
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	title := fs.String("title", "", "new title")
	content := fs.String("content", "", "new body, - for stdin")
	color := fs.String("color", "", "new color")
	favorite := fs.Bool("favorite", false, "favorite flag")
	if err := fs.Parse(args[1:]); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}

	// в патч попадают только явно заданные флаги
	var patch api.NotePatch
	var readErr error
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "title":
			patch.Title = title
		case "content":
			body, err := readContent(*content)
			readErr = err
			patch.Content = &body
		case "color":
			patch.Color = color
		case "favorite":
			patch.IsFavorite = favorite
		}
	})
	if readErr != nil {
		return readErr
	}
	if patch == (api.NotePatch{}) {
		return ErrUsage
	}

	_, notes := services(cfg)
	n, err := notes.Edit(ctx, ref, patch)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Updated %s %q\n", shortID(n.ID), n.Title)
	return nil
}

func init() { RegisterCmd(editCmd{}) }
