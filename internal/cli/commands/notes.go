package commands

import (
	"Scribz/internal/config"
	"Scribz/internal/model"
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
)

type listCmd struct{}

func (listCmd) Name() string        { return "list" }
func (listCmd) Description() string { return "List notes of the current user" }
func (listCmd) Usage() string {
	return "list [--filter all|favorites|trash] [--search <text>]"
}

func (listCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	filter := fs.String("filter", string(model.FilterAll), "all|favorites|trash")
	search := fs.String("search", "", "substring of the title")
	if err := fs.Parse(args); err != nil || fs.NArg() != 0 {
		return ErrUsage
	}
	switch model.NoteFilter(*filter) {
	case model.FilterAll, model.FilterFavorites, model.FilterTrash:
	default:
		return ErrUsage
	}

	_, notes := services(cfg)
	list, err := notes.List(ctx, *filter, strings.TrimSpace(*search))
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "No notes")
		return nil
	}
	printNoteList(Out, list)
	return nil
}

type showCmd struct{}

func (showCmd) Name() string        { return "show" }
func (showCmd) Description() string { return "Show a note (id or unique id prefix)" }
func (showCmd) Usage() string       { return "show <id>" }

func (showCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	_, notes := services(cfg)
	n, err := notes.Show(ctx, args[0])
	if err != nil {
		return err
	}
	printNote(Out, n)
	return nil
}

func init() {
	RegisterCmd(listCmd{})
	RegisterCmd(showCmd{})
}
