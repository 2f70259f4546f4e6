package commands

import (
	"Scribz/internal/config"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
)

var errNotInTrash = errors.New("note is not in trash: run `scribz trash` first or pass --force")

type favCmd struct{}

func (favCmd) Name() string        { return "fav" }
func (favCmd) Description() string { return "Toggle the favorite flag of a note" }
func (favCmd) Usage() string       { return "fav <id>" }

func (favCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	_, notes := services(cfg)
	n, err := notes.ToggleFavorite(ctx, args[0])
	if err != nil {
		return err
	}
	if n.IsFavorite {
		fmt.Fprintf(Out, "Added %s to favorites\n", shortID(n.ID))
	} else {
		fmt.Fprintf(Out, "Removed %s from favorites\n", shortID(n.ID))
	}
	return nil
}

// trashCmd перемещает заметку в корзину (trashed=true) или восстанавливает её.
type trashCmd struct {
	name    string
	trashed bool
}

func (c trashCmd) Name() string { return c.name }
func (c trashCmd) Description() string {
	if c.trashed {
		return "Move a note to trash"
	}
	return "Restore a note from trash"
}
func (c trashCmd) Usage() string { return c.name + " <id>" }

func (c trashCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	_, notes := services(cfg)
	n, changed, err := notes.SetTrashed(ctx, args[0], c.trashed)
	if err != nil {
		return err
	}
	switch {
	case !changed && c.trashed:
		fmt.Fprintf(Out, "Note %s is already in trash\n", shortID(n.ID))
	case !changed:
		fmt.Fprintf(Out, "Note %s is not in trash\n", shortID(n.ID))
	case c.trashed:
		fmt.Fprintf(Out, "Moved %s to trash\n", shortID(n.ID))
	default:
		fmt.Fprintf(Out, "Restored %s\n", shortID(n.ID))
	}
	return nil
}

type rmCmd struct{}

func (rmCmd) Name() string        { return "rm" }
func (rmCmd) Description() string { return "Delete a trashed note permanently" }
func (rmCmd) Usage() string       { return "rm [--force] <id>" }

func (rmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("rm", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	force := fs.Bool("force", false, "delete even if the note is not in trash")
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		return ErrUsage
	}

	_, notes := services(cfg)
	ref := fs.Arg(0)
	if !*force {
		n, err := notes.Show(ctx, ref)
		if err != nil {
			return err
		}
		if !n.IsTrashed {
			return errNotInTrash
		}
		ref = n.ID
	}
	id, err := notes.Delete(ctx, ref)
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Deleted %s\n", shortID(id))
	return nil
}

func init() {
	RegisterCmd(favCmd{})
	RegisterCmd(trashCmd{name: "trash", trashed: true})
	RegisterCmd(trashCmd{name: "restore", trashed: false})
	RegisterCmd(rmCmd{})
}
