package commands

import (
	"Scribz/internal/config"
	"context"
	"errors"
	"fmt"
	"strings"

	"Scribz/internal/cli/repo"
)

type signupCmd struct{}

func (signupCmd) Name() string        { return "signup" }
func (signupCmd) Description() string { return "Create an account and store its token" }
func (signupCmd) Usage() string       { return "signup <email> <password>" }

func (signupCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	auth, _ := services(cfg)
	user, err := auth.Signup(ctx, strings.TrimSpace(args[0]), args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Signed up as %s\n", user.Email)
	return nil
}

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Log in and store the auth token" }
func (loginCmd) Usage() string       { return "login <email> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	auth, _ := services(cfg)
	user, err := auth.Login(ctx, strings.TrimSpace(args[0]), args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Logged in as %s\n", user.Email)
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Forget the stored auth token" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	auth, _ := services(cfg)
	if err := auth.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

type meCmd struct{}

func (meCmd) Name() string        { return "me" }
func (meCmd) Description() string { return "Show the account of the stored token" }
func (meCmd) Usage() string       { return "me" }

func (meCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	auth, _ := services(cfg)
	user, err := auth.Me(ctx)
	if err != nil {
		if errors.Is(err, repo.ErrNoToken) {
			fmt.Fprintln(Out, "Not logged in")
			return nil
		}
		return err
	}
	st := newStyles(Out)
	fmt.Fprintf(Out, "Logged in as %s (id %s)\n", st.strong(user.Email), user.ID)
	return nil
}

func init() {
	RegisterCmd(signupCmd{})
	RegisterCmd(loginCmd{})
	RegisterCmd(logoutCmd{})
	RegisterCmd(meCmd{})
}
