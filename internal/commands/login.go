package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskcli/internal/api"
	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
	"taskcli/internal/session"
	"taskcli/internal/validate"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct {
	userName string
	password string
}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Sign in and store the session" }
func (c *LoginCmd) Usage() string      { return "taskcli login --user <name> --password <password>" }
func (c *LoginCmd) NeedsSession() bool { return true }
func (c *LoginCmd) NeedsAuth() bool    { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.userName, "user", "", "")
	fs.StringVar(&c.userName, "u", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.password, "p", "", "")
}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, store *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	if store.IsAuthenticated() {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in (run: taskcli logout first)")
		}
		return exitcode.Success
	}

	req := service.LoginRequest{UserName: c.userName, Password: c.password}
	if err := validate.Struct(req); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	user, err := svc.Login(ctx, req)
	if err != nil {
		fmt.Fprintf(errOut, "error: login failed: %s\n", api.Message(err))
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "logged in as %s\n", user.UserName)
	}
	return exitcode.Success
}
