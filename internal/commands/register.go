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
	Register(&RegisterCmd{})
}

// RegisterCmd implements the register command.
type RegisterCmd struct {
	userName string
	email    string
	password string
}

func (c *RegisterCmd) Name() string      { return "register" }
func (c *RegisterCmd) Aliases() []string { return nil }
func (c *RegisterCmd) Synopsis() string  { return "Create a new account" }
func (c *RegisterCmd) Usage() string {
	return "taskcli register --user <name> --email <email> --password <password>"
}
func (c *RegisterCmd) NeedsSession() bool { return true }
func (c *RegisterCmd) NeedsAuth() bool    { return false }

func (c *RegisterCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.userName, "user", "", "")
	fs.StringVar(&c.userName, "u", "", "")
	fs.StringVar(&c.email, "email", "", "")
	fs.StringVar(&c.email, "e", "", "")
	fs.StringVar(&c.password, "password", "", "")
	fs.StringVar(&c.password, "p", "", "")
}

func (c *RegisterCmd) Run(ctx context.Context, cfg *config.Config, store *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	req := service.RegisterRequest{
		UserName: c.userName,
		Email:    c.email,
		Password: c.password,
	}
	if err := validate.Struct(req); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
	}

	msg, err := svc.Register(ctx, req)
	if err != nil {
		fmt.Fprintf(errOut, "error: registration failed: %s\n", api.Message(err))
		return exitcode.BackendError
	}

	if !cfg.Quiet {
		if msg == "" {
			msg = "registered; run: taskcli login"
		}
		fmt.Fprintln(out, msg)
	}
	return exitcode.Success
}
