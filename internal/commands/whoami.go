package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/output"
	"taskcli/internal/service"
	"taskcli/internal/session"
)

func init() {
	Register(&WhoamiCmd{})
}

// WhoamiCmd prints the stored identity.
type WhoamiCmd struct{}

func (c *WhoamiCmd) Name() string       { return "whoami" }
func (c *WhoamiCmd) Aliases() []string  { return nil }
func (c *WhoamiCmd) Synopsis() string   { return "Print the signed-in user" }
func (c *WhoamiCmd) Usage() string      { return "taskcli whoami" }
func (c *WhoamiCmd) NeedsSession() bool { return true }
func (c *WhoamiCmd) NeedsAuth() bool    { return true }

func (c *WhoamiCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *WhoamiCmd) Run(ctx context.Context, cfg *config.Config, store *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	sess, err := store.Load()
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to load session: %v\n", err)
		return exitcode.AuthError
	}
	if sess == nil {
		fmt.Fprintln(errOut, "error: not logged in (run: taskcli login)")
		return exitcode.AuthError
	}
	output.FormatUser(out, sess.User)
	return exitcode.Success
}
