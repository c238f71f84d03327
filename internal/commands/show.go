package commands

import (
	"context"
	"flag"
	"io"
	"time"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/output"
	"taskcli/internal/service"
	"taskcli/internal/session"
)

func init() {
	Register(&ShowCmd{})
}

// ShowCmd prints a single task.
type ShowCmd struct{}

func (c *ShowCmd) Name() string       { return "show" }
func (c *ShowCmd) Aliases() []string  { return []string{"get"} }
func (c *ShowCmd) Synopsis() string   { return "Show a task" }
func (c *ShowCmd) Usage() string      { return "taskcli show <id>" }
func (c *ShowCmd) NeedsSession() bool { return true }
func (c *ShowCmd) NeedsAuth() bool    { return true }

func (c *ShowCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *ShowCmd) Run(ctx context.Context, cfg *config.Config, store *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := parseTaskID(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	task, err := svc.GetTask(ctx, id)
	if err != nil {
		return failAPI(errOut, err)
	}

	output.FormatTaskDetail(out, task, time.Now())
	return exitcode.Success
}
