package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
	"taskcli/internal/session"
	"taskcli/internal/taskstore"
)

func init() {
	Register(&DoneCmd{})
}

// DoneCmd marks a task completed.
type DoneCmd struct{}

func (c *DoneCmd) Name() string       { return "done" }
func (c *DoneCmd) Aliases() []string  { return []string{"complete"} }
func (c *DoneCmd) Synopsis() string   { return "Mark a task completed" }
func (c *DoneCmd) Usage() string      { return "taskcli done <id>" }
func (c *DoneCmd) NeedsSession() bool { return true }
func (c *DoneCmd) NeedsAuth() bool    { return true }

func (c *DoneCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *DoneCmd) Run(ctx context.Context, cfg *config.Config, store *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := parseTaskID(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	current, err := svc.GetTask(ctx, id)
	if err != nil {
		return failAPI(errOut, err)
	}
	if current.Status == service.StatusCompleted {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already completed")
		}
		return exitcode.Success
	}

	req := service.UpdateTaskRequest{
		Title:       current.Title,
		Description: current.Description,
		DueDate:     current.DueDate,
		Priority:    current.Priority,
		Status:      service.StatusCompleted,
	}

	tasks := taskstore.New(svc)
	if _, err := tasks.Update(ctx, id, req); err != nil {
		return failAPI(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}
