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
	"taskcli/internal/validate"
)

func init() {
	Register(&EditCmd{})
}

// EditCmd implements the edit command. Only the flags the user provided
// change; everything else keeps the server's current value. The update is a
// full replacement with no version check: if two edits race, the later
// response wins.
type EditCmd struct {
	title       string
	description string
	due         string
	priority    string
	status      string

	fs *flag.FlagSet
}

func (c *EditCmd) Name() string      { return "edit" }
func (c *EditCmd) Aliases() []string { return nil }
func (c *EditCmd) Synopsis() string  { return "Edit a task" }
func (c *EditCmd) Usage() string {
	return "taskcli edit [--title <t>] [--desc <text>] [--due <YYYY-MM-DD>|none] [--priority <p>] [--status <s>] <id>"
}
func (c *EditCmd) NeedsSession() bool { return true }
func (c *EditCmd) NeedsAuth() bool    { return true }

func (c *EditCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.title, "title", "", "")
	fs.StringVar(&c.description, "desc", "", "")
	fs.StringVar(&c.description, "d", "", "")
	fs.StringVar(&c.due, "due", "", "")
	fs.StringVar(&c.priority, "priority", "", "")
	fs.StringVar(&c.status, "status", "", "")
	c.fs = fs
}

func (c *EditCmd) Run(ctx context.Context, cfg *config.Config, store *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	id, ok := parseTaskID(args, errOut)
	if !ok {
		return exitcode.UserError
	}

	provided := map[string]bool{}
	if c.fs != nil {
		c.fs.Visit(func(f *flag.Flag) { provided[f.Name] = true })
	}
	if len(provided) == 0 {
		fmt.Fprintln(errOut, "error: nothing to change")
		return exitcode.UserError
	}

	current, err := svc.GetTask(ctx, id)
	if err != nil {
		return failAPI(errOut, err)
	}

	req := service.UpdateTaskRequest{
		Title:       current.Title,
		Description: current.Description,
		DueDate:     current.DueDate,
		Priority:    current.Priority,
		Status:      current.Status,
	}

	if provided["title"] {
		req.Title = c.title
	}
	if provided["desc"] || provided["d"] {
		req.Description = c.description
	}
	if provided["due"] {
		if c.due == "none" {
			req.DueDate = nil
		} else {
			d, err := service.ParseDate(c.due)
			if err != nil {
				fmt.Fprintf(errOut, "error: %v\n", err)
				return exitcode.UserError
			}
			req.DueDate = &d
		}
	}
	if provided["priority"] {
		p, err := service.ParsePriority(c.priority)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		req.Priority = p
	}
	if provided["status"] {
		st, err := service.ParseStatus(c.status)
		if err != nil {
			fmt.Fprintf(errOut, "error: %v\n", err)
			return exitcode.UserError
		}
		req.Status = st
	}

	if err := validate.Struct(req); err != nil {
		fmt.Fprintf(errOut, "error: %s\n", err)
		return exitcode.UserError
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
