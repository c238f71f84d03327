package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/output"
	"taskcli/internal/service"
	"taskcli/internal/session"
	"taskcli/internal/taskstore"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `taskcli` (no args) and `taskcli list` with filter flags.
type ListCmd struct {
	status   string
	priority string
	search   string
	sortBy   string
	order    string
}

func (c *ListCmd) Name() string       { return "list" }
func (c *ListCmd) Aliases() []string  { return []string{"ls"} }
func (c *ListCmd) Synopsis() string   { return "List tasks" }
func (c *ListCmd) Usage() string {
	return "taskcli list [--status <s>] [--priority <p>] [--search <text>] [--sort dueDate|priority] [--order asc|desc]"
}
func (c *ListCmd) NeedsSession() bool { return true }
func (c *ListCmd) NeedsAuth() bool    { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.status, "status", taskstore.FilterAll, "")
	fs.StringVar(&c.priority, "priority", taskstore.FilterAll, "")
	fs.StringVar(&c.search, "search", "", "")
	fs.StringVar(&c.sortBy, "sort", string(taskstore.SortByDueDate), "")
	fs.StringVar(&c.order, "order", string(taskstore.Asc), "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, store *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	filters, err := c.parseFilters()
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	}

	tasks := taskstore.New(svc)
	if err := tasks.FetchAll(ctx); err != nil {
		return failAPI(errOut, err)
	}
	tasks.SetFilters(filters)

	view := tasks.View()
	if len(view) == 0 {
		if !cfg.Quiet {
			fmt.Fprintln(out, "no tasks found")
		}
		return exitcode.Success
	}

	output.FormatTaskList(out, view, time.Now())
	return exitcode.Success
}

func (c *ListCmd) parseFilters() (taskstore.Filters, error) {
	f := taskstore.DefaultFilters()
	f.Search = c.search

	if !strings.EqualFold(c.status, taskstore.FilterAll) {
		st, err := service.ParseStatus(c.status)
		if err != nil {
			return f, err
		}
		f.Status = string(st)
	}

	if !strings.EqualFold(c.priority, taskstore.FilterAll) {
		p, err := service.ParsePriority(c.priority)
		if err != nil {
			return f, err
		}
		f.Priority = string(p)
	}

	switch {
	case strings.EqualFold(c.sortBy, string(taskstore.SortByDueDate)):
		f.SortBy = taskstore.SortByDueDate
	case strings.EqualFold(c.sortBy, string(taskstore.SortByPriority)):
		f.SortBy = taskstore.SortByPriority
	default:
		return f, fmt.Errorf("invalid sort key: %s", c.sortBy)
	}

	switch {
	case strings.EqualFold(c.order, string(taskstore.Asc)):
		f.SortOrder = taskstore.Asc
	case strings.EqualFold(c.order, string(taskstore.Desc)):
		f.SortOrder = taskstore.Desc
	default:
		return f, fmt.Errorf("invalid sort order: %s", c.order)
	}

	return f, nil
}
