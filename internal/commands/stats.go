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
	"taskcli/internal/taskstore"
)

func init() {
	Register(&StatsCmd{})
}

// StatsCmd prints a summary of the task collection.
type StatsCmd struct{}

func (c *StatsCmd) Name() string       { return "stats" }
func (c *StatsCmd) Aliases() []string  { return nil }
func (c *StatsCmd) Synopsis() string   { return "Show task counts" }
func (c *StatsCmd) Usage() string      { return "taskcli stats" }
func (c *StatsCmd) NeedsSession() bool { return true }
func (c *StatsCmd) NeedsAuth() bool    { return true }

func (c *StatsCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *StatsCmd) Run(ctx context.Context, cfg *config.Config, store *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	tasks := taskstore.New(svc)
	if err := tasks.FetchAll(ctx); err != nil {
		return failAPI(errOut, err)
	}

	output.FormatStats(out, taskstore.Summarize(tasks.Tasks(), time.Now()))
	return exitcode.Success
}
