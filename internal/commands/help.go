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
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string       { return "help" }
func (c *HelpCmd) Aliases() []string  { return nil }
func (c *HelpCmd) Synopsis() string   { return "Print usage" }
func (c *HelpCmd) Usage() string      { return "taskcli help" }
func (c *HelpCmd) NeedsSession() bool { return false }
func (c *HelpCmd) NeedsAuth() bool    { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, store *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	fmt.Fprint(out, helpText)
	return exitcode.Success
}

const helpText = `Usage:
  taskcli                                      List tasks
  taskcli list [--status <s>] [--priority <p>] [--search <text>]
          [--sort dueDate|priority] [--order asc|desc]
  taskcli add [--desc <text>] [--due <YYYY-MM-DD>] [--priority <p>]
          [--status <s>] <title...>
  taskcli show <id>
  taskcli edit [--title <t>] [--desc <text>] [--due <YYYY-MM-DD>|none]
          [--priority <p>] [--status <s>] <id>
  taskcli done <id>
  taskcli rm <id>
  taskcli stats
  taskcli photo [url | upload <file>]
  taskcli login --user <name> --password <password>
  taskcli register --user <name> --email <email> --password <password>
  taskcli logout
  taskcli whoami
  taskcli help
  taskcli version

Common flags:
  --config <dir>   Override config directory
  --quiet          Suppress informational output
  --debug          Print debug logs to stderr
`
