package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"taskcli/internal/config"
	"taskcli/internal/exitcode"
	"taskcli/internal/service"
	"taskcli/internal/session"
)

func init() {
	Register(&PhotoCmd{})
}

// PhotoCmd manages the profile photo.
// `taskcli photo` prints the current photo URL; `taskcli photo upload <file>`
// uploads a new one.
type PhotoCmd struct{}

func (c *PhotoCmd) Name() string       { return "photo" }
func (c *PhotoCmd) Aliases() []string  { return nil }
func (c *PhotoCmd) Synopsis() string   { return "Show or upload the profile photo" }
func (c *PhotoCmd) Usage() string      { return "taskcli photo [url | upload <file>]" }
func (c *PhotoCmd) NeedsSession() bool { return true }
func (c *PhotoCmd) NeedsAuth() bool    { return true }

func (c *PhotoCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *PhotoCmd) Run(ctx context.Context, cfg *config.Config, store *session.Store, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) == 1 && args[0] == "url" {
		args = nil
	}
	if len(args) == 0 {
		url, err := svc.ProfilePhoto(ctx)
		if err != nil {
			return failAPI(errOut, err)
		}
		if url == "" {
			if !cfg.Quiet {
				fmt.Fprintln(out, "no profile photo")
			}
			return exitcode.Success
		}
		fmt.Fprintln(out, url)
		return exitcode.Success
	}

	if args[0] != "upload" || len(args) != 2 {
		fmt.Fprintf(errOut, "error: usage: %s\n", c.Usage())
		return exitcode.UserError
	}

	path := args[1]
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(errOut, "error: cannot open %s: %v\n", path, err)
		return exitcode.UserError
	}
	defer f.Close()

	res, err := svc.UploadPhoto(ctx, filepath.Base(path), f)
	if err != nil {
		return failAPI(errOut, err)
	}

	if !cfg.Quiet {
		msg := res.Message
		if msg == "" {
			msg = "ok"
		}
		fmt.Fprintln(out, msg)
	}
	if res.URL != "" {
		fmt.Fprintln(out, res.URL)
	}
	return exitcode.Success
}
