package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"taskcli/internal/api"
	"taskcli/internal/exitcode"
)

// failAPI prints a failed API call and returns the matching exit code.
// A 401 already cleared the session store by the time it reaches here.
func failAPI(errOut io.Writer, err error) int {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.SessionExpired() {
		fmt.Fprintln(errOut, "error: session expired (run: taskcli login)")
		return exitcode.AuthError
	}
	fmt.Fprintf(errOut, "error: %s\n", api.Message(err))
	return exitcode.BackendError
}

// parseTaskID parses a positional task id argument.
func parseTaskID(args []string, errOut io.Writer) (int, bool) {
	if len(args) == 0 {
		fmt.Fprintln(errOut, "error: task id required")
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		fmt.Fprintf(errOut, "error: invalid task id: %s\n", args[0])
		return 0, false
	}
	return id, true
}
