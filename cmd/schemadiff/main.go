package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/pgEdge/schemadiff/internal/apperrors"
	"github.com/pgEdge/schemadiff/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a returned error to the process exit code space of
// spec.md §6: typed apperrors.Error carries its own mapping, anything else
// is a generic error.
func exitCodeFor(err error) int {
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr.ExitCode()
	}
	return 1
}
