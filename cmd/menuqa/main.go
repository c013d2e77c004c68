package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Command completed, menu passed
	ExitMenuFailed = 1 // Command completed, but the menu fails quality checks
	ExitError      = 2 // Configuration or runtime error
)

// MenuFailureError indicates the command ran successfully but the menu
// did not pass: schema violations on check, or a failing quality grade
// on report --fail-below.
type MenuFailureError struct {
	Message string
}

func (e *MenuFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var menuFailureErr *MenuFailureError
		if errors.As(err, &menuFailureErr) {
			os.Exit(ExitMenuFailed)
		}

		os.Exit(ExitError)
	}
}
