// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - CLI error types and exit codes.

package cli

import (
	"errors"
	"fmt"

	"github.com/jeranaias/authfront-tui/internal/flow"
)

// Exit codes.
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
	ExitAborted = 130
)

// ErrNotified marks a failure the user has already seen as a notification.
// Execute does not print it a second time.
var ErrNotified = errors.New("already reported")

// UsageError is a malformed command line.
type UsageError struct {
	Command string
	Reason  string
}

func (e *UsageError) Error() string {
	if e.Command == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Command, e.Reason)
}

func usageErr(command, format string, args ...any) error {
	return &UsageError{Command: command, Reason: fmt.Sprintf(format, args...)}
}

// reported tags flow errors that have already produced a notification.
// Local validation failures are returned as-is so Execute prints them.
func reported(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, flow.ErrRequired) || errors.Is(err, flow.ErrWrongStage) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrNotified, err)
}

// ExitCode maps an error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, ErrAborted) {
		return ExitAborted
	}
	var usage *UsageError
	if errors.As(err, &usage) {
		return ExitUsage
	}
	return ExitError
}
