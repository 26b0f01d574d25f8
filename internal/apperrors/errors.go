package apperrors

import (
	"errors"
	"fmt"
	"os"

	"github.com/Leandrogm81/Compromissos/internal/logger"
)

// Sentinel errors for the reminder core. Callers classify failures with
// errors.Is rather than string matching.
var (
	// ErrValidation covers user-input failures: empty title, unresolvable
	// datetime, past-dated creation attempts.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidDateTime is returned when civil date/time parts do not compose
	// into a real calendar instant.
	ErrInvalidDateTime = errors.New("invalid date/time")

	// ErrNotFound is returned for operations on an unknown id.
	ErrNotFound = errors.New("not found")

	// ErrStorage wraps underlying persistence failures. Never retried
	// automatically; a write either succeeds or the operation fails visibly.
	ErrStorage = errors.New("storage failure")

	// ErrInvariant marks programmer error, such as asking the recurrence engine
	// to advance a non-recurring reminder.
	ErrInvariant = errors.New("invariant violation")

	// ErrPermissionDenied reports that the notification backend is not allowed
	// to display alerts. Treated as a silent skip, never surfaced as a failure.
	ErrPermissionDenied = errors.New("notification permission denied")
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}
