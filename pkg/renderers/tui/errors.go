package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNotSubmitted is returned when the user declines the final submit
	// confirmation.
	ErrNotSubmitted = errors.New("tui: submission cancelled")
)
