package scaffold

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("scaffold: aborted")
	// ErrNoDriver is returned when the scaffolder has no prompt driver.
	ErrNoDriver = errors.New("scaffold: prompt driver is required")
)
