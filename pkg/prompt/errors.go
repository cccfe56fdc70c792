package prompt

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("prompt: aborted")
	// ErrNoChoice is returned when a select prompt answers outside its options.
	ErrNoChoice = errors.New("prompt: no option chosen")
)
