package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTarget means the path is neither a qualifying file nor a directory.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrUsage means a required argument is missing or malformed.
	ErrUsage = errors.New("usage error")

	// ErrChecksFailed means at least one file was invalid, flagged or unreadable.
	ErrChecksFailed = errors.New("checks failed")
)

// FileReadError records a file that could not be read. It is attached to that
// file's result and never aborts a batch.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}
