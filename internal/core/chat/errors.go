package chat

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is wrapped by every input validation failure.
	ErrValidation = errors.New("validation failed")

	// ErrStorage matches any *StorageError via errors.Is.
	ErrStorage = errors.New("storage failure")
)

// StorageError reports a failure of the underlying storage engine.
type StorageError struct {
	Op  string // initialize, append, read
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s messages: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStorage) match without exposing the cause.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}
