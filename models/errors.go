package models

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound   = errors.New("item not found")
	ErrOutfitNotFound = errors.New("outfit not found")
)

// ValidationError is a rejected user input. The operation made no state change.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StorageReadError is recovered by treating the collection as empty.
type StorageReadError struct {
	Collection string
	Err        error
}

func (e *StorageReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Collection, e.Err)
}

func (e *StorageReadError) Unwrap() error { return e.Err }

// StorageWriteError leaves the in-memory working set authoritative.
type StorageWriteError struct {
	Collection string
	Err        error
}

func (e *StorageWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Collection, e.Err)
}

func (e *StorageWriteError) Unwrap() error { return e.Err }

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
