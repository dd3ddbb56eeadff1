package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is returned when a value has the wrong type, e.g. a non-integer quantity.
	ErrTypeMismatch = errors.New("inventory: type mismatch")

	// ErrInvalidArgument is returned for well-typed but invalid values.
	ErrInvalidArgument = errors.New("inventory: invalid argument")

	// ErrInvalidFormat is returned when persisted data is not an item -> quantity object.
	ErrInvalidFormat = errors.New("inventory: invalid inventory file format")

	// ErrIOFailure wraps read and write failures of persisted data.
	ErrIOFailure = errors.New("inventory: io failure")
)

// MalformedError reports persisted data that could not be parsed at all.
type MalformedError struct {
	Path string
	Err  error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}
