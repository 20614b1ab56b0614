package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrCollision if an item already exists within the store.
	ErrCollision = errors.New("item already exists")

	// ErrNotFound if the subject of a mutation does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidWriteInput if a mutation argument is malformed.
	ErrInvalidWriteInput = errors.New("invalid write input")
)

// InvalidWriteInputError describes why a mutation was rejected.
func InvalidWriteInputError(field, value string) error {
	return fmt.Errorf("invalid %s: '%s': %w", field, value, ErrInvalidWriteInput)
}

// NotFoundError names the missing subject.
func NotFoundError(kind, uuid string) error {
	return fmt.Errorf("%s '%s': %w", kind, uuid, ErrNotFound)
}
