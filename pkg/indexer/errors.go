package indexer

import "errors"

var (
	// ErrUninitializedFamily if a full pass of a family did not complete.
	ErrUninitializedFamily = errors.New("document family is not initialized")

	// ErrUnrecoverable if a session without recovery had failures.
	ErrUnrecoverable = errors.New("unrecoverable indexing failures")

	// ErrUnknownFamily if no indexer handles a document family.
	ErrUnknownFamily = errors.New("unknown document family")
)
