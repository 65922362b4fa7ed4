package domain

import "errors"

var (
	// ErrInvalidInput indicates a malformed search condition or page request.
	// It is always returned before any query is issued.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInconsistentPage indicates that a split-mode page returned more content than its
	// count query allows, which only happens when the store changed between the two queries.
	ErrInconsistentPage = errors.New("page content exceeds reported total")
)
