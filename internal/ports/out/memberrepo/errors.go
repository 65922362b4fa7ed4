package memberrepo

import "errors"

var (
	// ErrNotFound indicates the requested member does not exist.
	ErrNotFound = errors.New("member not found")

	// ErrTeamNotFound indicates the member references a team that does not exist.
	ErrTeamNotFound = errors.New("member team not found")
)
