package members

import (
	"fmt"
	"strings"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
)

// SearchMode selects how a paginated search derives its total.
type SearchMode string

const (
	// SearchModeSimple reads content and total from one windowed query.
	SearchModeSimple SearchMode = "simple"
	// SearchModeComplex runs a separate COUNT query.
	SearchModeComplex SearchMode = "complex"
)

// ParseSearchMode maps a request value to a mode; empty means simple.
func ParseSearchMode(s string) (SearchMode, error) {
	switch SearchMode(strings.ToLower(strings.TrimSpace(s))) {
	case "", SearchModeSimple:
		return SearchModeSimple, nil
	case SearchModeComplex:
		return SearchModeComplex, nil
	default:
		return "", fmt.Errorf("%w: unknown search mode %q", domain.ErrInvalidInput, s)
	}
}

type RegisterTeamInput struct {
	Name string
}

type RegisterMemberInput struct {
	// Username is optional; blank is stored as unset.
	Username *string
	Age      int
	TeamID   *domain.TeamID
}
