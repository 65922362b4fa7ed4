package domain

import (
	"fmt"
	"math"
	"strings"
)

// MemberSearchCondition is the optional, multi-field filter of a member search.
//
// Every field is independently optional. A nil field is "filter off this dimension";
// blank strings are treated the same as nil for Username and TeamName.
type MemberSearchCondition struct {
	Username *string
	TeamName *string
	AgeGoe   *int
	AgeLoe   *int
}

// IsEmpty reports whether no field would produce a predicate.
func (c MemberSearchCondition) IsEmpty() bool {
	return !HasText(c.Username) && !HasText(c.TeamName) && c.AgeGoe == nil && c.AgeLoe == nil
}

// MemberTeamRow is the flat projection of a member joined with its (optional) team.
type MemberTeamRow struct {
	MemberID MemberID
	Username *string
	Age      int
	// TeamID and TeamName are nil when the member has no team.
	TeamID   *TeamID
	TeamName *string
}

// SortProperty names a projection column a page may be ordered by.
type SortProperty string

const (
	SortMemberID SortProperty = "memberId"
	SortUsername SortProperty = "username"
	SortAge      SortProperty = "age"
	SortTeamID   SortProperty = "teamId"
	SortTeamName SortProperty = "teamName"
)

func (p SortProperty) valid() bool {
	switch p {
	case SortMemberID, SortUsername, SortAge, SortTeamID, SortTeamName:
		return true
	}
	return false
}

type Direction string

const (
	DirectionAsc  Direction = "ASC"
	DirectionDesc Direction = "DESC"
)

// Order is one ORDER BY term.
type Order struct {
	Property  SortProperty
	Direction Direction
	NullsLast bool
}

func Asc(p SortProperty) Order  { return Order{Property: p, Direction: DirectionAsc} }
func Desc(p SortProperty) Order { return Order{Property: p, Direction: DirectionDesc} }

// WithNullsLast returns a copy of o that sorts NULL values after non-NULL ones.
func (o Order) WithNullsLast() Order {
	o.NullsLast = true
	return o
}

// ParseOrder parses "property[,asc|desc]" (e.g. "age,desc").
func ParseOrder(s string) (Order, error) {
	prop, dir, _ := strings.Cut(strings.TrimSpace(s), ",")
	o := Order{Property: SortProperty(strings.TrimSpace(prop)), Direction: DirectionAsc}
	switch strings.ToUpper(strings.TrimSpace(dir)) {
	case "", "ASC":
	case "DESC":
		o.Direction = DirectionDesc
	default:
		return Order{}, fmt.Errorf("%w: unknown sort direction %q", ErrInvalidInput, dir)
	}
	if !o.Property.valid() {
		return Order{}, fmt.Errorf("%w: unknown sort property %q", ErrInvalidInput, prop)
	}
	return o, nil
}

// PageRequest describes a window over an ordered result set.
type PageRequest struct {
	// Page is the zero-based page number.
	Page int
	Size int
	// Sort is optional; an empty sort orders by member id (insertion order).
	Sort []Order
}

// PageOf builds a page request for the given zero-based page number and size.
func PageOf(page, size int, sort ...Order) PageRequest {
	return PageRequest{Page: page, Size: size, Sort: sort}
}

// Offset is the number of rows skipped before the window starts.
func (p PageRequest) Offset() int64 { return int64(p.Page) * int64(p.Size) }

// Validate rejects a negative page, a non-positive size, an offset that does not fit
// in an int64 and unknown sort terms.
func (p PageRequest) Validate() error {
	if p.Size <= 0 {
		return fmt.Errorf("%w: page size must be positive, got %d", ErrInvalidInput, p.Size)
	}
	if p.Page < 0 {
		return fmt.Errorf("%w: page number must not be negative, got %d", ErrInvalidInput, p.Page)
	}
	if int64(p.Page) > math.MaxInt64/int64(p.Size) {
		return fmt.Errorf("%w: page %d of size %d is out of range", ErrInvalidInput, p.Page, p.Size)
	}
	return ValidateSort(p.Sort)
}

// ValidateSort rejects unknown properties and directions.
func ValidateSort(orders []Order) error {
	for _, o := range orders {
		if !o.Property.valid() {
			return fmt.Errorf("%w: unknown sort property %q", ErrInvalidInput, o.Property)
		}
		if o.Direction != DirectionAsc && o.Direction != DirectionDesc {
			return fmt.Errorf("%w: unknown sort direction %q", ErrInvalidInput, o.Direction)
		}
	}
	return nil
}

// Page is a window's content together with the total count of the unwindowed result.
type Page[T any] struct {
	Content  []T
	Pageable PageRequest
	Total    int64
}

func NewPage[T any](content []T, pageable PageRequest, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{Content: content, Pageable: pageable, Total: total}
}

// Size is the requested page size, not the number of returned elements.
func (p Page[T]) Size() int { return p.Pageable.Size }

func (p Page[T]) NumberOfElements() int { return len(p.Content) }

func (p Page[T]) TotalPages() int {
	if p.Pageable.Size <= 0 {
		return 1
	}
	return int((p.Total + int64(p.Pageable.Size) - 1) / int64(p.Pageable.Size))
}

func (p Page[T]) IsFirst() bool { return p.Pageable.Page == 0 }

func (p Page[T]) HasNext() bool { return p.Pageable.Page+1 < p.TotalPages() }

func (p Page[T]) IsLast() bool { return !p.HasNext() }
