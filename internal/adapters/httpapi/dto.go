package httpapi

import (
	"github.com/oapi-codegen/nullable"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
)

type Team struct {
	TeamID int64  `json:"teamId"`
	Name   string `json:"name"`
}

type Member struct {
	MemberID int64                     `json:"memberId"`
	Username nullable.Nullable[string] `json:"username"`
	Age      int                       `json:"age"`
	TeamID   nullable.Nullable[int64]  `json:"teamId"`
}

// MemberTeamRow is the flat search projection.
type MemberTeamRow struct {
	MemberID int64                     `json:"memberId"`
	Username nullable.Nullable[string] `json:"username"`
	Age      int                       `json:"age"`
	TeamID   nullable.Nullable[int64]  `json:"teamId"`
	TeamName nullable.Nullable[string] `json:"teamName"`
}

type MemberTeamPage struct {
	Content          []MemberTeamRow `json:"content"`
	Page             int             `json:"page"`
	Size             int             `json:"size"`
	TotalElements    int64           `json:"totalElements"`
	TotalPages       int             `json:"totalPages"`
	NumberOfElements int             `json:"numberOfElements"`
	First            bool            `json:"first"`
	Last             bool            `json:"last"`
}

type RegisterTeamRequest struct {
	Name string `json:"name"`
}

type RegisterMemberRequest struct {
	Username nullable.Nullable[string] `json:"username,omitempty"`
	Age      *int                      `json:"age"`
	TeamID   nullable.Nullable[int64]  `json:"teamId,omitempty"`
}

// ChangeTeamRequest requires teamId; null removes the member from its team.
type ChangeTeamRequest struct {
	TeamID nullable.Nullable[int64] `json:"teamId"`
}

func teamFromDomain(t domain.Team) Team {
	return Team{TeamID: int64(t.ID), Name: t.Name}
}

func memberFromDomain(m domain.Member) Member {
	out := Member{
		MemberID: int64(m.ID),
		Username: nullableString(m.Username),
		Age:      m.Age,
		TeamID:   nullable.NewNullNullable[int64](),
	}
	if m.TeamID != nil {
		out.TeamID = nullable.NewNullableWithValue(int64(*m.TeamID))
	}
	return out
}

func rowFromDomain(r domain.MemberTeamRow) MemberTeamRow {
	out := MemberTeamRow{
		MemberID: int64(r.MemberID),
		Username: nullableString(r.Username),
		Age:      r.Age,
		TeamID:   nullable.NewNullNullable[int64](),
		TeamName: nullableString(r.TeamName),
	}
	if r.TeamID != nil {
		out.TeamID = nullable.NewNullableWithValue(int64(*r.TeamID))
	}
	return out
}

func rowsFromDomain(rows []domain.MemberTeamRow) []MemberTeamRow {
	out := make([]MemberTeamRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, rowFromDomain(r))
	}
	return out
}

func pageFromDomain(p domain.Page[domain.MemberTeamRow]) MemberTeamPage {
	return MemberTeamPage{
		Content:          rowsFromDomain(p.Content),
		Page:             p.Pageable.Page,
		Size:             p.Size(),
		TotalElements:    p.Total,
		TotalPages:       p.TotalPages(),
		NumberOfElements: p.NumberOfElements(),
		First:            p.IsFirst(),
		Last:             p.IsLast(),
	}
}

func nullableString(s *string) nullable.Nullable[string] {
	if s == nil {
		return nullable.NewNullNullable[string]()
	}
	return nullable.NewNullableWithValue(*s)
}

// optionalValue returns nil for an unspecified or null field.
func optionalValue[T any](n nullable.Nullable[T]) *T {
	if !n.IsSpecified() || n.IsNull() {
		return nil
	}
	v := n.MustGet()
	return &v
}
