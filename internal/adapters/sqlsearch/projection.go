package sqlsearch

import "github.com/Overland-East-Bay/member-search-api/internal/domain"

// scanMemberTeamRow maps the positional tuple
// (member_id, username, age, team_id, team_name[, extra...]) onto a MemberTeamRow.
// NULL team columns become nil fields, never an error.
func scanMemberTeamRow(row Row, extra ...any) (domain.MemberTeamRow, error) {
	var (
		memberID int64
		username *string
		age      int
		teamID   *int64
		teamName *string
	)
	dest := append([]any{&memberID, &username, &age, &teamID, &teamName}, extra...)
	if err := row.Scan(dest...); err != nil {
		return domain.MemberTeamRow{}, err
	}
	out := domain.MemberTeamRow{
		MemberID: domain.MemberID(memberID),
		Username: username,
		Age:      age,
		TeamName: teamName,
	}
	if teamID != nil {
		id := domain.TeamID(*teamID)
		out.TeamID = &id
	}
	return out, nil
}
