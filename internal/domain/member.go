package domain

// Member is a person who may belong to at most one team.
type Member struct {
	ID MemberID
	// Username is optional; nil means unset.
	Username *string
	Age      int
	// TeamID references an existing team; nil means the member has no team.
	TeamID *TeamID
}

// Team groups members. Names are not unique.
type Team struct {
	ID   TeamID
	Name string
}

// NewMember builds an unsaved member.
func NewMember(username string, age int, team *Team) Member {
	m := Member{Username: &username, Age: age}
	if team != nil {
		id := team.ID
		m.TeamID = &id
	}
	return m
}

// HasTeam reports whether the member references a team.
func (m Member) HasTeam() bool { return m.TeamID != nil }

// UsernameOrEmpty returns the username, or "" when unset.
func (m Member) UsernameOrEmpty() string {
	if m.Username == nil {
		return ""
	}
	return *m.Username
}
