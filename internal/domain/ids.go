package domain

// MemberID is the store-assigned identifier of a member. Zero means "not yet persisted".
type MemberID int64

// TeamID is the store-assigned identifier of a team. Zero means "not yet persisted".
type TeamID int64
