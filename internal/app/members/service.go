package members

import (
	"context"
	"errors"
	"strings"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
	"github.com/Overland-East-Bay/member-search-api/internal/ports/out/memberrepo"
	"github.com/Overland-East-Bay/member-search-api/internal/ports/out/teamrepo"
)

type Service struct {
	members memberrepo.Repository
	teams   teamrepo.Repository
}

func NewService(membersRepo memberrepo.Repository, teamsRepo teamrepo.Repository) *Service {
	return &Service{members: membersRepo, teams: teamsRepo}
}

func (s *Service) RegisterTeam(ctx context.Context, in RegisterTeamInput) (domain.Team, error) {
	name := domain.NormalizeHumanName(in.Name)
	if name == "" {
		return domain.Team{}, validationError("team name is required", map[string]any{"field": "name"})
	}
	return s.teams.Save(ctx, domain.Team{Name: name})
}

func (s *Service) ListTeams(ctx context.Context) ([]domain.Team, error) {
	return s.teams.FindAll(ctx)
}

func (s *Service) RegisterMember(ctx context.Context, in RegisterMemberInput) (domain.Member, error) {
	if in.Age < 0 {
		return domain.Member{}, validationError("age must not be negative", map[string]any{"field": "age", "value": in.Age})
	}
	m := domain.Member{Age: in.Age, TeamID: in.TeamID}
	if domain.HasText(in.Username) {
		u := strings.TrimSpace(*in.Username)
		m.Username = &u
	}
	saved, err := s.members.Save(ctx, m)
	if err != nil {
		return domain.Member{}, mapMemberWriteErr(err, in.TeamID)
	}
	return saved, nil
}

// ChangeTeam moves a member into teamID, or out of any team when teamID is nil.
func (s *Service) ChangeTeam(ctx context.Context, id domain.MemberID, teamID *domain.TeamID) (domain.Member, error) {
	m, err := s.GetMember(ctx, id)
	if err != nil {
		return domain.Member{}, err
	}
	m.TeamID = teamID
	saved, err := s.members.Save(ctx, m)
	if err != nil {
		return domain.Member{}, mapMemberWriteErr(err, teamID)
	}
	return saved, nil
}

func (s *Service) GetMember(ctx context.Context, id domain.MemberID) (domain.Member, error) {
	m, err := s.members.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, memberrepo.ErrNotFound) {
			return domain.Member{}, &Error{Status: 404, Code: "MEMBER_NOT_FOUND", Message: "member not found"}
		}
		return domain.Member{}, err
	}
	return m, nil
}

// ListMembers returns the members with the given username, or every member when it is blank.
func (s *Service) ListMembers(ctx context.Context, username *string) ([]domain.Member, error) {
	if domain.HasText(username) {
		return s.members.FindByUsername(ctx, strings.TrimSpace(*username))
	}
	return s.members.FindAll(ctx)
}

// Search returns every member/team row matching cond.
func (s *Service) Search(ctx context.Context, cond domain.MemberSearchCondition) ([]domain.MemberTeamRow, error) {
	rows, err := s.members.Search(ctx, &cond)
	if err != nil {
		return nil, mapSearchErr(err)
	}
	return rows, nil
}

// SearchPage returns one page of rows matching cond, counted according to mode.
func (s *Service) SearchPage(ctx context.Context, cond domain.MemberSearchCondition, page domain.PageRequest, mode SearchMode) (domain.Page[domain.MemberTeamRow], error) {
	var (
		out domain.Page[domain.MemberTeamRow]
		err error
	)
	switch mode {
	case SearchModeSimple, "":
		out, err = s.members.SearchSimple(ctx, &cond, page)
	case SearchModeComplex:
		out, err = s.members.SearchComplex(ctx, &cond, page)
	default:
		return domain.Page[domain.MemberTeamRow]{}, validationError("unknown search mode", map[string]any{"mode": string(mode)})
	}
	if err != nil {
		return domain.Page[domain.MemberTeamRow]{}, mapSearchErr(err)
	}
	return out, nil
}

func mapMemberWriteErr(err error, teamID *domain.TeamID) error {
	switch {
	case errors.Is(err, memberrepo.ErrTeamNotFound):
		details := map[string]any{"field": "teamId"}
		if teamID != nil {
			details["value"] = int64(*teamID)
		}
		return validationError("team does not exist", details)
	case errors.Is(err, memberrepo.ErrNotFound):
		return &Error{Status: 404, Code: "MEMBER_NOT_FOUND", Message: "member not found"}
	}
	return err
}

func mapSearchErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return validationError(err.Error(), nil)
	case errors.Is(err, domain.ErrInconsistentPage):
		return &Error{Status: 409, Code: "INCONSISTENT_PAGE", Message: "the member list changed while the page was read; retry the request"}
	}
	return err
}
