package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"

	"github.com/Overland-East-Bay/member-search-api/internal/app/members"
	"github.com/Overland-East-Bay/member-search-api/internal/domain"
	"github.com/Overland-East-Bay/member-search-api/internal/ports/out/clock"
	"github.com/Overland-East-Bay/member-search-api/internal/ports/out/idempotency"
)

// Server implements the HTTP handlers over the members service.
type Server struct {
	Members *members.Service
	Idem    idempotency.Store
	Clock   clock.Clock

	log *zap.Logger
}

func NewServer(membersSvc *members.Service, idem idempotency.Store, clk clock.Clock, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{Members: membersSvc, Idem: idem, Clock: clk, log: log}
}

func (s *Server) ListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.Members.ListTeams(r.Context())
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, teamFromDomain(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": out})
}

func (s *Server) RegisterTeam(w http.ResponseWriter, r *http.Request) {
	var body RegisterTeamRequest
	if !decodeBody(w, r, &body) {
		return
	}
	canon := RegisterTeamRequest{Name: domain.NormalizeHumanName(body.Name)}
	s.idempotent(w, r, "/teams", canon, http.StatusCreated, func() (any, error) {
		t, err := s.Members.RegisterTeam(r.Context(), members.RegisterTeamInput{Name: body.Name})
		if err != nil {
			return nil, err
		}
		return teamFromDomain(t), nil
	})
}

func (s *Server) ListMembers(w http.ResponseWriter, r *http.Request) {
	var username *string
	if err := runtime.BindQueryParameter("form", true, false, "username", r.URL.Query(), &username); err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid username parameter", map[string]any{"error": err.Error()})
		return
	}
	ms, err := s.Members.ListMembers(r.Context(), username)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	out := make([]Member, 0, len(ms))
	for _, m := range ms {
		out = append(out, memberFromDomain(m))
	}
	writeJSON(w, http.StatusOK, map[string]any{"members": out})
}

func (s *Server) RegisterMember(w http.ResponseWriter, r *http.Request) {
	var body RegisterMemberRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if body.Age == nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "age is required", map[string]any{"field": "age"})
		return
	}
	in := members.RegisterMemberInput{Username: optionalValue(body.Username), Age: *body.Age}
	if id := optionalValue(body.TeamID); id != nil {
		teamID := domain.TeamID(*id)
		in.TeamID = &teamID
	}
	s.idempotent(w, r, "/members", body, http.StatusCreated, func() (any, error) {
		m, err := s.Members.RegisterMember(r.Context(), in)
		if err != nil {
			return nil, err
		}
		return memberFromDomain(m), nil
	})
}

func (s *Server) GetMember(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDParam(w, r)
	if !ok {
		return
	}
	m, err := s.Members.GetMember(r.Context(), id)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberFromDomain(m))
}

func (s *Server) ChangeTeam(w http.ResponseWriter, r *http.Request) {
	id, ok := memberIDParam(w, r)
	if !ok {
		return
	}
	var body ChangeTeamRequest
	if !decodeBody(w, r, &body) {
		return
	}
	if !body.TeamID.IsSpecified() {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "teamId is required (use null to leave the team)", map[string]any{"field": "teamId"})
		return
	}
	var teamID *domain.TeamID
	if v := optionalValue(body.TeamID); v != nil {
		t := domain.TeamID(*v)
		teamID = &t
	}
	m, err := s.Members.ChangeTeam(r.Context(), id, teamID)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, memberFromDomain(m))
}

// SearchMembers serves both the unpaginated search and, when page or size is present, one page.
func (s *Server) SearchMembers(w http.ResponseWriter, r *http.Request) {
	params, err := bindSearchParams(r.URL.Query())
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	cond := params.condition()

	if !params.paged() {
		rows, err := s.Members.Search(r.Context(), cond)
		if err != nil {
			s.writeAppError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"content": rowsFromDomain(rows)})
		return
	}

	page, mode, err := params.pageRequest()
	if err != nil {
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error(), nil)
		return
	}
	out, err := s.Members.SearchPage(r.Context(), cond, page, mode)
	if err != nil {
		s.writeAppError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, pageFromDomain(out))
}

func memberIDParam(w http.ResponseWriter, r *http.Request) (domain.MemberID, bool) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "memberId", chi.URLParam(r, "memberId"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusNotFound, "MEMBER_NOT_FOUND", "member not found", nil)
		return 0, false
	}
	return domain.MemberID(id), true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		msg := "invalid JSON body"
		if errors.Is(err, io.EOF) {
			msg = "missing request body"
		}
		writeError(w, r, http.StatusUnprocessableEntity, "VALIDATION_ERROR", msg, map[string]any{"error": err.Error()})
		return false
	}
	return true
}
