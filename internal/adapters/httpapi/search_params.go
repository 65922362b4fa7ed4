package httpapi

import (
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"

	"github.com/Overland-East-Bay/member-search-api/internal/app/members"
	"github.com/Overland-East-Bay/member-search-api/internal/domain"
)

// searchParams are the query parameters of GET /members/search.
type searchParams struct {
	Username *string
	TeamName *string
	AgeGoe   *int
	AgeLoe   *int

	Page *int
	Size *int
	// Sort terms look like "age,desc"; repeat the parameter for several terms.
	Sort []string
	Mode *string
}

const defaultPageSize = 20

func bindSearchParams(q url.Values) (searchParams, error) {
	var p searchParams
	bindings := []struct {
		name string
		dest any
	}{
		{"username", &p.Username},
		{"teamName", &p.TeamName},
		{"ageGoe", &p.AgeGoe},
		{"ageLoe", &p.AgeLoe},
		{"page", &p.Page},
		{"size", &p.Size},
		{"sort", &p.Sort},
		{"mode", &p.Mode},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return searchParams{}, fmt.Errorf("invalid %s parameter: %w", b.name, err)
		}
	}
	return p, nil
}

func (p searchParams) condition() domain.MemberSearchCondition {
	return domain.MemberSearchCondition{
		Username: p.Username,
		TeamName: p.TeamName,
		AgeGoe:   p.AgeGoe,
		AgeLoe:   p.AgeLoe,
	}
}

func (p searchParams) paged() bool {
	return p.Page != nil || p.Size != nil || p.Mode != nil || len(p.Sort) > 0
}

func (p searchParams) pageRequest() (domain.PageRequest, members.SearchMode, error) {
	page := domain.PageRequest{Size: defaultPageSize}
	if p.Page != nil {
		page.Page = *p.Page
	}
	if p.Size != nil {
		page.Size = *p.Size
	}
	for _, s := range p.Sort {
		o, err := domain.ParseOrder(s)
		if err != nil {
			return domain.PageRequest{}, "", err
		}
		page.Sort = append(page.Sort, o)
	}
	mode := ""
	if p.Mode != nil {
		mode = *p.Mode
	}
	m, err := members.ParseSearchMode(mode)
	if err != nil {
		return domain.PageRequest{}, "", err
	}
	return page, m, nil
}
