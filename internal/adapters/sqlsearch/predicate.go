package sqlsearch

import (
	"github.com/doug-martin/goqu/v9/exp"

	"github.com/Overland-East-Bay/member-search-api/internal/domain"
)

// Predicate is an optional WHERE fragment. The zero value is Absent.
type Predicate struct {
	expr exp.Expression
}

// Absent is the predicate that filters nothing; it is dropped before composition.
var Absent = Predicate{}

func present(e exp.Expression) Predicate { return Predicate{expr: e} }

func (p Predicate) IsPresent() bool { return p.expr != nil }

// Expression returns the fragment and true, or nil and false when p is absent.
func (p Predicate) Expression() (exp.Expression, bool) { return p.expr, p.expr != nil }

// UsernameEq matches m.username = ? unless username is nil or blank.
func UsernameEq(username *string) Predicate {
	if !domain.HasText(username) {
		return Absent
	}
	return present(Member.Username.Eq(*username))
}

// TeamNameEq matches t.name = ? unless teamName is nil or blank.
// Teamless members never satisfy it since t.name is NULL for them.
func TeamNameEq(teamName *string) Predicate {
	if !domain.HasText(teamName) {
		return Absent
	}
	return present(Team.Name.Eq(*teamName))
}

// AgeGoe matches m.age >= ? unless ageGoe is nil.
func AgeGoe(ageGoe *int) Predicate {
	if ageGoe == nil {
		return Absent
	}
	return present(Member.Age.Gte(*ageGoe))
}

// AgeLoe matches m.age <= ? unless ageLoe is nil.
func AgeLoe(ageLoe *int) Predicate {
	if ageLoe == nil {
		return Absent
	}
	return present(Member.Age.Lte(*ageLoe))
}

// ConditionPredicates returns the condition's predicates in canonical order:
// username, teamName, ageGoe, ageLoe.
func ConditionPredicates(cond domain.MemberSearchCondition) []Predicate {
	return []Predicate{
		UsernameEq(cond.Username),
		TeamNameEq(cond.TeamName),
		AgeGoe(cond.AgeGoe),
		AgeLoe(cond.AgeLoe),
	}
}

// And drops absent predicates and returns the remaining fragments in order.
// An empty result means "no WHERE clause".
func And(preds ...Predicate) []exp.Expression {
	out := make([]exp.Expression, 0, len(preds))
	for _, p := range preds {
		if e, ok := p.Expression(); ok {
			out = append(out, e)
		}
	}
	return out
}

// Builder accumulates fragments imperatively, one if-statement per field.
// It yields the same fragments as And(ConditionPredicates(cond)...).
type Builder struct {
	exprs []exp.Expression
}

func (b *Builder) And(e exp.Expression) *Builder {
	b.exprs = append(b.exprs, e)
	return b
}

func (b *Builder) Expressions() []exp.Expression { return b.exprs }

// BuildCondition fills a Builder from cond.
func BuildCondition(cond domain.MemberSearchCondition) *Builder {
	b := &Builder{}
	if domain.HasText(cond.Username) {
		b.And(Member.Username.Eq(*cond.Username))
	}
	if domain.HasText(cond.TeamName) {
		b.And(Team.Name.Eq(*cond.TeamName))
	}
	if cond.AgeGoe != nil {
		b.And(Member.Age.Gte(*cond.AgeGoe))
	}
	if cond.AgeLoe != nil {
		b.And(Member.Age.Lte(*cond.AgeLoe))
	}
	return b
}
