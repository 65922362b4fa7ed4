package sqlsearch

import (
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// memberColumns is the column metadata of the member table, aliased as "m".
type memberColumns struct {
	Table    exp.AliasedExpression
	ID       exp.IdentifierExpression
	Username exp.IdentifierExpression
	Age      exp.IdentifierExpression
	TeamID   exp.IdentifierExpression
}

// teamColumns is the column metadata of the team table, aliased as "t".
type teamColumns struct {
	Table exp.AliasedExpression
	ID    exp.IdentifierExpression
	Name  exp.IdentifierExpression
}

var (
	Member = memberColumns{
		Table:    goqu.T("member").As("m"),
		ID:       goqu.I("m.id"),
		Username: goqu.I("m.username"),
		Age:      goqu.I("m.age"),
		TeamID:   goqu.I("m.team_id"),
	}

	Team = teamColumns{
		Table: goqu.T("team").As("t"),
		ID:    goqu.I("t.id"),
		Name:  goqu.I("t.name"),
	}
)
