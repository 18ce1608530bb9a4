package routeguard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// pgSource loads the rule table from the page_permission_rules table.
// Rules are returned in position order, which the guard preserves as match
// priority.
type pgSource struct {
	db *pgxpool.Pool
}

// NewPGSource creates a rule source on top of an existing connection pool.
func NewPGSource(db *pgxpool.Pool) RuleSource {
	return &pgSource{db: db}
}

// Load returns all rules ordered by position.
func (s *pgSource) Load(ctx context.Context) ([]Rule, error) {
	rows, err := s.db.Query(ctx, `
		SELECT method, path, permission, scope_type, COALESCE(scope_param, '')
		FROM page_permission_rules
		ORDER BY position, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []Rule
	for rows.Next() {
		var r Rule
		if err := rows.Scan(&r.Method, &r.Path, &r.Permission, &r.ScopeType, &r.ScopeParam); err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, rows.Err()
}
