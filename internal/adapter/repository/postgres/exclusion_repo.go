package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/iho/goextrato/internal/domain"
)

// ExclusionRuleRepository implements usecase.ExclusionRuleRepository.
type ExclusionRuleRepository struct {
	db Querier
}

// NewExclusionRuleRepository creates a new ExclusionRuleRepository.
func NewExclusionRuleRepository(db Querier) *ExclusionRuleRepository {
	return &ExclusionRuleRepository{db: db}
}

// ListActive returns the user's active exclusion rules, oldest first.
func (r *ExclusionRuleRepository) ListActive(ctx context.Context, userID string) ([]domain.ExclusionRule, error) {
	query := `
		SELECT pattern, action
		FROM exclusion_rules
		WHERE user_id = $1 AND active
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.ExclusionRule, error) {
		var rule domain.ExclusionRule
		err := row.Scan(&rule.Pattern, &rule.Action)
		return rule, err
	})
}
