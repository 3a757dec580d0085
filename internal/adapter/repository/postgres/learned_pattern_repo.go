package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/iho/goextrato/internal/domain"
)

// LearnedPatternRepository implements usecase.LearnedPatternRepository.
type LearnedPatternRepository struct {
	db Querier
}

// NewLearnedPatternRepository creates a new LearnedPatternRepository.
func NewLearnedPatternRepository(db Querier) *LearnedPatternRepository {
	return &LearnedPatternRepository{db: db}
}

// ListActive returns the user's active learned patterns of any confidence.
// The classifier decides which of them are usable.
func (r *LearnedPatternRepository) ListActive(ctx context.Context, userID string) ([]domain.LearnedPattern, error) {
	query := `
		SELECT establishment, value_band, confidence, observations, active,
		       group_name, subgroup, spend_type
		FROM learned_patterns
		WHERE user_id = $1 AND active
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.LearnedPattern, error) {
		var p domain.LearnedPattern
		err := row.Scan(
			&p.Establishment,
			&p.ValueBand,
			&p.Confidence,
			&p.Observations,
			&p.Active,
			&p.Group,
			&p.Subgroup,
			&p.SpendType,
		)
		return p, err
	})
}
