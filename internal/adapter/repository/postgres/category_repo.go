package postgres

import (
	"context"
)

// CategoryCombinationRepository implements usecase.CategoryCombinationRepository.
type CategoryCombinationRepository struct {
	db Querier
}

// NewCategoryCombinationRepository creates a new CategoryCombinationRepository.
func NewCategoryCombinationRepository(db Querier) *CategoryCombinationRepository {
	return &CategoryCombinationRepository{db: db}
}

// IsValid reports whether the triple is a registered category combination.
func (r *CategoryCombinationRepository) IsValid(ctx context.Context, group, subgroup, spendType string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM category_combinations
			WHERE group_name = $1 AND subgroup = $2 AND spend_type = $3
		)
	`

	var ok bool
	err := r.db.QueryRow(ctx, query, group, subgroup, spendType).Scan(&ok)
	return ok, err
}
