package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/iho/goextrato/internal/domain"
)

// InstallmentContractRepository implements usecase.InstallmentContractRepository.
type InstallmentContractRepository struct {
	db Querier
}

// NewInstallmentContractRepository creates a new InstallmentContractRepository.
func NewInstallmentContractRepository(db Querier) *InstallmentContractRepository {
	return &InstallmentContractRepository{db: db}
}

// GetContract returns the classification stored for an installment group.
func (r *InstallmentContractRepository) GetContract(ctx context.Context, installmentGroupID, userID string) (*domain.InstallmentContract, error) {
	query := `
		SELECT installment_group_id, user_id, group_name, subgroup, spend_type
		FROM installment_contracts
		WHERE installment_group_id = $1 AND user_id = $2
	`

	var c domain.InstallmentContract
	err := r.db.QueryRow(ctx, query, installmentGroupID, userID).Scan(
		&c.InstallmentGroupID,
		&c.UserID,
		&c.Group,
		&c.Subgroup,
		&c.SpendType,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// Save upserts the classification of an installment group.
func (r *InstallmentContractRepository) Save(ctx context.Context, c *domain.InstallmentContract) error {
	query := `
		INSERT INTO installment_contracts (installment_group_id, user_id, group_name, subgroup, spend_type)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (installment_group_id, user_id)
		DO UPDATE SET group_name = EXCLUDED.group_name,
		              subgroup = EXCLUDED.subgroup,
		              spend_type = EXCLUDED.spend_type
	`

	_, err := r.db.Exec(ctx, query, c.InstallmentGroupID, c.UserID, c.Group, c.Subgroup, c.SpendType)
	return err
}
