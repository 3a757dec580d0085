package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/iho/goextrato/internal/domain"
)

// HistoryRepository implements usecase.HistoryRepository over the user's
// previously classified transactions.
type HistoryRepository struct {
	db Querier
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db Querier) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// FindMajority returns the most frequent (group, subgroup, spend-type) among
// transactions since the given date whose establishment contains the text.
// Ties go to the most recently seen triple.
func (r *HistoryRepository) FindMajority(ctx context.Context, userID, normalizedEstablishment string, since time.Time) (*domain.HistoricalMajority, error) {
	query := `
		SELECT group_name, subgroup, spend_type, COUNT(*) AS occurrences
		FROM classified_transactions
		WHERE user_id = $1
		  AND strpos(establishment, $2) > 0
		  AND occurred_on >= $3
		  AND group_name <> ''
		GROUP BY group_name, subgroup, spend_type
		ORDER BY occurrences DESC, MAX(occurred_on) DESC
		LIMIT 1
	`

	var m domain.HistoricalMajority
	err := r.db.QueryRow(ctx, query, userID, normalizedEstablishment, since).Scan(
		&m.Group,
		&m.Subgroup,
		&m.SpendType,
		&m.Occurrences,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// Record stores classified transactions so later runs can use them as history.
// Unresolved classifications are stored with an empty triple and never count.
func (r *HistoryRepository) Record(ctx context.Context, userID string, txs []domain.ClassifiedTransaction) error {
	if len(txs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, tx := range txs {
		establishment := domain.NormalizeEstablishment(tx.Establishment)
		batch.Queue(`
			INSERT INTO classified_transactions
				(transaction_id, user_id, establishment, occurred_on, amount, group_name, subgroup, spend_type)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (user_id, transaction_id) DO UPDATE
			SET group_name = EXCLUDED.group_name,
			    subgroup = EXCLUDED.subgroup,
			    spend_type = EXCLUDED.spend_type
		`,
			tx.TransactionID,
			userID,
			establishment,
			tx.Date,
			tx.Amount,
			tx.Classification.Group,
			tx.Classification.Subgroup,
			tx.Classification.SpendType,
		)
	}

	results := r.db.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}
