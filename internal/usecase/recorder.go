package usecase

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/goextrato/internal/domain"
)

// RunRecorder persists a finished run so later runs can reuse it through the
// history and installment levels of the cascade.
type RunRecorder struct {
	history   HistoryWriter
	contracts ContractWriter
	logger    zerolog.Logger
}

// NewRunRecorder creates a RunRecorder. Either writer may be nil.
func NewRunRecorder(history HistoryWriter, contracts ContractWriter, logger zerolog.Logger) *RunRecorder {
	return &RunRecorder{history: history, contracts: contracts, logger: logger}
}

// Record stores the run's transactions and opens a contract for every
// installment group classified by a level other than the installment level.
func (r *RunRecorder) Record(ctx context.Context, res *IngestResult, userID string) error {
	if res == nil || len(res.Transactions) == 0 {
		return nil
	}

	if r.history != nil {
		if err := r.history.Record(ctx, userID, res.Transactions); err != nil {
			return fmt.Errorf("record history: %w", err)
		}
	}

	if r.contracts == nil {
		return nil
	}

	saved := 0
	for _, c := range NewContracts(res.Transactions, userID) {
		if err := r.contracts.Save(ctx, &c); err != nil {
			return fmt.Errorf("save installment contract %s: %w", c.InstallmentGroupID, err)
		}
		saved++
	}

	r.logger.Info().
		Str("run_id", res.RunID).
		Int("transactions", len(res.Transactions)).
		Int("contracts", saved).
		Msg("run recorded")

	return nil
}

// NewContracts returns one contract per installment group resolved in this run.
// Groups already covered by a contract, excluded groups and unresolved groups
// are skipped.
func NewContracts(txs []domain.ClassifiedTransaction, userID string) []domain.InstallmentContract {
	var out []domain.InstallmentContract
	seen := make(map[string]bool)

	for _, tx := range txs {
		if !tx.IsInstallment() || seen[tx.InstallmentGroupID] {
			continue
		}
		switch tx.Provenance {
		case domain.ProvenanceInstallment, domain.ProvenanceExclusion, domain.ProvenanceUnclassified, "":
			continue
		}

		seen[tx.InstallmentGroupID] = true
		out = append(out, domain.InstallmentContract{
			InstallmentGroupID: tx.InstallmentGroupID,
			UserID:             userID,
			CategoryTriple:     tx.Triple(),
		})
	}

	return out
}
