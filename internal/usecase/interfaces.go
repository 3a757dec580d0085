package usecase

import (
	"context"
	"time"

	"github.com/iho/goextrato/internal/domain"
	"github.com/iho/goextrato/internal/extractor"
)

// InstallmentContractRepository reads the classification already assigned to an
// installment group. Returns domain.ErrNotFound for unknown groups.
type InstallmentContractRepository interface {
	GetContract(ctx context.Context, installmentGroupID, userID string) (*domain.InstallmentContract, error)
}

// UserDirectory resolves the account holder's display name.
type UserDirectory interface {
	DisplayName(ctx context.Context, userID string) (string, error)
}

// ExclusionRuleRepository lists a user's active exclusion rules.
type ExclusionRuleRepository interface {
	ListActive(ctx context.Context, userID string) ([]domain.ExclusionRule, error)
}

// LearnedPatternRepository lists a user's learned patterns. The classifier
// fetches them once per run and matches in memory.
type LearnedPatternRepository interface {
	ListActive(ctx context.Context, userID string) ([]domain.LearnedPattern, error)
}

// HistoryRepository finds the most frequent classification among the user's
// past transactions whose establishment contains the given normalized text.
// Returns domain.ErrNotFound when there is no history.
type HistoryRepository interface {
	FindMajority(ctx context.Context, userID, normalizedEstablishment string, since time.Time) (*domain.HistoricalMajority, error)
}

// CategoryCombinationRepository tells whether a (group, subgroup, spend-type)
// triple exists.
type CategoryCombinationRepository interface {
	IsValid(ctx context.Context, group, subgroup, spendType string) (bool, error)
}

// Extractor turns one source file into raw transactions.
type Extractor interface {
	Extract(ctx context.Context, doc *extractor.Document, exp extractor.Expectation) (*extractor.Result, error)
}

// Retrier retries operations that failed with transient errors.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, locks it if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update stores the final response under key.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops the lock of a run that failed.
	Release(ctx context.Context, key string) error
}

// Observer receives pipeline measurements.
type Observer interface {
	ObserveExtraction(key extractor.Key, outcome string, elapsed time.Duration)
	ObserveSkippedRows(stage string, n int)
	ObserveBalance(status domain.BalanceStatus)
	ObserveClassification(level domain.Provenance, review bool)
	ObserveCollaboratorError(level domain.Provenance)
}

// NopObserver discards every measurement.
type NopObserver struct{}

func (NopObserver) ObserveExtraction(extractor.Key, string, time.Duration) {}
func (NopObserver) ObserveSkippedRows(string, int)                        {}
func (NopObserver) ObserveBalance(domain.BalanceStatus)                   {}
func (NopObserver) ObserveClassification(domain.Provenance, bool)         {}
func (NopObserver) ObserveCollaboratorError(domain.Provenance)            {}

// HistoryWriter stores classified transactions as history for later runs.
type HistoryWriter interface {
	Record(ctx context.Context, userID string, txs []domain.ClassifiedTransaction) error
}

// ContractWriter stores the classification chosen for an installment group.
type ContractWriter interface {
	Save(ctx context.Context, c *domain.InstallmentContract) error
}
