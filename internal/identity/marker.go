// Package identity assigns reproducible transaction and installment identities.
package identity

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/goextrato/internal/domain"
)

// MarkResult is the output of one Mark call.
type MarkResult struct {
	Transactions []domain.MarkedTransaction
	Skipped      []domain.RowError
}

// Marker turns raw rows into marked transactions for one user and one run.
// The duplicate counter lives as long as the Marker, so a Marker must not be
// shared between runs or used concurrently.
type Marker struct {
	userID string
	seen   map[string]int
	logger zerolog.Logger
}

// NewMarker creates a run-scoped marker.
func NewMarker(userID string, logger zerolog.Logger) *Marker {
	return &Marker{
		userID: userID,
		seen:   make(map[string]int),
		logger: logger.With().Str("component", "identity_marker").Str("user_id", userID).Logger(),
	}
}

// Mark marks rows in order. Invalid rows are skipped and reported, never fatal.
func (m *Marker) Mark(raws []domain.RawTransaction) MarkResult {
	result := MarkResult{
		Transactions: make([]domain.MarkedTransaction, 0, len(raws)),
	}

	for i := range raws {
		marked, err := m.MarkOne(raws[i])
		if err != nil {
			rowErr := domain.RowError{
				Line:   i + 1,
				Raw:    raws[i].Establishment,
				Reason: err.Error(),
			}
			m.logger.Warn().
				Int("row", rowErr.Line).
				Str("establishment", rowErr.Raw).
				Err(err).
				Msg("skipping row")
			result.Skipped = append(result.Skipped, rowErr)
			continue
		}
		result.Transactions = append(result.Transactions, marked)
	}

	return result
}

// MarkOne marks a single row and advances the duplicate counter.
func (m *Marker) MarkOne(raw domain.RawTransaction) (domain.MarkedTransaction, error) {
	if err := raw.Validate(); err != nil {
		return domain.MarkedTransaction{}, fmt.Errorf("invalid row: %w", err)
	}

	marked := domain.MarkedTransaction{
		RawTransaction:    raw,
		BaseEstablishment: raw.Establishment,
		AbsAmount:         raw.Amount.Abs(),
		Type:              transactionType(&raw),
	}

	hashed := raw.Establishment
	if inst, ok := ParseInstallment(raw.Establishment, raw.DocumentType); ok {
		marked.BaseEstablishment = inst.Base
		marked.CurrentInstallment = inst.Current
		marked.TotalInstallments = inst.Total
		marked.InstallmentGroupID = InstallmentGroupID(Canonical(inst.Base), marked.AbsAmount, inst.Total, m.userID)
		hashed = inst.Recompose()
	}

	canonical := Canonical(hashed)
	id := TransactionHash(m.userID, raw.Date, canonical, raw.Amount)

	key := duplicateKey(raw.Date, canonical, raw.Amount)
	m.seen[key]++
	if n := m.seen[key]; n > 1 {
		id = Rehash(id, n-1)
	}
	marked.TransactionID = id

	if marked.Type == domain.TypeCard && !raw.ClosingPeriod.IsZero() {
		marked.Year, marked.Month = raw.ClosingPeriod.Year, raw.ClosingPeriod.Month
	} else {
		marked.Year, marked.Month = raw.Date.Year(), int(raw.Date.Month())
	}

	return marked, nil
}

func transactionType(raw *domain.RawTransaction) domain.TransactionType {
	switch {
	case raw.HasCard():
		return domain.TypeCard
	case raw.Amount.IsNegative():
		return domain.TypeExpense
	default:
		return domain.TypeIncome
	}
}
