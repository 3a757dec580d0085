package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// BalanceStatus is the outcome of the advisory balance check.
type BalanceStatus string

const (
	BalanceValid         BalanceStatus = "valid"
	BalanceMismatch      BalanceStatus = "mismatch"
	BalanceNotApplicable BalanceStatus = "not_applicable"
)

// BalanceValidation compares extracted transactions with issuer-declared balances.
// Opening, Closing and Computed are nil when the source declares no balance.
type BalanceValidation struct {
	Opening         *decimal.Decimal
	Closing         *decimal.Decimal
	Computed        *decimal.Decimal
	TransactionsSum decimal.Decimal
	Difference      decimal.Decimal
	Tolerance       decimal.Decimal
	Status          BalanceStatus
}

// Applicable reports whether the source declared both balances.
func (b BalanceValidation) Applicable() bool {
	return b.Status == BalanceValid || b.Status == BalanceMismatch
}

// Valid reports whether the check passed. A not-applicable check is not valid.
func (b BalanceValidation) Valid() bool {
	return b.Status == BalanceValid
}

// Err returns ErrBalanceMismatch with the figures when the check failed, nil otherwise.
func (b BalanceValidation) Err() error {
	if b.Status != BalanceMismatch {
		return nil
	}

	return fmt.Errorf("%w: computed=%s declared=%s difference=%s tolerance=%s",
		ErrBalanceMismatch,
		b.Computed.StringFixed(2),
		b.Closing.StringFixed(2),
		b.Difference.StringFixed(2),
		b.Tolerance.String(),
	)
}
