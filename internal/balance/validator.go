// Package balance reconciles extracted transactions against issuer-declared balances.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/iho/goextrato/internal/domain"
)

// Tolerances used by the extractors.
var (
	ToleranceCent     = decimal.New(1, -2)
	ToleranceTenCents = decimal.New(10, -2)
)

// Validate compares opening + sum(amounts) with the declared closing balance.
// When either balance is missing the check is not applicable; it never fails the import.
func Validate(opening, closing *decimal.Decimal, amounts []decimal.Decimal, tolerance decimal.Decimal) domain.BalanceValidation {
	sum := Sum(amounts)

	result := domain.BalanceValidation{
		Opening:         opening,
		Closing:         closing,
		TransactionsSum: sum,
		Tolerance:       tolerance,
		Status:          domain.BalanceNotApplicable,
	}

	if opening == nil || closing == nil {
		return result
	}

	computed := opening.Add(sum)
	result.Computed = &computed
	result.Difference = computed.Sub(*closing)

	if result.Difference.Abs().LessThanOrEqual(tolerance) {
		result.Status = domain.BalanceValid
	} else {
		result.Status = domain.BalanceMismatch
	}

	return result
}

// Sum adds the amounts.
func Sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Ptr returns a pointer to d.
func Ptr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
