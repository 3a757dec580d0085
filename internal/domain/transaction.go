package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DocumentType tells whether a source file is a card invoice or an account statement.
type DocumentType string

const (
	DocumentInvoice   DocumentType = "invoice"
	DocumentStatement DocumentType = "statement"
)

// TransactionType is derived by the identity marker.
type TransactionType string

const (
	TypeCard    TransactionType = "Card"
	TypeExpense TransactionType = "Expense"
	TypeIncome  TransactionType = "Income"
)

// RawTransaction is one normalized row produced by an extractor.
type RawTransaction struct {
	IngestedAt    time.Time
	Date          time.Time
	Issuer        string
	DocumentType  DocumentType
	SourceFile    string
	Establishment string
	CardName      string
	CardLast4     string
	Amount        decimal.Decimal
	ClosingPeriod Period
}

// Validate checks the row invariants: non-zero amount and a usable date.
func (t *RawTransaction) Validate() error {
	if t.Amount.IsZero() {
		return ErrZeroAmount
	}

	if t.Date.IsZero() {
		return ErrInvalidDate
	}

	return nil
}

// HasCard reports whether the row is attached to a credit card.
func (t *RawTransaction) HasCard() bool {
	return t.CardName != "" || t.CardLast4 != ""
}

// MarkedTransaction is a RawTransaction with stable identities and derived fields.
type MarkedTransaction struct {
	RawTransaction

	TransactionID      string
	BaseEstablishment  string
	InstallmentGroupID string
	AbsAmount          decimal.Decimal
	CurrentInstallment int
	TotalInstallments  int
	Type               TransactionType
	Year               int
	Month              int
}

// IsInstallment reports whether the transaction is one installment of a larger purchase.
func (t *MarkedTransaction) IsInstallment() bool {
	return t.InstallmentGroupID != ""
}

// ClassifiedTransaction is the final output of the pipeline.
type ClassifiedTransaction struct {
	MarkedTransaction
	Classification
}

// RowError describes a skipped source row.
type RowError struct {
	Line   int
	Raw    string
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// Unwrap lets callers match skipped rows with errors.Is(err, ErrRowParse).
func (e RowError) Unwrap() error {
	return ErrRowParse
}
