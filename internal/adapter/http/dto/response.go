package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goextrato/internal/domain"
	"github.com/iho/goextrato/internal/extractor"
	"github.com/iho/goextrato/internal/usecase"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AdapterResponse names the extractor that handled the file.
type AdapterResponse struct {
	Issuer       string `json:"issuer"`
	DocumentType string `json:"document_type"`
	Format       string `json:"format"`
}

func adapterFromKey(k extractor.Key) AdapterResponse {
	return AdapterResponse{Issuer: k.Issuer, DocumentType: string(k.DocumentType), Format: k.Format}
}

// RawTransactionResponse is an extracted row.
type RawTransactionResponse struct {
	Date          string          `json:"date"`
	Issuer        string          `json:"issuer"`
	DocumentType  string          `json:"document_type"`
	SourceFile    string          `json:"source_file,omitempty"`
	Establishment string          `json:"establishment"`
	CardName      string          `json:"card_name,omitempty"`
	CardLast4     string          `json:"card_last4,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	ClosingPeriod string          `json:"closing_period,omitempty"`
	IngestedAt    time.Time       `json:"ingested_at"`
}

func rawFromDomain(t domain.RawTransaction) RawTransactionResponse {
	period := ""
	if !t.ClosingPeriod.IsZero() {
		period = t.ClosingPeriod.String()
	}
	return RawTransactionResponse{
		Date:          t.Date.Format("2006-01-02"),
		Issuer:        t.Issuer,
		DocumentType:  string(t.DocumentType),
		SourceFile:    t.SourceFile,
		Establishment: t.Establishment,
		CardName:      t.CardName,
		CardLast4:     t.CardLast4,
		Amount:        t.Amount,
		ClosingPeriod: period,
		IngestedAt:    t.IngestedAt,
	}
}

// TransactionResponse is a classified transaction.
type TransactionResponse struct {
	RawTransactionResponse

	TransactionID      string          `json:"transaction_id"`
	BaseEstablishment  string          `json:"base_establishment"`
	InstallmentGroupID string          `json:"installment_group_id,omitempty"`
	CurrentInstallment int             `json:"current_installment,omitempty"`
	TotalInstallments  int             `json:"total_installments,omitempty"`
	AbsAmount          decimal.Decimal `json:"abs_amount"`
	Type               string          `json:"type"`
	Year               int             `json:"year"`
	Month              int             `json:"month"`

	Group           string `json:"group"`
	Subgroup        string `json:"subgroup"`
	SpendType       string `json:"spend_type"`
	Category        string `json:"category"`
	Provenance      string `json:"provenance"`
	ShowOnDashboard bool   `json:"show_on_dashboard"`
	NeedsReview     bool   `json:"needs_review"`
}

// TransactionFromDomain converts a classified transaction to its response.
func TransactionFromDomain(t domain.ClassifiedTransaction) TransactionResponse {
	return TransactionResponse{
		RawTransactionResponse: rawFromDomain(t.RawTransaction),
		TransactionID:          t.TransactionID,
		BaseEstablishment:      t.BaseEstablishment,
		InstallmentGroupID:     t.InstallmentGroupID,
		CurrentInstallment:     t.CurrentInstallment,
		TotalInstallments:      t.TotalInstallments,
		AbsAmount:              t.AbsAmount,
		Type:                   string(t.Type),
		Year:                   t.Year,
		Month:                  t.Month,
		Group:                  t.Group,
		Subgroup:               t.Subgroup,
		SpendType:              t.SpendType,
		Category:               t.Category,
		Provenance:             string(t.Provenance),
		ShowOnDashboard:        t.ShowOnDashboard,
		NeedsReview:            t.NeedsReview,
	}
}

// BalanceResponse is the advisory balance check.
type BalanceResponse struct {
	Status          string           `json:"status"`
	Opening         *decimal.Decimal `json:"opening,omitempty"`
	Closing         *decimal.Decimal `json:"closing,omitempty"`
	Computed        *decimal.Decimal `json:"computed,omitempty"`
	TransactionsSum decimal.Decimal  `json:"transactions_sum"`
	Difference      decimal.Decimal  `json:"difference"`
	Tolerance       decimal.Decimal  `json:"tolerance"`
}

func balanceFromDomain(b domain.BalanceValidation) BalanceResponse {
	return BalanceResponse{
		Status:          string(b.Status),
		Opening:         b.Opening,
		Closing:         b.Closing,
		Computed:        b.Computed,
		TransactionsSum: b.TransactionsSum,
		Difference:      b.Difference,
		Tolerance:       b.Tolerance,
	}
}

// SkippedRowResponse is a row dropped with its reason.
type SkippedRowResponse struct {
	Line   int    `json:"line"`
	Raw    string `json:"raw"`
	Reason string `json:"reason"`
}

func skippedFromDomain(rows []domain.RowError) []SkippedRowResponse {
	out := make([]SkippedRowResponse, len(rows))
	for i, r := range rows {
		out[i] = SkippedRowResponse{Line: r.Line, Raw: r.Raw, Reason: r.Reason}
	}
	return out
}

// ExtractResponse is the body of POST /api/v1/imports/extract.
type ExtractResponse struct {
	Adapter      AdapterResponse          `json:"adapter"`
	Transactions []RawTransactionResponse `json:"transactions"`
	Balance      BalanceResponse          `json:"balance"`
	Skipped      []SkippedRowResponse     `json:"skipped"`
}

// ExtractFromResult converts an extraction result.
func ExtractFromResult(res *extractor.Result) *ExtractResponse {
	txs := make([]RawTransactionResponse, len(res.Transactions))
	for i, t := range res.Transactions {
		txs[i] = rawFromDomain(t)
	}
	return &ExtractResponse{
		Adapter:      adapterFromKey(res.Key),
		Transactions: txs,
		Balance:      balanceFromDomain(res.Balance),
		Skipped:      skippedFromDomain(res.Skipped),
	}
}

// ImportResponse is the body of POST /api/v1/imports.
type ImportResponse struct {
	RunID        string                `json:"run_id"`
	Adapter      AdapterResponse       `json:"adapter"`
	Transactions []TransactionResponse `json:"transactions"`
	Balance      BalanceResponse       `json:"balance"`
	Skipped      []SkippedRowResponse  `json:"skipped"`
	Report       usecase.CascadeReport `json:"report"`
	Replayed     bool                  `json:"replayed"`
}

// ImportFromResult converts a pipeline result.
func ImportFromResult(res *usecase.IngestResult) *ImportResponse {
	txs := make([]TransactionResponse, len(res.Transactions))
	for i, t := range res.Transactions {
		txs[i] = TransactionFromDomain(t)
	}
	return &ImportResponse{
		RunID:        res.RunID,
		Adapter:      adapterFromKey(res.Key),
		Transactions: txs,
		Balance:      balanceFromDomain(res.Balance),
		Skipped:      skippedFromDomain(res.Skipped),
		Report:       res.Report,
		Replayed:     res.Replayed,
	}
}
