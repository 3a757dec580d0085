package extractor

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/goextrato/internal/balance"
	"github.com/iho/goextrato/internal/domain"
)

var (
	cardFinalRe  = regexp.MustCompile(`(?i)\bfinal\s*(\d{4})\b`)
	fullDateRe   = regexp.MustCompile(`\b\d{2}/\d{2}/\d{4}\b`)
	futureMarker = "lancamentos futuros"
)

// ItauStatementAdapter reads the Itaú account statement spreadsheet
// (data, lançamento, valor, saldo).
type ItauStatementAdapter struct {
	logger zerolog.Logger
}

func NewItauStatementAdapter(logger zerolog.Logger) *ItauStatementAdapter {
	return &ItauStatementAdapter{logger: logger}
}

func (a *ItauStatementAdapter) Key() Key {
	return Key{Issuer: IssuerItau, DocumentType: domain.DocumentStatement, Format: FormatSpreadsheet}
}

func (a *ItauStatementAdapter) Detect(doc *Document) bool {
	if doc.Kind() != KindZIP && doc.Kind() != KindOLE {
		return false
	}
	rows, err := doc.Sheet()
	if err != nil {
		return false
	}
	_, _, ok := findColumns(rows, 40, "data", "lancamento", "valor", "saldo")
	return ok
}

func (a *ItauStatementAdapter) Parse(_ context.Context, doc *Document) (*Result, error) {
	rows, err := doc.Sheet()
	if err != nil {
		return nil, fmt.Errorf("read itau statement: %w", err)
	}

	key := a.Key()
	log := newRowLog(a.logger, key)

	header, cols, ok := findColumns(rows, 40, "data", "lancamento", "valor", "saldo")
	if !ok {
		return nil, domain.ErrFormatNotRecognized
	}

	samples := make([]string, 0, len(rows))
	for _, row := range rows[header+1:] {
		samples = append(samples, cell(row, cols["valor"]), cell(row, cols["saldo"]))
	}
	conv := DetectConvention(samples)

	var (
		txs      []domain.RawTransaction
		inScope  []decimal.Decimal
		opening  *decimal.Decimal
		closing  *decimal.Decimal
		snapshot bool
	)

	for i := header + 1; i < len(rows); i++ {
		row := rows[i]
		line := i + 1
		text := rowText(row)
		if text == "" {
			continue
		}
		if strings.Contains(fold(text), futureMarker) {
			break
		}

		dateCell := cell(row, cols["data"])
		if !startsWithDigit(dateCell) {
			continue
		}

		desc := collapseSpaces(cell(row, cols["lancamento"]))
		if strings.HasPrefix(fold(desc), "saldo") {
			raw := cell(row, cols["saldo"])
			if raw == "" {
				raw = cell(row, cols["valor"])
			}
			value, err := parseCellAmount(raw, conv)
			if err != nil {
				log.skip(line, text, err)
				continue
			}
			if strings.HasPrefix(fold(desc), "saldo anterior") && !snapshot {
				opening = balance.Ptr(value)
			} else {
				closing = balance.Ptr(value)
			}
			snapshot = true
			continue
		}

		date, err := ParseDate(dateCell)
		if err != nil {
			log.skip(line, text, err)
			continue
		}

		amount, err := parseCellAmount(cell(row, cols["valor"]), conv)
		if err != nil {
			log.skip(line, text, err)
			continue
		}
		if amount.IsZero() {
			continue
		}

		txs = append(txs, domain.RawTransaction{
			Date:          date,
			Establishment: desc,
			Amount:        amount,
		})
		if snapshot {
			inScope = append(inScope, amount)
		}
	}

	return &Result{
		Key:          key,
		Transactions: txs,
		Balance:      balance.Validate(opening, closing, inScope, balance.ToleranceCent),
		Skipped:      log.skipped,
	}, nil
}

// ItauInvoiceAdapter reads the Itaú card invoice spreadsheet: a due-date caption,
// one section per card ("final 1234"), dd/mm rows and a "total da fatura" caption.
type ItauInvoiceAdapter struct {
	logger zerolog.Logger
}

func NewItauInvoiceAdapter(logger zerolog.Logger) *ItauInvoiceAdapter {
	return &ItauInvoiceAdapter{logger: logger}
}

func (a *ItauInvoiceAdapter) Key() Key {
	return Key{Issuer: IssuerItau, DocumentType: domain.DocumentInvoice, Format: FormatSpreadsheet}
}

func (a *ItauInvoiceAdapter) Detect(doc *Document) bool {
	if doc.Kind() != KindZIP && doc.Kind() != KindOLE {
		return false
	}
	rows, err := doc.Sheet()
	if err != nil {
		return false
	}
	if _, _, ok := findColumns(rows, 80, "data", "lancamento", "valor"); !ok {
		return false
	}
	return containsAll(foldRows(rows, 40), "fatura", "vencimento")
}

func (a *ItauInvoiceAdapter) Parse(_ context.Context, doc *Document) (*Result, error) {
	rows, err := doc.Sheet()
	if err != nil {
		return nil, fmt.Errorf("read itau invoice: %w", err)
	}

	key := a.Key()
	log := newRowLog(a.logger, key)

	period, ok := itauDueDate(rows)
	if !ok {
		return nil, fmt.Errorf("%w: invoice due date not found", domain.ErrFormatNotRecognized)
	}

	_, cols, ok := findColumns(rows, 80, "data", "lancamento", "valor")
	if !ok {
		return nil, domain.ErrFormatNotRecognized
	}

	samples := make([]string, 0, len(rows))
	for _, row := range rows {
		samples = append(samples, cell(row, cols["valor"]))
	}
	conv := DetectConvention(samples)

	var (
		txs      []domain.RawTransaction
		total    *decimal.Decimal
		cardName string
		last4    string
	)

	for i, row := range rows {
		line := i + 1
		text := rowText(row)
		folded := fold(text)
		if text == "" {
			continue
		}
		if containsAny(folded, futureMarker, "proximas faturas") {
			break
		}

		if containsAny(folded, "total da fatura", "total desta fatura") {
			if v, ok := lastAmount(row, conv); ok {
				total = balance.Ptr(v)
			}
			continue
		}

		if m := cardFinalRe.FindStringSubmatchIndex(text); m != nil && cell(row, cols["valor"]) == "" {
			last4 = text[m[2]:m[3]]
			cardName = strings.Trim(text[:m[0]], " -(")
			continue
		}

		dateCell := cell(row, cols["data"])
		if !startsWithDigit(dateCell) || strings.Contains(folded, "vencimento") {
			continue
		}

		date, err := ParsePartialDate(dateCell, period)
		if err != nil {
			log.skip(line, text, err)
			continue
		}

		amount, err := parseCellAmount(cell(row, cols["valor"]), conv)
		if err != nil {
			log.skip(line, text, err)
			continue
		}
		if amount.IsZero() {
			continue
		}

		if cardName == "" && last4 == "" {
			cardName = "Itaú"
		}

		txs = append(txs, domain.RawTransaction{
			Date:          date,
			Establishment: collapseSpaces(cell(row, cols["lancamento"])),
			Amount:        amount.Neg(),
			CardName:      cardName,
			CardLast4:     last4,
			ClosingPeriod: period,
		})
	}

	return &Result{
		Key:          key,
		Transactions: txs,
		Balance:      invoiceBalance(txs, total, balance.ToleranceTenCents),
		Skipped:      log.skipped,
	}, nil
}

func itauDueDate(rows [][]string) (domain.Period, bool) {
	for _, row := range rows {
		text := rowText(row)
		if !strings.Contains(fold(text), "vencimento") {
			continue
		}
		if m := fullDateRe.FindString(text); m != "" {
			if d, err := ParseDate(m); err == nil {
				return domain.PeriodOf(d), true
			}
		}
	}
	return domain.Period{}, false
}

// lastAmount returns the right-most cell of row that parses as an amount.
func lastAmount(row []string, conv Convention) (decimal.Decimal, bool) {
	for i := len(row) - 1; i >= 0; i-- {
		c := strings.TrimSpace(row[i])
		if c == "" || !strings.ContainsAny(c, "0123456789") {
			continue
		}
		if v, err := parseCellAmount(c, conv); err == nil {
			return v, true
		}
	}
	return decimal.Zero, false
}

func foldRows(rows [][]string, limit int) string {
	if limit > len(rows) {
		limit = len(rows)
	}
	var b strings.Builder
	for _, row := range rows[:limit] {
		b.WriteString(fold(rowText(row)))
		b.WriteByte('\n')
	}
	return b.String()
}

// invoiceBalance checks an invoice: opening zero, closing minus the declared
// total. Without a total the check is not applicable.
func invoiceBalance(txs []domain.RawTransaction, total *decimal.Decimal, tolerance decimal.Decimal) domain.BalanceValidation {
	if total == nil {
		return notApplicable(txs)
	}
	closing := total.Abs().Neg()
	return balance.Validate(balance.Ptr(decimal.Zero), &closing, amountsOf(txs), tolerance)
}

func notApplicable(txs []domain.RawTransaction) domain.BalanceValidation {
	return balance.Validate(nil, nil, amountsOf(txs), decimal.Zero)
}

func amountsOf(txs []domain.RawTransaction) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(txs))
	for _, tx := range txs {
		out = append(out, tx.Amount)
	}
	return out
}

func startsWithDigit(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
