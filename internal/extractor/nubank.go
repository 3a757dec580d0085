package extractor

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/goextrato/internal/domain"
)

var nubankFilenameRe = regexp.MustCompile(`(?i)nubank_(\d{4})-(\d{2})-(\d{2})`)

// NubankInvoiceAdapter reads the Nubank card invoice CSV export
// ("date,title,amount", charges positive).
type NubankInvoiceAdapter struct {
	logger zerolog.Logger
}

func NewNubankInvoiceAdapter(logger zerolog.Logger) *NubankInvoiceAdapter {
	return &NubankInvoiceAdapter{logger: logger}
}

func (a *NubankInvoiceAdapter) Key() Key {
	return Key{Issuer: IssuerNubank, DocumentType: domain.DocumentInvoice, Format: FormatCSV}
}

func (a *NubankInvoiceAdapter) Detect(doc *Document) bool {
	if doc.Kind() != KindText {
		return false
	}
	header := firstLine(doc.Folded())
	return header == "date,title,amount" || header == "date,category,title,amount"
}

func (a *NubankInvoiceAdapter) Parse(_ context.Context, doc *Document) (*Result, error) {
	rows, err := doc.Sheet()
	if err != nil {
		return nil, fmt.Errorf("read nubank invoice: %w", err)
	}

	key := a.Key()
	log := newRowLog(a.logger, key)

	_, cols, ok := findColumns(rows, 1, "date", "title", "amount")
	if !ok {
		return nil, domain.ErrFormatNotRecognized
	}

	period, fromName := nubankPeriod(doc.Name)

	var txs []domain.RawTransaction
	for i, row := range rows[1:] {
		line := i + 2
		if len(strings.TrimSpace(rowText(row))) == 0 {
			continue
		}

		date, err := ParseDate(cell(row, cols["date"]))
		if err != nil {
			log.skip(line, rowText(row), err)
			continue
		}

		amount, err := ParseAmount(cell(row, cols["amount"]), DecimalPoint)
		if err != nil {
			log.skip(line, rowText(row), err)
			continue
		}
		if amount.IsZero() {
			continue
		}

		txs = append(txs, domain.RawTransaction{
			Date:          date,
			Establishment: collapseSpaces(cell(row, cols["title"])),
			Amount:        amount.Neg(),
			CardName:      "Nubank",
		})
	}

	if !fromName {
		for _, tx := range txs {
			if p := domain.PeriodOf(tx.Date); p.Year > period.Year || (p.Year == period.Year && p.Month > period.Month) {
				period = p
			}
		}
	}
	for i := range txs {
		txs[i].ClosingPeriod = period
	}

	return &Result{
		Key:          key,
		Transactions: txs,
		Balance:      notApplicable(txs),
		Skipped:      log.skipped,
	}, nil
}

func nubankPeriod(name string) (domain.Period, bool) {
	m := nubankFilenameRe.FindStringSubmatch(name)
	if m == nil {
		return domain.Period{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	if month < 1 || month > 12 {
		return domain.Period{}, false
	}
	return domain.Period{Year: year, Month: month}, true
}

// NubankStatementAdapter reads the Nubank account CSV export
// ("Data,Valor,Identificador,Descrição", signed amounts).
type NubankStatementAdapter struct {
	logger zerolog.Logger
}

func NewNubankStatementAdapter(logger zerolog.Logger) *NubankStatementAdapter {
	return &NubankStatementAdapter{logger: logger}
}

func (a *NubankStatementAdapter) Key() Key {
	return Key{Issuer: IssuerNubank, DocumentType: domain.DocumentStatement, Format: FormatCSV}
}

func (a *NubankStatementAdapter) Detect(doc *Document) bool {
	if doc.Kind() != KindText {
		return false
	}
	return firstLine(doc.Folded()) == "data,valor,identificador,descricao"
}

func (a *NubankStatementAdapter) Parse(_ context.Context, doc *Document) (*Result, error) {
	rows, err := doc.Sheet()
	if err != nil {
		return nil, fmt.Errorf("read nubank statement: %w", err)
	}

	key := a.Key()
	log := newRowLog(a.logger, key)

	_, cols, ok := findColumns(rows, 1, "data", "valor", "descricao")
	if !ok {
		return nil, domain.ErrFormatNotRecognized
	}

	var txs []domain.RawTransaction
	for i, row := range rows[1:] {
		line := i + 2
		if rowText(row) == "" {
			continue
		}

		date, err := ParseDate(cell(row, cols["data"]))
		if err != nil {
			log.skip(line, rowText(row), err)
			continue
		}

		amount, err := ParseAmount(cell(row, cols["valor"]), DecimalPoint)
		if err != nil {
			log.skip(line, rowText(row), err)
			continue
		}
		if amount.IsZero() {
			continue
		}

		desc := collapseSpaces(cell(row, cols["descricao"]))
		if desc == "" {
			log.skip(line, rowText(row), errors.New("missing description"))
			continue
		}

		txs = append(txs, domain.RawTransaction{
			Date:          date,
			Establishment: desc,
			Amount:        amount,
		})
	}

	return &Result{
		Key:          key,
		Transactions: txs,
		Balance:      notApplicable(txs),
		Skipped:      log.skipped,
	}, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(strings.TrimPrefix(s, "\uFEFF"))
}
