package extractor

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/iho/goextrato/internal/balance"
	"github.com/iho/goextrato/internal/domain"
)

// InterInvoiceAdapter reads the Banco Inter card invoice PDF. Its pages are laid
// out in two columns, which the line parser splits back into records.
type InterInvoiceAdapter struct {
	logger zerolog.Logger
}

func NewInterInvoiceAdapter(logger zerolog.Logger) *InterInvoiceAdapter {
	return &InterInvoiceAdapter{logger: logger}
}

func (a *InterInvoiceAdapter) Key() Key {
	return Key{Issuer: IssuerInter, DocumentType: domain.DocumentInvoice, Format: FormatPDF}
}

func (a *InterInvoiceAdapter) Detect(doc *Document) bool {
	if doc.Kind() != KindPDF || !doc.HasTextLayer() {
		return false
	}
	folded := doc.Folded()
	return containsAny(folded, "banco inter", "inter&co", "bancointer") && containsAny(folded, "fatura", "vencimento")
}

func (a *InterInvoiceAdapter) Parse(_ context.Context, doc *Document) (*Result, error) {
	lines, err := doc.PDFLines()
	if err != nil {
		return nil, fmt.Errorf("read inter invoice: %w", err)
	}

	texts := make([]string, 0, len(lines))
	for _, l := range lines {
		texts = append(texts, l.Text())
	}

	key := a.Key()
	log := newRowLog(a.logger, key)
	parsed := parseInvoiceLines(texts, "Inter", log)

	return &Result{
		Key:          key,
		Transactions: parsed.Transactions,
		Balance:      invoiceBalance(parsed.Transactions, parsed.Total, balance.ToleranceTenCents),
		Skipped:      log.skipped,
	}, nil
}
