package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/goextrato/internal/balance"
	"github.com/iho/goextrato/internal/domain"
)

// OCRPage is the recognized words of one page. Coordinates are page-relative
// with Y growing downwards.
type OCRPage struct {
	Number int
	Words  []Box
}

// OCREngine recognizes words on the pages of a scanned document.
type OCREngine interface {
	Recognize(ctx context.Context, content []byte, mimeType string) ([]OCRPage, error)
}

// issuerVocabulary guesses the issuer of OCR text.
var issuerVocabulary = []struct {
	issuer string
	words  []string
}{
	{IssuerNubank, []string{"nubank", "nu pagamentos"}},
	{IssuerItau, []string{"itau", "itaucard"}},
	{IssuerInter, []string{"banco inter", "inter&co"}},
	{IssuerBB, []string{"banco do brasil", "ourocard"}},
}

// OCRAdapter reads scanned card invoices: PDFs without a text layer are sent to
// the OCR engine, the words are grouped into rows and columns, and the rows go
// through the same line parser as native PDFs.
type OCRAdapter struct {
	engine OCREngine
	logger zerolog.Logger
}

func NewOCRAdapter(engine OCREngine, logger zerolog.Logger) *OCRAdapter {
	return &OCRAdapter{engine: engine, logger: logger}
}

func (a *OCRAdapter) Key() Key {
	return Key{Issuer: IssuerAny, DocumentType: domain.DocumentInvoice, Format: FormatOCR}
}

func (a *OCRAdapter) Detect(doc *Document) bool {
	if doc.Kind() != KindPDF {
		return false
	}
	_, err := doc.PDFLines()
	return err == nil && !doc.HasTextLayer()
}

func (a *OCRAdapter) Parse(ctx context.Context, doc *Document) (*Result, error) {
	pages, err := a.engine.Recognize(ctx, doc.Content, "application/pdf")
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}

	var texts []string
	for _, page := range pages {
		for _, line := range SegmentRows(page.Words, 0) {
			texts = append(texts, line.Text())
		}
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: ocr found no text", domain.ErrFormatNotRecognized)
	}

	key := a.Key()
	key.Issuer = guessIssuer(fold(strings.Join(texts, "\n")))

	log := newRowLog(a.logger, key)
	parsed := parseInvoiceLines(texts, "", log)
	for i := range parsed.Transactions {
		if !parsed.Transactions[i].HasCard() {
			parsed.Transactions[i].CardName = key.Issuer
		}
	}

	return &Result{
		Key:          key,
		Transactions: parsed.Transactions,
		Balance:      invoiceBalance(parsed.Transactions, parsed.Total, balance.ToleranceTenCents),
		Skipped:      log.skipped,
	}, nil
}

func guessIssuer(folded string) string {
	for _, v := range issuerVocabulary {
		if containsAny(folded, v.words...) {
			return v.issuer
		}
	}
	return IssuerGeneric
}
