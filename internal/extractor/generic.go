package extractor

import (
	"context"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/goextrato/internal/balance"
	"github.com/iho/goextrato/internal/domain"
)

// MinGenericScore is the keyword score the fallback needs to claim a file.
const MinGenericScore = 3

var (
	invoiceVocabulary = []string{
		"fatura", "vencimento", "cartao", "limite", "pagamento minimo",
		"total da fatura", "credit card", "invoice", "minimum payment", "due date",
	}
	statementVocabulary = []string{
		"extrato", "saldo", "saldo anterior", "agencia", "conta corrente",
		"lancamentos", "statement", "opening balance", "closing balance", "account",
	}

	genericRowRe = regexp.MustCompile(`^(\d{1,2}/\d{1,2}/\d{2,4}|\d{4}-\d{2}-\d{2}|\d{1,2}/\d{1,2})\s+(.+?)\s+([-+(]?\s*(?:R\$\s*)?[\d.,]+\)?\s*[CD-]?)$`)
)

// GenericAdapter is the last resort for text documents: it scores invoice and
// statement vocabularies and parses "date description amount" lines.
type GenericAdapter struct {
	logger zerolog.Logger
}

func NewGenericAdapter(logger zerolog.Logger) *GenericAdapter {
	return &GenericAdapter{logger: logger}
}

func (a *GenericAdapter) Key() Key {
	return Key{Issuer: IssuerGeneric, Format: FormatText}
}

// Score counts distinct vocabulary hits for each document type.
func Score(folded string) (invoice, statement int) {
	for _, w := range invoiceVocabulary {
		if strings.Contains(folded, w) {
			invoice++
		}
	}
	for _, w := range statementVocabulary {
		if strings.Contains(folded, w) {
			statement++
		}
	}
	return invoice, statement
}

func (a *GenericAdapter) classify(doc *Document) (domain.DocumentType, bool) {
	if doc.Kind() != KindText && doc.Kind() != KindPDF {
		return "", false
	}
	invoice, statement := Score(doc.Folded())
	switch {
	case invoice >= MinGenericScore && invoice > statement:
		return domain.DocumentInvoice, true
	case statement >= MinGenericScore && statement > invoice:
		return domain.DocumentStatement, true
	default:
		return "", false
	}
}

func (a *GenericAdapter) Detect(doc *Document) bool {
	_, ok := a.classify(doc)
	return ok
}

func (a *GenericAdapter) Parse(_ context.Context, doc *Document) (*Result, error) {
	docType, ok := a.classify(doc)
	if !ok {
		return nil, domain.ErrFormatNotRecognized
	}

	key := a.Key()
	key.DocumentType = docType
	log := newRowLog(a.logger, key)

	lines := doc.Lines()
	if docType == domain.DocumentInvoice {
		parsed := parseInvoiceLines(lines, "", log)
		for i := range parsed.Transactions {
			if !parsed.Transactions[i].HasCard() {
				parsed.Transactions[i].CardName = IssuerGeneric
			}
		}
		return &Result{
			Key:          key,
			Transactions: parsed.Transactions,
			Balance:      invoiceBalance(parsed.Transactions, parsed.Total, balance.ToleranceTenCents),
			Skipped:      log.skipped,
		}, nil
	}

	var samples []string
	for _, l := range lines {
		if m := genericRowRe.FindStringSubmatch(l); m != nil {
			samples = append(samples, m[3])
		}
	}
	conv := DetectConvention(samples)

	var (
		txs      []domain.RawTransaction
		inScope  []decimal.Decimal
		opening  *decimal.Decimal
		closing  *decimal.Decimal
		snapshot bool
	)

	for i, line := range lines {
		lineNo := i + 1
		if strings.Contains(fold(line), futureMarker) {
			break
		}

		m := genericRowRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		amount, err := ParseAmount(m[3], conv)
		if err != nil {
			log.skip(lineNo, line, err)
			continue
		}

		desc := collapseSpaces(m[2])
		if h := fold(desc); strings.HasPrefix(h, "saldo") || strings.Contains(h, "balance") {
			if (strings.Contains(h, "anterior") || strings.Contains(h, "opening")) && !snapshot {
				opening = balance.Ptr(amount)
			} else {
				closing = balance.Ptr(amount)
			}
			snapshot = true
			continue
		}

		date, err := ParseDate(m[1])
		if err != nil {
			log.skip(lineNo, line, err)
			continue
		}
		if amount.IsZero() {
			continue
		}

		txs = append(txs, domain.RawTransaction{Date: date, Establishment: desc, Amount: amount})
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
