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

var (
	bbRowRe  = regexp.MustCompile(`^(\d{2}/\d{2}/\d{4})\s+(.*?)\s+(-?[\d.]+,\d{2})\s*([CD])?\s*$`)
	bbDateRe = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}\b`)
)

// BBStatementAdapter reads the Banco do Brasil account statement text export:
// "dd/mm/yyyy  history  1.234,56 C|D" rows framed by "Saldo Anterior" and
// "S A L D O" snapshots.
type BBStatementAdapter struct {
	logger zerolog.Logger
}

func NewBBStatementAdapter(logger zerolog.Logger) *BBStatementAdapter {
	return &BBStatementAdapter{logger: logger}
}

func (a *BBStatementAdapter) Key() Key {
	return Key{Issuer: IssuerBB, DocumentType: domain.DocumentStatement, Format: FormatBankExport}
}

func (a *BBStatementAdapter) Detect(doc *Document) bool {
	if doc.Kind() != KindText {
		return false
	}
	folded := doc.Folded()
	if !containsAny(folded, "banco do brasil", "bb.com.br") {
		return false
	}
	for _, l := range doc.Lines() {
		if bbRowRe.MatchString(l) {
			return true
		}
	}
	return false
}

func (a *BBStatementAdapter) Parse(_ context.Context, doc *Document) (*Result, error) {
	key := a.Key()
	log := newRowLog(a.logger, key)

	var (
		txs      []domain.RawTransaction
		inScope  []decimal.Decimal
		opening  *decimal.Decimal
		closing  *decimal.Decimal
		snapshot bool
	)

	for i, line := range doc.Lines() {
		lineNo := i + 1
		folded := fold(line)
		if strings.Contains(folded, futureMarker) {
			break
		}
		if !bbDateRe.MatchString(line) {
			continue
		}

		m := bbRowRe.FindStringSubmatch(line)
		if m == nil {
			log.skip(lineNo, line, errNoAmount)
			continue
		}

		amount, err := ParseAmount(m[3]+m[4], DecimalComma)
		if err != nil {
			log.skip(lineNo, line, err)
			continue
		}

		history := collapseSpaces(m[2])
		switch h := fold(history); {
		case strings.HasPrefix(h, "saldo anterior"):
			if !snapshot {
				opening = balance.Ptr(amount)
			}
			snapshot = true
			continue
		case strings.HasPrefix(h, "s a l d o"), h == "saldo", strings.HasPrefix(h, "saldo do dia"):
			closing = balance.Ptr(amount)
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

		txs = append(txs, domain.RawTransaction{
			Date:          date,
			Establishment: history,
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
