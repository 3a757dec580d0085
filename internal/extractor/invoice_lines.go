package extractor

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goextrato/internal/domain"
)

const (
	monthPattern      = `(?i:jan|fev|feb|mar|abr|apr|mai|may|jun|jul|ago|aug|set|sep|out|oct|nov|dez|dec)[a-zA-ZçÇ]*`
	lineDatePattern   = `\d{1,2}/\d{1,2}(?:/\d{2,4})?|\d{1,2}\s+(?:de\s+)?` + monthPattern + `\.?(?:\s+(?:de\s+)?\d{4})?`
	lineAmountPattern = `[-+]?\s*(?:R\$\s*)?-?\d+(?:\.\d{3})*,\d{2}`
)

var (
	lineAmountRe   = regexp.MustCompile(lineAmountPattern)
	lineRecordRe   = regexp.MustCompile(`^(` + lineDatePattern + `)\s+(.+?)\s+(` + lineAmountPattern + `)$`)
	lineDateOnlyRe = regexp.MustCompile(`^(?:` + lineDatePattern + `)\b`)
	namedFullDate  = regexp.MustCompile(`\b\d{1,2}\s+(?:de\s+)?` + monthPattern + `\.?\s+(?:de\s+)?\d{4}\b`)
)

// invoiceLines is the result of parsing text lines of a card invoice.
type invoiceLines struct {
	Transactions []domain.RawTransaction
	Total        *decimal.Decimal
	Period       domain.Period
}

// parseInvoiceLines parses "date description amount" records from text lines of
// a card invoice (native PDF text or OCR). Two-column lines are split first.
// Charges are printed unsigned and become negative; a printed sign marks a credit.
func parseInvoiceLines(lines []string, defaultCard string, log *rowLog) invoiceLines {
	lines = RepairRecords(lines, lineAmountRe)

	out := invoiceLines{Period: invoiceDueDate(lines)}

	card, last4 := defaultCard, ""
	for i, line := range lines {
		lineNo := i + 1
		folded := fold(line)

		if containsAny(folded, "proximas faturas", "proxima fatura", futureMarker) {
			break
		}

		if containsAny(folded, "total da fatura", "total desta fatura", "valor total da fatura") {
			if m := lineAmountRe.FindAllString(line, -1); len(m) > 0 {
				if v, err := ParseAmount(m[len(m)-1], DecimalComma); err == nil {
					total := v.Abs()
					out.Total = &total
				}
			}
			continue
		}

		if !lineDateOnlyRe.MatchString(line) {
			if m := cardFinalRe.FindStringSubmatch(line); m != nil {
				last4 = m[1]
				if name := strings.TrimSpace(cardFinalRe.ReplaceAllString(line, "")); name != "" {
					card = strings.Trim(name, " -:")
				}
			}
			continue
		}

		m := lineRecordRe.FindStringSubmatch(line)
		if m == nil {
			if !strings.Contains(folded, "vencimento") {
				log.skip(lineNo, line, errNoAmount)
			}
			continue
		}

		date, err := ParsePartialDate(m[1], out.Period)
		if err != nil {
			log.skip(lineNo, line, err)
			continue
		}

		amount, err := ParseAmount(m[3], DecimalComma)
		if err != nil {
			log.skip(lineNo, line, err)
			continue
		}
		if amount.IsZero() {
			continue
		}

		signed := strings.ContainsAny(strings.TrimSpace(m[3])[:1], "+-")
		if signed {
			amount = amount.Abs()
		} else {
			amount = amount.Neg()
		}

		out.Transactions = append(out.Transactions, domain.RawTransaction{
			Date:          date,
			Establishment: collapseSpaces(m[2]),
			Amount:        amount,
			CardName:      card,
			CardLast4:     last4,
			ClosingPeriod: out.Period,
		})
	}

	if out.Period.IsZero() {
		out.Period = latestPeriod(out.Transactions)
		for i := range out.Transactions {
			out.Transactions[i].ClosingPeriod = out.Period
		}
	}

	return out
}

// invoiceDueDate finds the period of the "vencimento" caption.
func invoiceDueDate(lines []string) domain.Period {
	for _, line := range lines {
		if !strings.Contains(fold(line), "vencimento") {
			continue
		}
		for _, candidate := range []string{fullDateRe.FindString(line), namedFullDate.FindString(line)} {
			if candidate == "" {
				continue
			}
			if d, err := ParseDate(candidate); err == nil {
				return domain.PeriodOf(d)
			}
		}
	}
	return domain.Period{}
}

func latestPeriod(txs []domain.RawTransaction) domain.Period {
	var latest time.Time
	for _, tx := range txs {
		if tx.Date.After(latest) {
			latest = tx.Date
		}
	}
	if latest.IsZero() {
		return domain.Period{}
	}
	return domain.PeriodOf(latest)
}
