package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/goextrato/internal/balance"
	"github.com/iho/goextrato/internal/domain"
)

// Brazilian bank codes (COMPE) seen in OFX <BANKID>.
var ofxBankIssuers = map[string]string{
	"1":   IssuerBB,
	"77":  IssuerInter,
	"260": IssuerNubank,
	"341": IssuerItau,
}

// OFXAdapter reads OFX exports through ofxgo. Bank statements become
// statements, credit card statements become invoices. OFX declares only a
// closing balance, so the balance check is not applicable.
type OFXAdapter struct {
	logger zerolog.Logger
}

func NewOFXAdapter(logger zerolog.Logger) *OFXAdapter {
	return &OFXAdapter{logger: logger}
}

func (a *OFXAdapter) Key() Key {
	return Key{Issuer: IssuerAny, Format: FormatBankExport}
}

func (a *OFXAdapter) Detect(doc *Document) bool {
	if doc.Kind() != KindText {
		return false
	}
	head := doc.Content
	if len(head) > 512 {
		head = head[:512]
	}
	upper := bytes.ToUpper(head)
	return bytes.Contains(upper, []byte("OFXHEADER")) || bytes.Contains(upper, []byte("<OFX>"))
}

func (a *OFXAdapter) Parse(_ context.Context, doc *Document) (*Result, error) {
	resp, err := ofxgo.ParseResponse(bytes.NewReader(doc.Content))
	if err != nil {
		return nil, fmt.Errorf("parse ofx: %w", err)
	}

	res := &Result{Key: Key{Issuer: IssuerOFX, Format: FormatBankExport}}
	log := newRowLog(a.logger, a.Key())
	var closing *decimal.Decimal

	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok {
			continue
		}
		res.Key.DocumentType = domain.DocumentStatement
		res.Key.Issuer = ofxIssuer(string(stmt.BankAcctFrom.BankID))

		if stmt.BankTranList != nil {
			res.Transactions = append(res.Transactions,
				ofxTransactions(stmt.BankTranList.Transactions, domain.RawTransaction{}, log)...)
		}
		if v, err := ofxAmount(&stmt.BalAmt); err == nil {
			closing = balance.Ptr(v)
		}
	}

	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok {
			continue
		}
		res.Key.DocumentType = domain.DocumentInvoice

		acct := string(stmt.CCAcctFrom.AcctID)
		template := domain.RawTransaction{
			CardName:      "OFX",
			CardLast4:     lastDigits(acct, 4),
			ClosingPeriod: domain.PeriodOf(stmt.DtAsOf.Time),
		}
		if stmt.BankTranList != nil {
			if !stmt.BankTranList.DtEnd.IsZero() {
				template.ClosingPeriod = domain.PeriodOf(stmt.BankTranList.DtEnd.Time)
			}
			res.Transactions = append(res.Transactions,
				ofxTransactions(stmt.BankTranList.Transactions, template, log)...)
		}
		if v, err := ofxAmount(&stmt.BalAmt); err == nil {
			closing = balance.Ptr(v)
		}
	}

	if res.Key.DocumentType == "" {
		return nil, fmt.Errorf("%w: ofx has no bank or card statement", domain.ErrFormatNotRecognized)
	}

	res.Balance = balance.Validate(nil, closing, amountsOf(res.Transactions), balance.ToleranceCent)
	res.Skipped = log.skipped
	return res, nil
}

func ofxTransactions(list []ofxgo.Transaction, template domain.RawTransaction, log *rowLog) []domain.RawTransaction {
	out := make([]domain.RawTransaction, 0, len(list))
	for i := range list {
		t := &list[i]

		desc := collapseSpaces(string(t.Name))
		if memo := collapseSpaces(string(t.Memo)); memo != "" && !strings.EqualFold(memo, desc) {
			if desc == "" {
				desc = memo
			} else {
				desc += " " + memo
			}
		}

		amount, err := ofxAmount(&t.TrnAmt)
		if err != nil {
			log.skip(i+1, string(t.FiTID), err)
			continue
		}
		if amount.IsZero() {
			continue
		}
		if t.DtPosted.IsZero() {
			log.skip(i+1, string(t.FiTID), domain.ErrInvalidDate)
			continue
		}

		tx := template
		tx.Date = dateOnly(t.DtPosted.Time)
		tx.Establishment = desc
		tx.Amount = amount
		out = append(out, tx)
	}
	return out
}

func ofxAmount(a *ofxgo.Amount) (decimal.Decimal, error) {
	return decimal.NewFromString(a.FloatString(2))
}

func ofxIssuer(bankID string) string {
	id := strings.TrimLeft(strings.TrimSpace(bankID), "0")
	if issuer, ok := ofxBankIssuers[id]; ok {
		return issuer
	}
	return IssuerOFX
}

func lastDigits(s string, n int) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
	if len(digits) < n {
		return digits
	}
	return digits[len(digits)-n:]
}
