package identity

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/iho/goextrato/internal/domain"
)

// MaxInstallments is the largest installment count accepted.
const MaxInstallments = 99

// Installment suffixes, tried in order. Each captures (current, total) at the end of the text.
var (
	parenthesizedRe = regexp.MustCompile(`(?i)\(\s*(\d{1,2})\s*/\s*(\d{1,2})\s*\)\s*$`)
	parcelaSlashRe  = regexp.MustCompile(`(?i)\bPARC(?:ELA)?\.?\s*(\d{1,2})\s*/\s*(\d{1,2})\s*$`)
	parcelaDeRe     = regexp.MustCompile(`(?i)\bPARC(?:ELA)?\.?\s*(\d{1,2})\s+DE\s+(\d{1,2})\s*$`)
	bareRe          = regexp.MustCompile(`(?:^|[\s\-*])(\d{1,2})/(\d{1,2})\s*$`)
)

// Installment is the result of splitting an establishment text.
type Installment struct {
	Base    string
	Current int
	Total   int
}

// ParseInstallment splits a trailing installment marker ("LOJA (2/10)", "LOJA PARCELA 2/10",
// "LOJA PARC 2 DE 10", "LOJA 2/10") off an establishment text.
// On statements a bare n/m that reads as a day/month is left alone.
func ParseInstallment(text string, docType domain.DocumentType) (Installment, bool) {
	text = strings.TrimSpace(text)

	for _, re := range []*regexp.Regexp{parenthesizedRe, parcelaSlashRe, parcelaDeRe} {
		if inst, ok := matchInstallment(re, text); ok {
			return inst, true
		}
	}

	inst, ok := matchInstallment(bareRe, text)
	if !ok {
		return Installment{}, false
	}

	if docType == domain.DocumentStatement && looksLikeDate(inst.Current, inst.Total) {
		return Installment{}, false
	}

	return inst, true
}

func matchInstallment(re *regexp.Regexp, text string) (Installment, bool) {
	loc := re.FindStringSubmatchIndex(text)
	if loc == nil {
		return Installment{}, false
	}

	current, _ := strconv.Atoi(text[loc[2]:loc[3]])
	total, _ := strconv.Atoi(text[loc[4]:loc[5]])
	if current < 1 || total < 1 || current > total || total > MaxInstallments {
		return Installment{}, false
	}

	base := strings.TrimRight(text[:loc[0]], " -*")
	if strings.TrimSpace(base) == "" {
		return Installment{}, false
	}

	return Installment{Base: strings.TrimSpace(base), Current: current, Total: total}, true
}

func looksLikeDate(day, month int) bool {
	return day <= 31 && month <= 12
}

// Recompose renders the installment in the form hashed for the transaction identity.
func (i Installment) Recompose() string {
	return i.Base + " (" + strconv.Itoa(i.Current) + "/" + strconv.Itoa(i.Total) + ")"
}
