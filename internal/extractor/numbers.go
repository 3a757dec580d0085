package extractor

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Convention is the decimal-separator convention of a source.
type Convention int

const (
	// DecimalComma is "1.234,56".
	DecimalComma Convention = iota
	// DecimalPoint is "1,234.56".
	DecimalPoint
)

func (c Convention) String() string {
	if c == DecimalPoint {
		return "decimal_point"
	}
	return "decimal_comma"
}

// DetectConvention votes over sample amounts. A separator followed by exactly
// three digits is ambiguous and does not vote; ties fall back to DecimalComma.
func DetectConvention(samples []string) Convention {
	comma, point := 0, 0

	for _, s := range samples {
		digits := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == ',' {
				return r
			}
			return -1
		}, s)

		lastComma := strings.LastIndexByte(digits, ',')
		lastPoint := strings.LastIndexByte(digits, '.')

		switch {
		case lastComma >= 0 && lastPoint >= 0:
			if lastComma > lastPoint {
				comma++
			} else {
				point++
			}
		case lastComma >= 0:
			if strings.Count(digits, ",") > 1 {
				point++
			} else if len(digits)-lastComma-1 != 3 {
				comma++
			}
		case lastPoint >= 0:
			if strings.Count(digits, ".") > 1 {
				comma++
			} else if len(digits)-lastPoint-1 != 3 {
				point++
			}
		}
	}

	if point > comma {
		return DecimalPoint
	}
	return DecimalComma
}

// ParseAmount parses a localized amount. It understands currency symbols,
// explicit signs, parentheses, a trailing minus and C/D (credit/debit) suffixes.
func ParseAmount(s string, conv Convention) (decimal.Decimal, error) {
	raw := s
	s = strings.NewReplacer(" ", "", " ", "", "R$", "", "BRL", "", "US$", "", "$", "").Replace(strings.TrimSpace(s))
	s = strings.ToUpper(s)

	negative := false
	switch {
	case strings.HasSuffix(s, "D"):
		negative = true
		s = strings.TrimSuffix(s, "D")
	case strings.HasSuffix(s, "C"):
		s = strings.TrimSuffix(s, "C")
	}

	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = !negative
		s = s[1 : len(s)-1]
	}

	switch {
	case strings.HasPrefix(s, "-"):
		negative = !negative
		s = s[1:]
	case strings.HasSuffix(s, "-"):
		negative = !negative
		s = s[:len(s)-1]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	thousands, dec := ".", ","
	if conv == DecimalPoint {
		thousands, dec = ",", "."
	}
	s = strings.ReplaceAll(s, thousands, "")
	s = strings.Replace(s, dec, ".", 1)

	if s == "" {
		return decimal.Zero, fmt.Errorf("invalid amount %q", raw)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", raw, err)
	}

	if negative {
		d = d.Neg()
	}
	return d, nil
}

// parseCellAmount parses a spreadsheet cell. Cells written as numbers by the
// spreadsheet library ("1234.5") are read with DecimalPoint regardless of conv.
func parseCellAmount(cell string, conv Convention) (decimal.Decimal, error) {
	cell = strings.TrimSpace(cell)
	if plainNumberRe.MatchString(cell) {
		return decimal.NewFromString(cell)
	}
	return ParseAmount(cell, conv)
}

var plainNumberRe = regexp.MustCompile(`^-?\d+(\.(\d{1,2}|\d{4,}))?(E[+-]?\d+)?$`)
