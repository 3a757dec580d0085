package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/iho/goextrato/internal/domain"
)

var dateLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"02/01/06",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-01-2006 15:04:05",
	"02-01-2006",
	"02.01.2006",
	"01-02-06", // excelize renders unformatted date cells as mm-dd-yy
	"20060102",
}

var monthNames = map[string]int{
	"jan": 1, "janeiro": 1, "january": 1,
	"fev": 2, "fevereiro": 2, "feb": 2, "february": 2,
	"mar": 3, "marco": 3, "march": 3,
	"abr": 4, "abril": 4, "apr": 4, "april": 4,
	"mai": 5, "maio": 5, "may": 5,
	"jun": 6, "junho": 6, "june": 6,
	"jul": 7, "julho": 7, "july": 7,
	"ago": 8, "agosto": 8, "aug": 8, "august": 8,
	"set": 9, "setembro": 9, "sep": 9, "sept": 9, "september": 9,
	"out": 10, "outubro": 10, "oct": 10, "october": 10,
	"nov": 11, "novembro": 11, "november": 11,
	"dez": 12, "dezembro": 12, "dec": 12, "december": 12,
}

var (
	namedDateRe   = regexp.MustCompile(`^(\d{1,2})[\s/.\-]*(?:de\s+)?([a-z]{3,9})\.?(?:[\s/.\-]*(?:de\s+)?(\d{2}|\d{4}))?$`)
	partialDateRe = regexp.MustCompile(`^(\d{1,2})[/\-.](\d{1,2})$`)
)

// ParseDate parses a full date in any supported layout, including Portuguese and
// English month names ("05 de mar. 2024", "05/Mar/2024").
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t), nil
		}
	}

	day, month, year, ok := parseNamedDate(s)
	if ok && year > 0 {
		return makeDate(year, month, day)
	}

	return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
}

// ParsePartialDate parses dates that may lack a year ("05/03", "05 MAR"). The year
// comes from the invoice closing period; a month after the closing month belongs
// to the previous year.
func ParsePartialDate(s string, closing domain.Period) (time.Time, error) {
	s = strings.TrimSpace(s)

	if t, err := ParseDate(s); err == nil {
		return t, nil
	}

	var day, month int
	if m := partialDateRe.FindStringSubmatch(s); m != nil {
		day, _ = strconv.Atoi(m[1])
		month, _ = strconv.Atoi(m[2])
	} else if d, mo, _, ok := parseNamedDate(s); ok {
		day, month = d, mo
	} else {
		return time.Time{}, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}

	if closing.IsZero() {
		return time.Time{}, fmt.Errorf("%w: %q has no year and no closing period", domain.ErrInvalidDate, s)
	}

	year := closing.Year
	if month > closing.Month {
		year--
	}

	return makeDate(year, month, day)
}

func parseNamedDate(s string) (day, month, year int, ok bool) {
	m := namedDateRe.FindStringSubmatch(strings.ToLower(domain.FoldAccents(s)))
	if m == nil {
		return 0, 0, 0, false
	}

	month, found := monthNames[m[2]]
	if !found {
		return 0, 0, 0, false
	}

	day, _ = strconv.Atoi(m[1])
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
	}

	return day, month, year, true
}

func makeDate(year, month, day int) (time.Time, error) {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if t.Day() != day || int(t.Month()) != month {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d", domain.ErrInvalidDate, year, month, day)
	}
	return t, nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
