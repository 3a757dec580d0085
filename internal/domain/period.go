package domain

import (
	"fmt"
	"strconv"
	"time"
)

// Period is an invoice closing period (year and month).
type Period struct {
	Year  int
	Month int
}

// ParsePeriod parses a YYYYMM string.
func ParsePeriod(s string) (Period, error) {
	if len(s) != 6 {
		return Period{}, fmt.Errorf("invalid period %q: expected YYYYMM", s)
	}

	year, err := strconv.Atoi(s[:4])
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: %w", s, err)
	}

	month, err := strconv.Atoi(s[4:])
	if err != nil {
		return Period{}, fmt.Errorf("invalid period %q: %w", s, err)
	}

	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("invalid period %q: month out of range", s)
	}

	return Period{Year: year, Month: month}, nil
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: int(t.Month())}
}

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// String renders the period as YYYYMM, or "" when unset.
func (p Period) String() string {
	if p.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d%02d", p.Year, p.Month)
}

// MarshalText implements encoding.TextMarshaler.
func (p Period) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler; "" is the zero period.
func (p *Period) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*p = Period{}
		return nil
	}
	parsed, err := ParsePeriod(string(b))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
