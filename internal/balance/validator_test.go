package balance_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/goextrato/internal/balance"
	"github.com/iho/goextrato/internal/domain"
)

func amounts(values ...string) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		out = append(out, decimal.RequireFromString(v))
	}
	return out
}

func TestValidate(t *testing.T) {
	t.Parallel()

	opening := balance.Ptr(decimal.RequireFromString("100.00"))
	txs := amounts("-30.00", "-20.00", "5.00")

	tests := []struct {
		name      string
		closing   string
		tolerance decimal.Decimal
		want      domain.BalanceStatus
		diff      string
	}{
		{"exact match", "55.00", balance.ToleranceCent, domain.BalanceValid, "0"},
		{"off by twenty cents at one cent", "54.80", balance.ToleranceCent, domain.BalanceMismatch, "0.2"},
		{"off by twenty cents at ten cents", "54.80", balance.ToleranceTenCents, domain.BalanceMismatch, "0.2"},
		{"off by five cents at ten cents", "54.95", balance.ToleranceTenCents, domain.BalanceValid, "0.05"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			closing := balance.Ptr(decimal.RequireFromString(tt.closing))
			got := balance.Validate(opening, closing, txs, tt.tolerance)

			if got.Status != tt.want {
				t.Fatalf("expected status %s, got %s", tt.want, got.Status)
			}
			if !got.Computed.Equal(decimal.RequireFromString("55")) {
				t.Fatalf("expected computed 55, got %s", got.Computed)
			}
			if !got.Difference.Equal(decimal.RequireFromString(tt.diff)) {
				t.Fatalf("expected difference %s, got %s", tt.diff, got.Difference)
			}
		})
	}
}

func TestValidateTenCentTolerance(t *testing.T) {
	t.Parallel()

	// 54.90 declared against 55.00 computed: rejected at one cent, accepted at ten.
	opening := balance.Ptr(decimal.RequireFromString("100.00"))
	closing := balance.Ptr(decimal.RequireFromString("54.90"))
	txs := amounts("-30.00", "-20.00", "5.00")

	if balance.Validate(opening, closing, txs, balance.ToleranceCent).Valid() {
		t.Fatal("expected mismatch at one cent tolerance")
	}
	if !balance.Validate(opening, closing, txs, balance.ToleranceTenCents).Valid() {
		t.Fatal("expected match at ten cent tolerance")
	}
}

func TestValidateNotApplicable(t *testing.T) {
	t.Parallel()

	got := balance.Validate(nil, balance.Ptr(decimal.NewFromInt(10)), amounts("-5"), balance.ToleranceCent)
	if got.Status != domain.BalanceNotApplicable {
		t.Fatalf("expected not applicable, got %s", got.Status)
	}
	if got.Valid() || got.Applicable() {
		t.Fatal("not applicable must be neither valid nor applicable")
	}
	if got.Err() != nil {
		t.Fatalf("expected no error, got %v", got.Err())
	}
	if !got.TransactionsSum.Equal(decimal.NewFromInt(-5)) {
		t.Fatalf("expected sum -5, got %s", got.TransactionsSum)
	}
}

func TestValidateMismatchError(t *testing.T) {
	t.Parallel()

	got := balance.Validate(balance.Ptr(decimal.Zero), balance.Ptr(decimal.NewFromInt(-100)), amounts("-90"), balance.ToleranceTenCents)
	if !errors.Is(got.Err(), domain.ErrBalanceMismatch) {
		t.Fatalf("expected ErrBalanceMismatch, got %v", got.Err())
	}
}
