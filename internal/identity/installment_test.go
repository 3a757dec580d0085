package identity_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/goextrato/internal/domain"
	"github.com/iho/goextrato/internal/identity"
)

func TestParseInstallment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text    string
		docType domain.DocumentType
		ok      bool
		base    string
		current int
		total   int
	}{
		{"STORE (1/3)", domain.DocumentInvoice, true, "STORE", 1, 3},
		{"Loja Exemplo - Parcela 02/10", domain.DocumentInvoice, true, "Loja Exemplo", 2, 10},
		{"LOJA PARC 3 DE 12", domain.DocumentInvoice, true, "LOJA", 3, 12},
		{"NETSHOES 04/06", domain.DocumentInvoice, true, "NETSHOES", 4, 6},
		{"NETSHOES 04/06", domain.DocumentStatement, false, "", 0, 0},
		{"COMPRA 10/40", domain.DocumentStatement, true, "COMPRA", 10, 40},
		{"STORE (4/3)", domain.DocumentInvoice, false, "", 0, 0},
		{"STORE (0/3)", domain.DocumentInvoice, false, "", 0, 0},
		{"3/10", domain.DocumentInvoice, false, "", 0, 0},
		{"UBER TRIP", domain.DocumentInvoice, false, "", 0, 0},
	}

	for _, tt := range tests {
		got, ok := identity.ParseInstallment(tt.text, tt.docType)
		if ok != tt.ok {
			t.Fatalf("ParseInstallment(%q, %s) ok = %v, want %v", tt.text, tt.docType, ok, tt.ok)
		}
		if !ok {
			continue
		}
		if got.Base != tt.base || got.Current != tt.current || got.Total != tt.total {
			t.Fatalf("ParseInstallment(%q) = %+v", tt.text, got)
		}
	}
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	if got := identity.Canonical("Ifd*iFood.com - 99 Agência"); got != "IFDIFOODCOM99AGNCIA" {
		t.Fatalf("unexpected canonical form %q", got)
	}
}

func TestInstallmentGroupIDDependsOnAmountAndTotal(t *testing.T) {
	t.Parallel()

	a := identity.InstallmentGroupID("STORE", decimal.RequireFromString("100"), 3, "u")
	b := identity.InstallmentGroupID("STORE", decimal.RequireFromString("100.00"), 3, "u")
	c := identity.InstallmentGroupID("STORE", decimal.RequireFromString("100.01"), 3, "u")

	if a != b {
		t.Fatal("expected amount rendering to be normalized")
	}
	if a == c {
		t.Fatal("expected different amounts to give different groups")
	}
}
