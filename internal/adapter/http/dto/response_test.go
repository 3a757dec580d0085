package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/goextrato/internal/domain"
	"github.com/iho/goextrato/internal/extractor"
	"github.com/iho/goextrato/internal/usecase"
)

func TestImportFromResultUsesSnakeCase(t *testing.T) {
	closing := decimal.RequireFromString("-10.00")
	res := &usecase.IngestResult{
		RunID: "run-1",
		Key:   extractor.Key{Issuer: "nubank", DocumentType: domain.DocumentInvoice, Format: "csv"},
		Transactions: []domain.ClassifiedTransaction{{
			MarkedTransaction: domain.MarkedTransaction{
				RawTransaction: domain.RawTransaction{
					Date:          time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC),
					Issuer:        "nubank",
					DocumentType:  domain.DocumentInvoice,
					Establishment: "IFOOD",
					Amount:        decimal.RequireFromString("-10.00"),
					ClosingPeriod: domain.Period{Year: 2024, Month: 5},
				},
				TransactionID:     "abc",
				BaseEstablishment: "IFOOD",
				Type:              domain.TypeCard,
			},
			Classification: domain.Classification{
				Group:      "Alimentação",
				Subgroup:   "Delivery",
				Provenance: domain.ProvenanceKeyword,
			},
		}},
		Balance: domain.BalanceValidation{Status: domain.BalanceValid, Closing: &closing},
		Skipped: []domain.RowError{{Line: 4, Raw: "x", Reason: "no date"}},
	}

	body, err := json.Marshal(ImportFromResult(res))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded["run_id"] != "run-1" {
		t.Fatalf("expected run_id, got %v", decoded["run_id"])
	}

	txs := decoded["transactions"].([]any)
	tx := txs[0].(map[string]any)
	if tx["transaction_id"] != "abc" || tx["date"] != "2024-05-03" || tx["closing_period"] != "2024-05" || tx["provenance"] != "keyword" {
		t.Fatalf("unexpected transaction payload: %v", tx)
	}

	balance := decoded["balance"].(map[string]any)
	if balance["status"] != "valid" || balance["closing"] != "-10" {
		t.Fatalf("unexpected balance payload: %v", balance)
	}
	if _, ok := balance["opening"]; ok {
		t.Fatalf("expected absent opening balance to be omitted: %v", balance)
	}
}
