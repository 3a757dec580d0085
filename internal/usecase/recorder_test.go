package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/goextrato/internal/domain"
	"github.com/iho/goextrato/internal/usecase"
	"github.com/iho/goextrato/internal/usecase/mocks"
)

func installment(group string, provenance domain.Provenance, triple domain.CategoryTriple) domain.ClassifiedTransaction {
	c := domain.NewClassification(triple, domain.TypeExpense, provenance, false)
	if provenance == domain.ProvenanceUnclassified {
		c = domain.Unclassified()
	}
	return domain.ClassifiedTransaction{
		MarkedTransaction: domain.MarkedTransaction{InstallmentGroupID: group},
		Classification:    c,
	}
}

func TestNewContracts(t *testing.T) {
	t.Parallel()

	home := domain.CategoryTriple{Group: "Casa", Subgroup: "Móveis", SpendType: "Variável"}
	txs := []domain.ClassifiedTransaction{
		installment("g1", domain.ProvenanceKeyword, home),
		installment("g1", domain.ProvenanceKeyword, home),
		installment("g2", domain.ProvenanceInstallment, home),
		installment("g3", domain.ProvenanceUnclassified, domain.CategoryTriple{}),
		installment("", domain.ProvenanceKeyword, home),
	}

	contracts := usecase.NewContracts(txs, "u1")
	require.Len(t, contracts, 1)
	assert.Equal(t, "g1", contracts[0].InstallmentGroupID)
	assert.Equal(t, "u1", contracts[0].UserID)
	assert.Equal(t, home, contracts[0].CategoryTriple)
}

func TestRunRecorder(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	history := mocks.NewMockHistoryWriter(ctrl)
	contracts := mocks.NewMockContractWriter(ctrl)

	home := domain.CategoryTriple{Group: "Casa", Subgroup: "Móveis", SpendType: "Variável"}
	res := &usecase.IngestResult{
		RunID:        "01HZRUN",
		Transactions: []domain.ClassifiedTransaction{installment("g1", domain.ProvenanceHistory, home)},
	}

	rec := usecase.NewRunRecorder(history, contracts, zerolog.Nop())

	gomock.InOrder(
		history.EXPECT().Record(gomock.Any(), "u1", res.Transactions).Return(nil),
		contracts.EXPECT().Save(gomock.Any(), &domain.InstallmentContract{
			InstallmentGroupID: "g1",
			UserID:             "u1",
			CategoryTriple:     home,
		}).Return(nil),
	)
	require.NoError(t, rec.Record(context.Background(), res, "u1"))

	history.EXPECT().Record(gomock.Any(), "u1", gomock.Any()).Return(errors.New("connection reset"))
	err := rec.Record(context.Background(), res, "u1")
	assert.ErrorContains(t, err, "record history")

	assert.NoError(t, usecase.NewRunRecorder(nil, nil, zerolog.Nop()).Record(context.Background(), res, "u1"))
	assert.NoError(t, rec.Record(context.Background(), nil, "u1"))
}
