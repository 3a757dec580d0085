package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/goextrato/internal/domain"
	"github.com/iho/goextrato/internal/identity"
	"github.com/iho/goextrato/internal/usecase"
	"github.com/iho/goextrato/internal/usecase/mocks"
)

const userID = "user-1"

var now = time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC)

type fixture struct {
	installments *mocks.MockInstallmentContractRepository
	users        *mocks.MockUserDirectory
	exclusions   *mocks.MockExclusionRuleRepository
	patterns     *mocks.MockLearnedPatternRepository
	history      *mocks.MockHistoryRepository
	combos       *mocks.MockCategoryCombinationRepository
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)
	return &fixture{
		installments: mocks.NewMockInstallmentContractRepository(ctrl),
		users:        mocks.NewMockUserDirectory(ctrl),
		exclusions:   mocks.NewMockExclusionRuleRepository(ctrl),
		patterns:     mocks.NewMockLearnedPatternRepository(ctrl),
		history:      mocks.NewMockHistoryRepository(ctrl),
		combos:       mocks.NewMockCategoryCombinationRepository(ctrl),
	}
}

func (f *fixture) classifier(opts usecase.ClassifierOptions) *usecase.CascadeClassifier {
	opts.Now = func() time.Time { return now }
	return usecase.NewCascadeClassifier(usecase.Collaborators{
		Installments: f.installments,
		Users:        f.users,
		Exclusions:   f.exclusions,
		Patterns:     f.patterns,
		History:      f.history,
		Combinations: f.combos,
	}, usecase.DefaultRuleSet(), opts, zerolog.Nop())
}

// prefetch expects the three per-session lookups.
func (f *fixture) prefetch(holder string, rules []domain.ExclusionRule, patterns []domain.LearnedPattern) {
	f.users.EXPECT().DisplayName(gomock.Any(), userID).Return(holder, nil)
	f.exclusions.EXPECT().ListActive(gomock.Any(), userID).Return(rules, nil)
	f.patterns.EXPECT().ListActive(gomock.Any(), userID).Return(patterns, nil)
}

func (f *fixture) noHistory() {
	f.history.EXPECT().FindMajority(gomock.Any(), userID, gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrNotFound).AnyTimes()
}

func mark(t *testing.T, establishment, amount string) domain.MarkedTransaction {
	t.Helper()
	tx, err := identity.NewMarker(userID, zerolog.Nop()).MarkOne(domain.RawTransaction{
		Date:          time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC),
		Issuer:        "nubank",
		DocumentType:  domain.DocumentStatement,
		Establishment: establishment,
		Amount:        decimal.RequireFromString(amount),
	})
	require.NoError(t, err)
	return tx
}

func session(t *testing.T, c *usecase.CascadeClassifier) *usecase.Session {
	t.Helper()
	s, err := c.NewSession(context.Background(), userID)
	require.NoError(t, err)
	return s
}

var transport = domain.CategoryTriple{Group: "Transporte", Subgroup: "Aplicativos", SpendType: "Variável"}

func TestLearnedPatternWinsOverKeyword(t *testing.T) {
	f := newFixture(t)
	f.prefetch("", nil, []domain.LearnedPattern{{
		Establishment:  "Uber Trip",
		Confidence:     domain.ConfidenceHigh,
		Active:         true,
		CategoryTriple: domain.CategoryTriple{Group: "Trabalho", Subgroup: "Deslocamento", SpendType: "Reembolsável"},
	}})

	s := session(t, f.classifier(usecase.ClassifierOptions{}))
	got := s.Classify(context.Background(), mark(t, "UBER *TRIP", "-25.00"))

	assert.Equal(t, domain.ProvenanceLearnedPattern, got.Provenance)
	assert.Equal(t, "Trabalho", got.Group)
	assert.False(t, got.NeedsReview)
	assert.Equal(t, domain.CategoryExpense, got.Category)
	assert.Equal(t, 0, s.Report().Count(domain.ProvenanceKeyword))
}

func TestUnclassifiedWhenNothingMatches(t *testing.T) {
	f := newFixture(t)
	f.prefetch("", nil, nil)
	f.noHistory()

	s := session(t, f.classifier(usecase.ClassifierOptions{}))
	got := s.Classify(context.Background(), mark(t, "XPTO COMERCIO LTDA", "-10.00"))

	assert.Equal(t, domain.ProvenanceUnclassified, got.Provenance)
	assert.Equal(t, domain.CategoryNotFound, got.Category)
	assert.True(t, got.NeedsReview)
	assert.NotEmpty(t, got.TransactionID)
}

func TestInstallmentCopyIgnoresTextAndAmount(t *testing.T) {
	f := newFixture(t)
	f.prefetch("", nil, nil)

	contract := &domain.InstallmentContract{
		InstallmentGroupID: "abcdef0123456789",
		UserID:             userID,
		CategoryTriple:     domain.CategoryTriple{Group: "Casa", Subgroup: "Móveis", SpendType: "Planejado"},
	}
	f.installments.EXPECT().GetContract(gomock.Any(), "abcdef0123456789", userID).Return(contract, nil).Times(2)

	s := session(t, f.classifier(usecase.ClassifierOptions{}))

	a := mark(t, "IFOOD", "-10.00")
	a.InstallmentGroupID = "abcdef0123456789"
	b := mark(t, "PAGAMENTO DE FATURA", "-999.99")
	b.InstallmentGroupID = "abcdef0123456789"

	ga := s.Classify(context.Background(), a)
	gb := s.Classify(context.Background(), b)

	assert.Equal(t, domain.ProvenanceInstallment, ga.Provenance)
	assert.Equal(t, ga.Classification, gb.Classification)
	assert.Equal(t, contract.CategoryTriple, gb.Triple())
	assert.False(t, gb.NeedsReview)
}

func TestInvalidKeywordTripleNeverWins(t *testing.T) {
	f := newFixture(t)
	f.prefetch("", nil, nil)
	f.noHistory()
	f.combos.EXPECT().IsValid(gomock.Any(), "Alimentação", "Delivery", "Variável").Return(false, nil)

	s := session(t, f.classifier(usecase.ClassifierOptions{}))
	got := s.Classify(context.Background(), mark(t, "IFD*IFOOD.COM AGENCIA", "-42.90"))

	assert.Equal(t, domain.ProvenanceUnclassified, got.Provenance)
	assert.Equal(t, 0, s.Report().Count(domain.ProvenanceKeyword))
}

func TestValidKeywordNeedsReview(t *testing.T) {
	f := newFixture(t)
	f.prefetch("", nil, nil)
	f.noHistory()
	f.combos.EXPECT().IsValid(gomock.Any(), transport.Group, transport.Subgroup, transport.SpendType).Return(true, nil)

	s := session(t, f.classifier(usecase.ClassifierOptions{}))
	got := s.Classify(context.Background(), mark(t, "Uber do Brasil", "-18.40"))

	assert.Equal(t, domain.ProvenanceKeyword, got.Provenance)
	assert.Equal(t, transport, got.Triple())
	assert.True(t, got.NeedsReview)
}

func TestCollaboratorErrorsAreNoOpinion(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("connection refused")

	f.users.EXPECT().DisplayName(gomock.Any(), userID).Return("", boom)
	f.exclusions.EXPECT().ListActive(gomock.Any(), userID).Return(nil, boom)
	f.patterns.EXPECT().ListActive(gomock.Any(), userID).Return(nil, boom)
	f.installments.EXPECT().GetContract(gomock.Any(), gomock.Any(), userID).Return(nil, boom)
	f.history.EXPECT().FindMajority(gomock.Any(), userID, gomock.Any(), gomock.Any()).Return(nil, boom)
	f.combos.EXPECT().IsValid(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, boom)

	s := session(t, f.classifier(usecase.ClassifierOptions{}))

	tx := mark(t, "IFOOD", "-30.00")
	tx.InstallmentGroupID = "0123456789abcdef"
	got := s.Classify(context.Background(), tx)

	assert.Equal(t, domain.ProvenanceUnclassified, got.Provenance)
	assert.True(t, got.NeedsReview)
	assert.Equal(t, 6, s.Report().CollaboratorErrors)
}

func TestCardPaymentIsHiddenTransfer(t *testing.T) {
	f := newFixture(t)
	f.prefetch("", nil, nil)

	s := session(t, f.classifier(usecase.ClassifierOptions{}))
	got := s.Classify(context.Background(), mark(t, "Pagamento de Fatura - Cartão", "-1500.00"))

	assert.Equal(t, domain.ProvenanceCardPayment, got.Provenance)
	assert.Equal(t, domain.CategoryTransfer, got.Category)
	assert.Equal(t, domain.SubgroupCardPayment, got.Subgroup)
	assert.False(t, got.ShowOnDashboard)
	assert.False(t, got.NeedsReview)
}

func TestSelfTransfer(t *testing.T) {
	f := newFixture(t)
	f.prefetch("Maria da Silva Souza", nil, nil)
	f.noHistory()

	s := session(t, f.classifier(usecase.ClassifierOptions{}))

	self := s.Classify(context.Background(), mark(t, "PIX ENVIADO - MARIA SILVA SOUZA", "-500.00"))
	assert.Equal(t, domain.ProvenanceExclusion, self.Provenance)
	assert.Equal(t, domain.SubgroupSelfTransfer, self.Subgroup)
	assert.False(t, self.ShowOnDashboard)

	truncated := s.Classify(context.Background(), mark(t, "TED RECEBIDA MARIA S SOUZ", "800.00"))
	assert.Equal(t, domain.ProvenanceExclusion, truncated.Provenance)

	other := s.Classify(context.Background(), mark(t, "PIX ENVIADO - JOAO PEREIRA", "-50.00"))
	assert.Equal(t, domain.ProvenanceUnclassified, other.Provenance)

	// The name alone, without transfer vocabulary, is not a transfer.
	shop := s.Classify(context.Background(), mark(t, "MARIA SILVA SOUZA DOCES", "-12.00"))
	assert.NotEqual(t, domain.ProvenanceExclusion, shop.Provenance)
}

func TestIgnoreExclusionRule(t *testing.T) {
	f := newFixture(t)
	f.prefetch("", []domain.ExclusionRule{
		{Pattern: "apple.com/bill", Action: domain.ExclusionIgnore},
		{Pattern: "netflix", Action: "flag"},
	}, nil)
	f.noHistory()
	f.combos.EXPECT().IsValid(gomock.Any(), "Lazer", "Assinaturas", "Fixo").Return(true, nil)

	s := session(t, f.classifier(usecase.ClassifierOptions{}))

	ignored := s.Classify(context.Background(), mark(t, "APPLE.COM/BILL 0800", "-9.90"))
	assert.Equal(t, domain.ProvenanceExclusion, ignored.Provenance)
	assert.Equal(t, domain.CategoryIgnored, ignored.Category)
	assert.False(t, ignored.ShowOnDashboard)

	// Only "ignore" rules apply.
	kept := s.Classify(context.Background(), mark(t, "NETFLIX.COM", "-39.90"))
	assert.Equal(t, domain.ProvenanceKeyword, kept.Provenance)
}

func TestHistoryMajority(t *testing.T) {
	f := newFixture(t)
	f.prefetch("", nil, nil)

	since := now.AddDate(0, -12, 0)
	f.history.EXPECT().FindMajority(gomock.Any(), userID, "ACADEMIA SMART FIT", since).
		Return(&domain.HistoricalMajority{Occurrences: 3, CategoryTriple: domain.CategoryTriple{Group: "Saúde", Subgroup: "Academia", SpendType: "Fixo"}}, nil)
	f.history.EXPECT().FindMajority(gomock.Any(), userID, "LOJA RARA", since).
		Return(&domain.HistoricalMajority{Occurrences: 1, CategoryTriple: domain.CategoryTriple{Group: "Compras"}}, nil)

	s := session(t, f.classifier(usecase.ClassifierOptions{}))

	got := s.Classify(context.Background(), mark(t, "Academia Smart Fit", "-99.90"))
	assert.Equal(t, domain.ProvenanceHistory, got.Provenance)
	assert.Equal(t, "Academia", got.Subgroup)
	assert.True(t, got.NeedsReview)

	single := s.Classify(context.Background(), mark(t, "Loja Rara", "-10.00"))
	assert.Equal(t, domain.ProvenanceUnclassified, single.Provenance)
}

func TestHistoryWindowFollowsOptions(t *testing.T) {
	f := newFixture(t)
	f.prefetch("", nil, nil)
	f.history.EXPECT().FindMajority(gomock.Any(), userID, "LOJA", now.AddDate(0, -3, 0)).Return(nil, domain.ErrNotFound)

	s := session(t, f.classifier(usecase.ClassifierOptions{HistoryMonths: 3}))
	s.Classify(context.Background(), mark(t, "Loja", "-1.00"))
}

func TestClassifyBatchReport(t *testing.T) {
	f := newFixture(t)
	f.prefetch("", nil, []domain.LearnedPattern{{
		Establishment:  "PADARIA CENTRAL",
		Confidence:     domain.ConfidenceHigh,
		Active:         true,
		CategoryTriple: domain.CategoryTriple{Group: "Alimentação", Subgroup: "Padaria", SpendType: "Variável"},
	}})
	f.noHistory()

	txs := []domain.MarkedTransaction{
		mark(t, "Padaria Central", "-12.00"),
		mark(t, "Padaria Central", "-8.00"),
		mark(t, "Pagamento recebido", "500.00"),
		mark(t, "XPTO", "-1.00"),
	}

	out, report, err := f.classifier(usecase.ClassifierOptions{}).ClassifyBatch(context.Background(), userID, txs)
	require.NoError(t, err)
	require.Len(t, out, 4)

	for i := range txs {
		assert.Equal(t, txs[i].TransactionID, out[i].TransactionID)
	}

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.Count(domain.ProvenanceLearnedPattern))
	assert.Equal(t, 50.0, report.Percent(domain.ProvenanceLearnedPattern))
	assert.Equal(t, 25.0, report.Percent(domain.ProvenanceCardPayment))
	assert.Equal(t, 1, report.NeedsReview)
	assert.Len(t, report.Levels, len(domain.Provenances))
}

func TestNewSessionRejectsBadUser(t *testing.T) {
	f := newFixture(t)
	_, err := f.classifier(usecase.ClassifierOptions{}).NewSession(context.Background(), "bad|user")
	assert.ErrorIs(t, err, domain.ErrInvalidUserID)
}

type countingRetrier struct{ calls int }

func (r *countingRetrier) Retry(_ context.Context, op func() error) error {
	r.calls++
	return op()
}

func TestCollaboratorQueriesGoThroughRetrier(t *testing.T) {
	f := newFixture(t)
	f.prefetch("", nil, nil)
	f.noHistory()

	retrier := &countingRetrier{}
	s := session(t, f.classifier(usecase.ClassifierOptions{Retrier: retrier}))
	s.Classify(context.Background(), mark(t, "XPTO", "-1.00"))

	// display name, exclusions, patterns, history
	assert.Equal(t, 4, retrier.calls)
}

func TestNilCollaboratorsStillTerminate(t *testing.T) {
	c := usecase.NewCascadeClassifier(usecase.Collaborators{}, nil, usecase.ClassifierOptions{}, zerolog.Nop())

	out, report, err := c.ClassifyBatch(context.Background(), userID, []domain.MarkedTransaction{mark(t, "IFOOD", "-1.00")})
	require.NoError(t, err)
	assert.Equal(t, domain.ProvenanceUnclassified, out[0].Provenance)
	assert.Equal(t, 0, report.CollaboratorErrors)
}
