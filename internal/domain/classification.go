package domain

// Provenance names the cascade level that produced a classification.
type Provenance string

const (
	ProvenanceInstallment    Provenance = "installment"
	ProvenanceCardPayment    Provenance = "card_payment"
	ProvenanceExclusion      Provenance = "exclusion"
	ProvenanceLearnedPattern Provenance = "learned_pattern"
	ProvenanceHistory        Provenance = "history"
	ProvenanceKeyword        Provenance = "keyword"
	ProvenanceUnclassified   Provenance = "unclassified"
)

// Provenances lists the cascade levels in evaluation order.
var Provenances = []Provenance{
	ProvenanceInstallment,
	ProvenanceCardPayment,
	ProvenanceExclusion,
	ProvenanceLearnedPattern,
	ProvenanceHistory,
	ProvenanceKeyword,
	ProvenanceUnclassified,
}

// Broad categories.
const (
	CategoryExpense  = "Despesa"
	CategoryIncome   = "Receita"
	CategoryTransfer = "Transferência"
	CategoryIgnored  = "Desconsiderado"
	CategoryNotFound = "NAO_ENCONTRADO"
)

// Groups produced by the fixed cascade levels.
const (
	GroupTransfer = "Transferência"
	GroupIgnored  = "Desconsiderado"

	SubgroupCardPayment  = "Pagamento de Fatura"
	SubgroupSelfTransfer = "Transferência entre Contas"
	SubgroupExclusion    = "Regra de Exclusão"

	SpendTypeTransfer = "Transferência"
	SpendTypeIgnored  = "Desconsiderado"
)

// CategoryTriple is a (group, subgroup, spend-type) combination.
type CategoryTriple struct {
	Group     string
	Subgroup  string
	SpendType string
}

// IsEmpty reports whether no field of the triple is set.
func (c CategoryTriple) IsEmpty() bool {
	return c.Group == "" && c.Subgroup == "" && c.SpendType == ""
}

// Classification is the result of one cascade level.
type Classification struct {
	Group           string
	Subgroup        string
	SpendType       string
	Category        string
	Provenance      Provenance
	ShowOnDashboard bool
	NeedsReview     bool
}

// Triple returns the (group, subgroup, spend-type) part of the classification.
func (c Classification) Triple() CategoryTriple {
	return CategoryTriple{Group: c.Group, Subgroup: c.Subgroup, SpendType: c.SpendType}
}

// Resolved reports whether a level other than the fallback produced the classification.
func (c Classification) Resolved() bool {
	return c.Provenance != "" && c.Provenance != ProvenanceUnclassified
}

// NewClassification builds a dashboard-visible classification from a triple,
// deriving the broad category from the transaction type.
func NewClassification(triple CategoryTriple, txType TransactionType, provenance Provenance, review bool) Classification {
	category := CategoryExpense
	if txType == TypeIncome {
		category = CategoryIncome
	}

	show := true
	if triple.Group == GroupTransfer {
		category = CategoryTransfer
		show = false
	}

	return Classification{
		Group:           triple.Group,
		Subgroup:        triple.Subgroup,
		SpendType:       triple.SpendType,
		Category:        category,
		Provenance:      provenance,
		ShowOnDashboard: show,
		NeedsReview:     review,
	}
}

// Unclassified is the explicit "not found" record of the last cascade level.
func Unclassified() Classification {
	return Classification{
		Category:        CategoryNotFound,
		Provenance:      ProvenanceUnclassified,
		ShowOnDashboard: true,
		NeedsReview:     true,
	}
}
