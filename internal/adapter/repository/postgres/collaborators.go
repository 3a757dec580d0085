package postgres

import (
	"github.com/iho/goextrato/internal/usecase"
)

// NewCollaborators builds every classifier collaborator over db.
func NewCollaborators(db Querier) usecase.Collaborators {
	return usecase.Collaborators{
		Installments: NewInstallmentContractRepository(db),
		Users:        NewUserRepository(db),
		Exclusions:   NewExclusionRuleRepository(db),
		Patterns:     NewLearnedPatternRepository(db),
		History:      NewHistoryRepository(db),
		Combinations: NewCategoryCombinationRepository(db),
	}
}
