package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/goextrato/internal/domain"
)

// Collaborators are the read-only data sources of the cascade. A nil
// collaborator gives no opinion at its level.
type Collaborators struct {
	Installments InstallmentContractRepository
	Users        UserDirectory
	Exclusions   ExclusionRuleRepository
	Patterns     LearnedPatternRepository
	History      HistoryRepository
	Combinations CategoryCombinationRepository
}

// ClassifierOptions tune the cascade. Zero values take the defaults.
type ClassifierOptions struct {
	HistoryMonths       int
	NameMatchThreshold  float64
	CollaboratorTimeout time.Duration
	Retrier             Retrier
	Observer            Observer
	Now                 func() time.Time
}

// CascadeClassifier resolves marked transactions to categories through the
// ordered levels installment, card payment, exclusion, learned pattern,
// history, keyword and unclassified.
type CascadeClassifier struct {
	collab   Collaborators
	rules    *RuleSet
	opts     ClassifierOptions
	observer Observer
	logger   zerolog.Logger
}

// NewCascadeClassifier creates a new CascadeClassifier.
func NewCascadeClassifier(collab Collaborators, rules *RuleSet, opts ClassifierOptions, logger zerolog.Logger) *CascadeClassifier {
	if rules == nil {
		rules = DefaultRuleSet()
	}
	if opts.HistoryMonths <= 0 {
		opts.HistoryMonths = DefaultHistoryMonths
	}
	if opts.NameMatchThreshold <= 0 {
		opts.NameMatchThreshold = DefaultNameMatchThreshold
	}
	if opts.CollaboratorTimeout <= 0 {
		opts.CollaboratorTimeout = DefaultCollaboratorTimeout
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}

	observer := opts.Observer
	if observer == nil {
		observer = NopObserver{}
	}

	return &CascadeClassifier{
		collab:   collab,
		rules:    rules,
		opts:     opts,
		observer: observer,
		logger:   logger.With().Str("component", "classifier").Logger(),
	}
}

// Session is one classification run for one user. It holds the prefetched
// per-user data and the run's counters; it must not be shared between runs or
// used concurrently.
type Session struct {
	c          *CascadeClassifier
	userID     string
	holder     []string
	exclusions []string
	patterns   *domain.LearnedPatternSet
	since      time.Time
	tally      *tally
	logger     zerolog.Logger
}

// NewSession validates the user and prefetches the holder name, the active
// exclusion rules and the learned patterns. Prefetch failures are logged and
// leave the affected level without an opinion.
func (c *CascadeClassifier) NewSession(ctx context.Context, userID string) (*Session, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	s := &Session{
		c:      c,
		userID: userID,
		since:  c.opts.Now().AddDate(0, -c.opts.HistoryMonths, 0),
		tally:  newTally(),
		logger: c.logger.With().Str("user_id", userID).Logger(),
	}

	if c.collab.Users != nil {
		var name string
		err := c.query(ctx, func(ctx context.Context) (err error) {
			name, err = c.collab.Users.DisplayName(ctx, userID)
			return err
		})
		switch {
		case err == nil:
			s.holder = nameTokens(domain.NormalizeEstablishment(name))
		case !errors.Is(err, domain.ErrNotFound):
			s.collaboratorFailed(domain.ProvenanceExclusion, "display name", err)
		}
	}

	if c.collab.Exclusions != nil {
		var rules []domain.ExclusionRule
		err := c.query(ctx, func(ctx context.Context) (err error) {
			rules, err = c.collab.Exclusions.ListActive(ctx, userID)
			return err
		})
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.collaboratorFailed(domain.ProvenanceExclusion, "exclusion rules", err)
		}
		for _, r := range rules {
			if r.Action != domain.ExclusionIgnore {
				continue
			}
			if p := domain.NormalizeEstablishment(r.Pattern); p != "" {
				s.exclusions = append(s.exclusions, p)
			}
		}
	}

	if c.collab.Patterns != nil {
		var patterns []domain.LearnedPattern
		err := c.query(ctx, func(ctx context.Context) (err error) {
			patterns, err = c.collab.Patterns.ListActive(ctx, userID)
			return err
		})
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			s.collaboratorFailed(domain.ProvenanceLearnedPattern, "learned patterns", err)
		}
		s.patterns = domain.NewLearnedPatternSet(patterns)
	}

	s.logger.Debug().
		Bool("holder_known", len(s.holder) > 0).
		Int("exclusions", len(s.exclusions)).
		Int("learned_patterns", s.patterns.Len()).
		Msg("classification session ready")

	return s, nil
}

// ClassifyBatch classifies txs in one session and returns the results in
// input order with the run report.
func (c *CascadeClassifier) ClassifyBatch(ctx context.Context, userID string, txs []domain.MarkedTransaction) ([]domain.ClassifiedTransaction, CascadeReport, error) {
	s, err := c.NewSession(ctx, userID)
	if err != nil {
		return nil, CascadeReport{}, err
	}

	out := make([]domain.ClassifiedTransaction, 0, len(txs))
	for i := range txs {
		out = append(out, s.Classify(ctx, txs[i]))
	}

	return out, s.Report(), nil
}

// Report returns the counters of the session so far.
func (s *Session) Report() CascadeReport {
	return s.tally.report()
}

// Classify runs the cascade for one transaction. It always returns a fully
// populated result; the last level cannot fail.
func (s *Session) Classify(ctx context.Context, tx domain.MarkedTransaction) domain.ClassifiedTransaction {
	normalized := domain.NormalizeEstablishment(tx.BaseEstablishment)
	if normalized == "" {
		normalized = domain.NormalizeEstablishment(tx.Establishment)
	}

	levels := []func(context.Context, *domain.MarkedTransaction, string) (domain.Classification, bool){
		s.installment,
		s.cardPayment,
		s.exclusion,
		s.learnedPattern,
		s.history,
		s.keyword,
	}

	result := domain.Unclassified()
	for _, level := range levels {
		if c, ok := level(ctx, &tx, normalized); ok {
			result = c
			break
		}
	}

	s.tally.record(result)
	s.c.observer.ObserveClassification(result.Provenance, result.NeedsReview)

	s.logger.Debug().
		Str("transaction_id", tx.TransactionID).
		Str("establishment", normalized).
		Str("level", string(result.Provenance)).
		Bool("needs_review", result.NeedsReview).
		Msg("transaction classified")

	return domain.ClassifiedTransaction{MarkedTransaction: tx, Classification: result}
}

func (s *Session) installment(ctx context.Context, tx *domain.MarkedTransaction, _ string) (domain.Classification, bool) {
	if !tx.IsInstallment() || s.c.collab.Installments == nil {
		return domain.Classification{}, false
	}

	var contract *domain.InstallmentContract
	err := s.c.query(ctx, func(ctx context.Context) (err error) {
		contract, err = s.c.collab.Installments.GetContract(ctx, tx.InstallmentGroupID, s.userID)
		return err
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.collaboratorFailed(domain.ProvenanceInstallment, "installment contract", err)
		}
		return domain.Classification{}, false
	}
	if contract == nil || contract.CategoryTriple.IsEmpty() {
		return domain.Classification{}, false
	}

	return domain.NewClassification(contract.CategoryTriple, tx.Type, domain.ProvenanceInstallment, false), true
}

func (s *Session) cardPayment(_ context.Context, tx *domain.MarkedTransaction, normalized string) (domain.Classification, bool) {
	if !s.c.rules.IsCardPayment(normalized) {
		return domain.Classification{}, false
	}

	triple := domain.CategoryTriple{
		Group:     domain.GroupTransfer,
		Subgroup:  domain.SubgroupCardPayment,
		SpendType: domain.SpendTypeTransfer,
	}
	return domain.NewClassification(triple, tx.Type, domain.ProvenanceCardPayment, false), true
}

func (s *Session) exclusion(_ context.Context, tx *domain.MarkedTransaction, normalized string) (domain.Classification, bool) {
	if len(s.holder) > 0 && s.c.rules.IsTransfer(normalized) {
		desc := s.c.rules.StripJargon(normalized)
		if IsSelfTransfer(s.holder, desc, s.c.opts.NameMatchThreshold) {
			triple := domain.CategoryTriple{
				Group:     domain.GroupTransfer,
				Subgroup:  domain.SubgroupSelfTransfer,
				SpendType: domain.SpendTypeTransfer,
			}
			return domain.NewClassification(triple, tx.Type, domain.ProvenanceExclusion, false), true
		}
	}

	for _, pattern := range s.exclusions {
		if strings.Contains(normalized, pattern) {
			return domain.Classification{
				Group:           domain.GroupIgnored,
				Subgroup:        domain.SubgroupExclusion,
				SpendType:       domain.SpendTypeIgnored,
				Category:        domain.CategoryIgnored,
				Provenance:      domain.ProvenanceExclusion,
				ShowOnDashboard: false,
			}, true
		}
	}

	return domain.Classification{}, false
}

func (s *Session) learnedPattern(_ context.Context, tx *domain.MarkedTransaction, normalized string) (domain.Classification, bool) {
	p, ok := s.patterns.Find(normalized, domain.BandFor(tx.Amount))
	if !ok || p.CategoryTriple.IsEmpty() {
		return domain.Classification{}, false
	}
	return domain.NewClassification(p.CategoryTriple, tx.Type, domain.ProvenanceLearnedPattern, false), true
}

func (s *Session) history(ctx context.Context, tx *domain.MarkedTransaction, normalized string) (domain.Classification, bool) {
	if s.c.collab.History == nil || normalized == "" {
		return domain.Classification{}, false
	}

	var majority *domain.HistoricalMajority
	err := s.c.query(ctx, func(ctx context.Context) (err error) {
		majority, err = s.c.collab.History.FindMajority(ctx, s.userID, normalized, s.since)
		return err
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.collaboratorFailed(domain.ProvenanceHistory, "history majority", err)
		}
		return domain.Classification{}, false
	}
	if majority == nil || majority.Occurrences < MinHistoryOccurrences || majority.CategoryTriple.IsEmpty() {
		return domain.Classification{}, false
	}

	return domain.NewClassification(majority.CategoryTriple, tx.Type, domain.ProvenanceHistory, true), true
}

// keyword accepts only the first matching rule; an invalid triple sends the
// transaction to the last level.
func (s *Session) keyword(ctx context.Context, tx *domain.MarkedTransaction, normalized string) (domain.Classification, bool) {
	rule, ok := s.c.rules.MatchKeyword(normalized)
	if !ok || s.c.collab.Combinations == nil {
		return domain.Classification{}, false
	}

	triple := rule.Triple()
	var valid bool
	err := s.c.query(ctx, func(ctx context.Context) (err error) {
		valid, err = s.c.collab.Combinations.IsValid(ctx, triple.Group, triple.Subgroup, triple.SpendType)
		return err
	})
	if err != nil {
		s.collaboratorFailed(domain.ProvenanceKeyword, "category combination", err)
		return domain.Classification{}, false
	}
	if !valid {
		s.logger.Debug().
			Str("establishment", normalized).
			Str("group", triple.Group).
			Str("subgroup", triple.Subgroup).
			Str("spend_type", triple.SpendType).
			Msg("keyword rule rejected: invalid category combination")
		return domain.Classification{}, false
	}

	return domain.NewClassification(triple, tx.Type, domain.ProvenanceKeyword, true), true
}

func (s *Session) collaboratorFailed(level domain.Provenance, what string, err error) {
	s.tally.collabFails++
	s.c.observer.ObserveCollaboratorError(level)
	s.logger.Warn().
		Str("level", string(level)).
		Str("collaborator", what).
		Err(fmt.Errorf("%w: %w", domain.ErrCollaboratorLookup, err)).
		Msg("collaborator lookup failed, level has no opinion")
}

// query runs one collaborator call under the per-call timeout, through the
// retrier when one is configured.
func (c *CascadeClassifier) query(ctx context.Context, call func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.opts.CollaboratorTimeout)
	defer cancel()

	if c.opts.Retrier == nil {
		return call(ctx)
	}
	return c.opts.Retrier.Retry(ctx, func() error { return call(ctx) })
}
