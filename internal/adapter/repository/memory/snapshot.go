// Package memory holds in-process collaborator repositories loaded from a
// YAML snapshot. The CLI uses them to classify files offline.
package memory

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iho/goextrato/internal/domain"
)

// Snapshot is the YAML document layout.
type Snapshot struct {
	Users        map[string]string           `yaml:"users"`
	Installments []InstallmentRecord         `yaml:"installments"`
	Exclusions   map[string][]ExclusionEntry `yaml:"exclusions"`
	Patterns     map[string][]PatternEntry   `yaml:"learned_patterns"`
	History      map[string][]HistoryEntry   `yaml:"history"`
	Combinations []Triple                    `yaml:"combinations"`
}

// Triple is a (group, subgroup, spend-type) combination.
type Triple struct {
	Group     string `yaml:"group"`
	Subgroup  string `yaml:"subgroup"`
	SpendType string `yaml:"spend_type"`
}

func (t Triple) domain() domain.CategoryTriple {
	return domain.CategoryTriple{Group: t.Group, Subgroup: t.Subgroup, SpendType: t.SpendType}
}

// InstallmentRecord is a stored installment contract.
type InstallmentRecord struct {
	GroupID string `yaml:"group_id"`
	UserID  string `yaml:"user_id"`
	Triple  `yaml:",inline"`
}

// ExclusionEntry is one exclusion rule.
type ExclusionEntry struct {
	Pattern string `yaml:"pattern"`
	Action  string `yaml:"action"`
}

// PatternEntry is one learned pattern.
type PatternEntry struct {
	Establishment string `yaml:"establishment"`
	ValueBand     string `yaml:"value_band"`
	Confidence    string `yaml:"confidence"`
	Observations  int    `yaml:"observations"`
	Inactive      bool   `yaml:"inactive"`
	Triple        `yaml:",inline"`
}

// HistoryEntry is one previously classified transaction.
type HistoryEntry struct {
	Establishment string `yaml:"establishment"`
	Date          string `yaml:"date"`
	Triple        `yaml:",inline"`
}

// Store serves every collaborator interface from a Snapshot.
type Store struct {
	snap         Snapshot
	installments map[string]domain.CategoryTriple
	combinations map[domain.CategoryTriple]bool
	history      map[string][]historyRow
}

type historyRow struct {
	establishment string
	date          time.Time
	triple        domain.CategoryTriple
}

// LoadFile reads a snapshot from path.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Load decodes a snapshot and indexes it.
func Load(r io.Reader) (*Store, error) {
	var snap Snapshot
	if err := yaml.NewDecoder(r).Decode(&snap); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}

	return NewStore(snap)
}

// NewStore indexes a snapshot.
func NewStore(snap Snapshot) (*Store, error) {
	s := &Store{
		snap:         snap,
		installments: make(map[string]domain.CategoryTriple),
		combinations: make(map[domain.CategoryTriple]bool),
		history:      make(map[string][]historyRow),
	}

	for _, rec := range snap.Installments {
		s.installments[rec.UserID+"|"+rec.GroupID] = rec.Triple.domain()
	}
	for _, t := range snap.Combinations {
		s.combinations[t.domain()] = true
	}
	for user, entries := range snap.History {
		for i, e := range entries {
			date, err := time.Parse("2006-01-02", e.Date)
			if err != nil {
				return nil, fmt.Errorf("history[%s][%d]: %w", user, i, err)
			}
			s.history[user] = append(s.history[user], historyRow{
				establishment: domain.NormalizeEstablishment(e.Establishment),
				date:          date,
				triple:        e.Triple.domain(),
			})
		}
	}

	return s, nil
}

// GetContract implements usecase.InstallmentContractRepository.
func (s *Store) GetContract(_ context.Context, installmentGroupID, userID string) (*domain.InstallmentContract, error) {
	triple, ok := s.installments[userID+"|"+installmentGroupID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &domain.InstallmentContract{
		InstallmentGroupID: installmentGroupID,
		UserID:             userID,
		CategoryTriple:     triple,
	}, nil
}

// DisplayName implements usecase.UserDirectory.
func (s *Store) DisplayName(_ context.Context, userID string) (string, error) {
	name, ok := s.snap.Users[userID]
	if !ok {
		return "", domain.ErrNotFound
	}
	return name, nil
}

// IsValid implements usecase.CategoryCombinationRepository.
func (s *Store) IsValid(_ context.Context, group, subgroup, spendType string) (bool, error) {
	return s.combinations[domain.CategoryTriple{Group: group, Subgroup: subgroup, SpendType: spendType}], nil
}

// FindMajority implements usecase.HistoryRepository.
func (s *Store) FindMajority(_ context.Context, userID, normalizedEstablishment string, since time.Time) (*domain.HistoricalMajority, error) {
	type tally struct {
		count int
		last  time.Time
	}
	counts := make(map[domain.CategoryTriple]*tally)

	for _, row := range s.history[userID] {
		if row.date.Before(since) || row.triple.Group == "" {
			continue
		}
		if !strings.Contains(row.establishment, normalizedEstablishment) {
			continue
		}
		t, ok := counts[row.triple]
		if !ok {
			t = &tally{}
			counts[row.triple] = t
		}
		t.count++
		if row.date.After(t.last) {
			t.last = row.date
		}
	}

	if len(counts) == 0 {
		return nil, domain.ErrNotFound
	}

	triples := make([]domain.CategoryTriple, 0, len(counts))
	for triple := range counts {
		triples = append(triples, triple)
	}
	sort.Slice(triples, func(i, j int) bool {
		a, b := counts[triples[i]], counts[triples[j]]
		if a.count != b.count {
			return a.count > b.count
		}
		return a.last.After(b.last)
	})

	best := triples[0]
	return &domain.HistoricalMajority{Occurrences: counts[best].count, CategoryTriple: best}, nil
}

// Exclusions adapts the store to usecase.ExclusionRuleRepository.
func (s *Store) Exclusions() ExclusionRules { return ExclusionRules{s} }

// Patterns adapts the store to usecase.LearnedPatternRepository.
func (s *Store) Patterns() LearnedPatterns { return LearnedPatterns{s} }

// ExclusionRules lists exclusion rules from a Store.
type ExclusionRules struct{ s *Store }

// ListActive implements usecase.ExclusionRuleRepository.
func (r ExclusionRules) ListActive(_ context.Context, userID string) ([]domain.ExclusionRule, error) {
	entries := r.s.snap.Exclusions[userID]
	rules := make([]domain.ExclusionRule, 0, len(entries))
	for _, e := range entries {
		action := domain.ExclusionAction(e.Action)
		if action == "" {
			action = domain.ExclusionIgnore
		}
		rules = append(rules, domain.ExclusionRule{Pattern: e.Pattern, Action: action})
	}
	return rules, nil
}

// LearnedPatterns lists learned patterns from a Store.
type LearnedPatterns struct{ s *Store }

// ListActive implements usecase.LearnedPatternRepository.
func (r LearnedPatterns) ListActive(_ context.Context, userID string) ([]domain.LearnedPattern, error) {
	entries := r.s.snap.Patterns[userID]
	patterns := make([]domain.LearnedPattern, 0, len(entries))
	for _, e := range entries {
		if e.Inactive {
			continue
		}
		patterns = append(patterns, domain.LearnedPattern{
			Establishment:  e.Establishment,
			ValueBand:      domain.ValueBand(e.ValueBand),
			Confidence:     e.Confidence,
			Observations:   e.Observations,
			Active:         true,
			CategoryTriple: e.Triple.domain(),
		})
	}
	return patterns, nil
}
