package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// InstallmentContract is the classification already assigned to an installment group.
type InstallmentContract struct {
	InstallmentGroupID string
	UserID             string
	CategoryTriple
}

// ExclusionAction is what an exclusion rule does with a matching transaction.
type ExclusionAction string

const (
	ExclusionIgnore ExclusionAction = "ignore"
)

// ExclusionRule is a per-user establishment pattern.
type ExclusionRule struct {
	Pattern string
	Action  ExclusionAction
}

// Confidence levels of a learned pattern.
const (
	ConfidenceHigh   = "high"
	ConfidenceMedium = "medium"
	ConfidenceLow    = "low"
)

// LearnedPattern maps a normalized establishment (optionally within a value band)
// to a classification learned from the user's past corrections.
type LearnedPattern struct {
	Establishment string
	ValueBand     ValueBand
	Confidence    string
	Observations  int
	Active        bool
	CategoryTriple
}

// Usable reports whether the cascade may accept the pattern.
func (p LearnedPattern) Usable() bool {
	return p.Active && p.Confidence == ConfidenceHigh
}

// HistoricalMajority is the most frequent classification in the user's history.
type HistoricalMajority struct {
	Occurrences int
	CategoryTriple
}

// ValueBand buckets absolute amounts for learned-pattern lookups.
type ValueBand string

const (
	BandNone      ValueBand = ""
	BandUpTo50    ValueBand = "0-50"
	BandUpTo200   ValueBand = "50-200"
	BandUpTo1000  ValueBand = "200-1000"
	BandAbove1000 ValueBand = "1000+"
)

var (
	fifty       = decimal.NewFromInt(50)
	twoHundred  = decimal.NewFromInt(200)
	oneThousand = decimal.NewFromInt(1000)
)

// BandFor returns the value band of an amount; the sign is ignored.
func BandFor(amount decimal.Decimal) ValueBand {
	abs := amount.Abs()
	switch {
	case abs.LessThanOrEqual(fifty):
		return BandUpTo50
	case abs.LessThanOrEqual(twoHundred):
		return BandUpTo200
	case abs.LessThanOrEqual(oneThousand):
		return BandUpTo1000
	default:
		return BandAbove1000
	}
}

// LearnedPatternSet is an in-memory snapshot of a user's learned patterns.
type LearnedPatternSet struct {
	banded   map[string]LearnedPattern
	unbanded map[string]LearnedPattern
	prefixes []LearnedPattern
}

// NewLearnedPatternSet indexes usable patterns. Unusable entries are dropped.
func NewLearnedPatternSet(patterns []LearnedPattern) *LearnedPatternSet {
	set := &LearnedPatternSet{
		banded:   make(map[string]LearnedPattern),
		unbanded: make(map[string]LearnedPattern),
	}

	for _, p := range patterns {
		if !p.Usable() {
			continue
		}

		p.Establishment = NormalizeEstablishment(p.Establishment)
		if p.Establishment == "" {
			continue
		}

		if p.ValueBand == BandNone {
			set.unbanded[p.Establishment] = p
			set.prefixes = append(set.prefixes, p)
		} else {
			set.banded[bandKey(p.Establishment, p.ValueBand)] = p
		}
	}

	return set
}

// Len returns the number of indexed patterns.
func (s *LearnedPatternSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.banded) + len(s.unbanded)
}

// Find looks up a normalized establishment as exact value-banded match,
// then exact unbanded match, then the longest unbanded prefix match.
func (s *LearnedPatternSet) Find(establishment string, band ValueBand) (LearnedPattern, bool) {
	if s == nil || establishment == "" {
		return LearnedPattern{}, false
	}

	if p, ok := s.banded[bandKey(establishment, band)]; ok {
		return p, true
	}

	if p, ok := s.unbanded[establishment]; ok {
		return p, true
	}

	var best LearnedPattern
	found := false
	for _, p := range s.prefixes {
		if !strings.HasPrefix(establishment, p.Establishment+" ") {
			continue
		}
		if !found || len(p.Establishment) > len(best.Establishment) {
			best = p
			found = true
		}
	}

	return best, found
}

func bandKey(establishment string, band ValueBand) string {
	return establishment + "|" + string(band)
}
