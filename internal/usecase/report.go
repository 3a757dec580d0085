package usecase

import (
	"math"

	"github.com/iho/goextrato/internal/domain"
)

// LevelCount is how many transactions one cascade level resolved.
type LevelCount struct {
	Level   domain.Provenance `json:"level"`
	Count   int               `json:"count"`
	Percent float64           `json:"percent"`
}

// CascadeReport summarizes one classification run.
type CascadeReport struct {
	Total              int          `json:"total"`
	Levels             []LevelCount `json:"levels"`
	NeedsReview        int          `json:"needs_review"`
	CollaboratorErrors int          `json:"collaborator_errors"`
}

// Count returns the number of transactions resolved by level.
func (r CascadeReport) Count(level domain.Provenance) int {
	for _, l := range r.Levels {
		if l.Level == level {
			return l.Count
		}
	}
	return 0
}

// Percent returns the share of transactions resolved by level, 0-100.
func (r CascadeReport) Percent(level domain.Provenance) float64 {
	for _, l := range r.Levels {
		if l.Level == level {
			return l.Percent
		}
	}
	return 0
}

// tally is the mutable counter behind a CascadeReport, owned by one Session.
type tally struct {
	total       int
	levels      map[domain.Provenance]int
	review      int
	collabFails int
}

func newTally() *tally {
	return &tally{levels: make(map[domain.Provenance]int, len(domain.Provenances))}
}

func (t *tally) record(c domain.Classification) {
	t.total++
	t.levels[c.Provenance]++
	if c.NeedsReview {
		t.review++
	}
}

func (t *tally) report() CascadeReport {
	r := CascadeReport{
		Total:              t.total,
		Levels:             make([]LevelCount, 0, len(domain.Provenances)),
		NeedsReview:        t.review,
		CollaboratorErrors: t.collabFails,
	}

	for _, p := range domain.Provenances {
		n := t.levels[p]
		pct := 0.0
		if t.total > 0 {
			pct = math.Round(float64(n)*10000/float64(t.total)) / 100
		}
		r.Levels = append(r.Levels, LevelCount{Level: p, Count: n, Percent: pct})
	}

	return r
}
