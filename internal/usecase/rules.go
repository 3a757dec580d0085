package usecase

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iho/goextrato/internal/domain"
)

//go:embed rules.yaml
var defaultRules []byte

// KeywordRule maps establishment phrases to a category triple.
type KeywordRule struct {
	Match     []string `yaml:"match"`
	Group     string   `yaml:"group"`
	Subgroup  string   `yaml:"subgroup"`
	SpendType string   `yaml:"spend_type"`
}

// Triple returns the category triple the rule implies.
func (r KeywordRule) Triple() domain.CategoryTriple {
	return domain.CategoryTriple{Group: r.Group, Subgroup: r.Subgroup, SpendType: r.SpendType}
}

// RuleSet holds the fixed vocabularies of the cascade. Phrases are stored
// normalized.
type RuleSet struct {
	CardPayment []string      `yaml:"card_payment"`
	Transfer    []string      `yaml:"transfer"`
	Jargon      []string      `yaml:"jargon"`
	Keywords    []KeywordRule `yaml:"keywords"`

	jargon map[string]struct{}
}

// DefaultRuleSet returns the built-in vocabularies.
func DefaultRuleSet() *RuleSet {
	rs, err := ParseRuleSet(strings.NewReader(string(defaultRules)))
	if err != nil {
		panic(fmt.Sprintf("embedded rules.yaml: %v", err))
	}
	return rs
}

// LoadRuleSet reads vocabularies from a YAML file.
func LoadRuleSet(path string) (*RuleSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules: %w", err)
	}
	defer f.Close()

	return ParseRuleSet(f)
}

// ParseRuleSet decodes and normalizes a YAML rule set.
func ParseRuleSet(r io.Reader) (*RuleSet, error) {
	var rs RuleSet
	if err := yaml.NewDecoder(r).Decode(&rs); err != nil {
		return nil, fmt.Errorf("decode rules: %w", err)
	}

	rs.CardPayment = normalizeAll(rs.CardPayment)
	rs.Transfer = normalizeAll(rs.Transfer)
	rs.Jargon = normalizeAll(rs.Jargon)

	for i := range rs.Keywords {
		k := &rs.Keywords[i]
		k.Match = normalizeAll(k.Match)
		if len(k.Match) == 0 {
			return nil, fmt.Errorf("keyword rule %d has no phrases", i+1)
		}
		if k.Triple().IsEmpty() {
			return nil, fmt.Errorf("keyword rule %d (%s) has no category", i+1, k.Match[0])
		}
	}

	if len(rs.CardPayment) == 0 && len(rs.Keywords) == 0 {
		return nil, errors.New("rule set is empty")
	}

	rs.jargon = make(map[string]struct{}, len(rs.Jargon))
	for _, j := range rs.Jargon {
		rs.jargon[j] = struct{}{}
	}

	return &rs, nil
}

// IsCardPayment reports whether a normalized establishment reads like a card
// bill payment.
func (rs *RuleSet) IsCardPayment(normalized string) bool {
	return containsAnyPhrase(normalized, rs.CardPayment)
}

// IsTransfer reports whether a normalized establishment uses transfer or cash
// vocabulary.
func (rs *RuleSet) IsTransfer(normalized string) bool {
	return containsAnyPhrase(normalized, rs.Transfer)
}

// StripJargon removes transfer jargon and numeric tokens.
func (rs *RuleSet) StripJargon(normalized string) []string {
	var out []string
	for _, tok := range domain.Tokens(normalized) {
		if _, ok := rs.jargon[tok]; ok {
			continue
		}
		if isNumeric(tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// MatchKeyword returns the first rule with a phrase in the normalized
// establishment.
func (rs *RuleSet) MatchKeyword(normalized string) (KeywordRule, bool) {
	for _, k := range rs.Keywords {
		if containsAnyPhrase(normalized, k.Match) {
			return k, true
		}
	}
	return KeywordRule{}, false
}

func containsAnyPhrase(normalized string, phrases []string) bool {
	for _, p := range phrases {
		if domain.ContainsPhrase(normalized, p) {
			return true
		}
	}
	return false
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := domain.NormalizeEstablishment(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func isNumeric(tok string) bool {
	for i := 0; i < len(tok); i++ {
		if tok[i] < '0' || tok[i] > '9' {
			return false
		}
	}
	return tok != ""
}
