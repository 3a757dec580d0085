package usecase

import "strings"

// nameStopwords are connectives ignored in holder names.
var nameStopwords = map[string]struct{}{
	"DE": {}, "DA": {}, "DO": {}, "DAS": {}, "DOS": {}, "E": {},
}

// nameTokens splits a normalized person name into significant tokens.
func nameTokens(normalized string) []string {
	var out []string
	for _, tok := range strings.Fields(normalized) {
		if _, ok := nameStopwords[tok]; ok || len(tok) < 2 {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// NameOverlap is the share of the holder's name tokens found among the
// description tokens, and the number of shared tokens. Bank exports truncate
// long names, so a description token of three or more letters matches a name
// token it prefixes.
func NameOverlap(name, description []string) (float64, int) {
	if len(name) == 0 || len(description) == 0 {
		return 0, 0
	}

	used := make([]bool, len(description))
	shared := 0
	for _, n := range name {
		for i, d := range description {
			if used[i] {
				continue
			}
			if d == n || (len(d) >= 3 && strings.HasPrefix(n, d)) {
				used[i] = true
				shared++
				break
			}
		}
	}

	return float64(shared) / float64(len(name)), shared
}

// IsSelfTransfer applies the holder-name test: overlap at or above threshold
// and, for names with more than one token, at least two shared tokens.
func IsSelfTransfer(name, description []string, threshold float64) bool {
	ratio, shared := NameOverlap(name, description)
	if shared == 0 || ratio < threshold {
		return false
	}
	return len(name) == 1 || shared >= 2
}
