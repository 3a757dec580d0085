package extractor

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/iho/goextrato/internal/domain"
)

// rowLog accumulates skipped rows for one parse and logs each one.
type rowLog struct {
	logger  zerolog.Logger
	skipped []domain.RowError
}

func newRowLog(logger zerolog.Logger, key Key) *rowLog {
	return &rowLog{logger: logger.With().Str("adapter", key.String()).Logger()}
}

func (l *rowLog) skip(line int, raw string, err error) {
	rowErr := domain.RowError{Line: line, Raw: raw, Reason: err.Error()}
	l.logger.Warn().Int("line", line).Str("raw", raw).Err(err).Msg("skipping row")
	l.skipped = append(l.skipped, rowErr)
}

// containsAll reports whether every needle occurs in the folded haystack.
func containsAll(folded string, needles ...string) bool {
	for _, n := range needles {
		if !strings.Contains(folded, n) {
			return false
		}
	}
	return true
}

// containsAny reports whether any needle occurs in the folded haystack.
func containsAny(folded string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(folded, n) {
			return true
		}
	}
	return false
}

// rowText joins the non-empty cells of a row.
func rowText(row []string) string {
	parts := make([]string, 0, len(row))
	for _, c := range row {
		if c = strings.TrimSpace(c); c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

// collapseSpaces squeezes runs of whitespace.
func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

var errNoAmount = errors.New("no amount found")
