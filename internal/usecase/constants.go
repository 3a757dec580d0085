package usecase

import "time"

const (
	// DefaultHistoryMonths is how far back the history level looks.
	DefaultHistoryMonths = 12

	// MinHistoryOccurrences is the vote count the history level needs.
	MinHistoryOccurrences = 2

	// DefaultNameMatchThreshold is the token overlap that makes a transfer a
	// self-transfer.
	DefaultNameMatchThreshold = 0.6

	// DefaultCollaboratorTimeout bounds a single collaborator query.
	DefaultCollaboratorTimeout = 5 * time.Second

	// IdempotencyKeyTTL is how long import results are replayed.
	IdempotencyKeyTTL = 24 * time.Hour

	// idempotencyPending marks an import that is still running.
	idempotencyPending = "processing"
)

// Extraction outcomes reported to the Observer.
const (
	OutcomeOK             = "ok"
	OutcomeNotRecognized  = "not_recognized"
	OutcomeWrongType      = "wrong_document_type"
	OutcomePasswordNeeded = "password_required"
	OutcomeWrongPassword  = "wrong_password"
	OutcomeError          = "error"
)

// Stages reported with skipped rows.
const (
	StageExtract = "extract"
	StageMark    = "mark"
)
