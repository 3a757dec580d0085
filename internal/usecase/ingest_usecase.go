package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/goextrato/internal/domain"
	"github.com/iho/goextrato/internal/extractor"
	"github.com/iho/goextrato/internal/identity"
)

// ErrImportInProgress is returned when the same file is already being imported.
var ErrImportInProgress = errors.New("import of this file is already in progress")

// IngestInput is one uploaded file.
type IngestInput struct {
	UserID       string
	FileName     string
	Content      []byte
	Password     string
	Issuer       string
	DocumentType domain.DocumentType
}

// Validate checks the caller-supplied fields.
func (in IngestInput) Validate() error {
	if err := domain.ValidateUserID(in.UserID); err != nil {
		return err
	}
	if err := domain.ValidateIssuer(in.Issuer); err != nil {
		return err
	}
	if _, err := domain.ParseDocumentType(string(in.DocumentType)); err != nil {
		return err
	}
	if len(in.Content) == 0 {
		return fmt.Errorf("%w: empty file", domain.ErrFormatNotRecognized)
	}
	return nil
}

// Document wraps the upload for the extractor registry.
func (in IngestInput) Document() *extractor.Document {
	return extractor.NewDocument(in.FileName, in.Content, in.Password)
}

// Expectation is the caller-declared issuer and document type.
func (in IngestInput) Expectation() extractor.Expectation {
	return extractor.Expectation{Issuer: in.Issuer, DocumentType: in.DocumentType}
}

// IngestResult is the output of one pipeline run.
type IngestResult struct {
	RunID        string                         `json:"run_id"`
	Key          extractor.Key                  `json:"adapter"`
	Transactions []domain.ClassifiedTransaction `json:"transactions"`
	Balance      domain.BalanceValidation       `json:"balance"`
	Skipped      []domain.RowError              `json:"skipped"`
	Report       CascadeReport                  `json:"report"`
	Replayed     bool                           `json:"replayed,omitempty"`
}

// IngestUseCase runs extraction, marking and classification for one file.
type IngestUseCase struct {
	extractor   Extractor
	classifier  *CascadeClassifier
	idGen       IDGenerator
	idempotency IdempotencyStore
	ttl         time.Duration
	observer    Observer
	logger      zerolog.Logger
}

// NewIngestUseCase creates a new IngestUseCase. idempotency may be nil.
func NewIngestUseCase(
	ext Extractor,
	classifier *CascadeClassifier,
	idGen IDGenerator,
	idempotency IdempotencyStore,
	ttl time.Duration,
	observer Observer,
	logger zerolog.Logger,
) *IngestUseCase {
	if observer == nil {
		observer = NopObserver{}
	}
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	return &IngestUseCase{
		extractor:   ext,
		classifier:  classifier,
		idGen:       idGen,
		idempotency: idempotency,
		ttl:         ttl,
		observer:    observer,
		logger:      logger.With().Str("component", "ingest").Logger(),
	}
}

// Extract detects and parses the file without marking or classifying it.
func (uc *IngestUseCase) Extract(ctx context.Context, in IngestInput) (*extractor.Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := uc.extractor.Extract(ctx, in.Document(), in.Expectation())
	if err != nil {
		uc.observer.ObserveExtraction(extractor.Key{Issuer: in.Issuer, DocumentType: in.DocumentType}, outcomeOf(err), time.Since(start))
		return nil, err
	}

	uc.observer.ObserveExtraction(res.Key, OutcomeOK, time.Since(start))
	uc.observer.ObserveSkippedRows(StageExtract, len(res.Skipped))
	uc.observer.ObserveBalance(res.Balance.Status)

	return res, nil
}

// Ingest runs the whole pipeline. A file already imported by the same user
// within the idempotency TTL returns the stored result.
func (uc *IngestUseCase) Ingest(ctx context.Context, in IngestInput) (*IngestResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	key := IdempotencyKey(in.UserID, in.Content)
	if uc.idempotency != nil {
		exists, stored, err := uc.idempotency.CheckAndSet(ctx, key, nil, uc.ttl)
		if err != nil {
			return nil, fmt.Errorf("idempotency check: %w", err)
		}
		if exists {
			return uc.replay(stored)
		}
	}

	result, err := uc.run(ctx, in)
	if err != nil {
		if uc.idempotency != nil {
			if relErr := uc.idempotency.Release(ctx, key); relErr != nil {
				uc.logger.Warn().Err(relErr).Msg("failed to release idempotency key")
			}
		}
		return nil, err
	}

	if uc.idempotency != nil {
		payload, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("encode import result: %w", err)
		}
		if err := uc.idempotency.Update(ctx, key, payload, uc.ttl); err != nil {
			uc.logger.Warn().Err(err).Str("run_id", result.RunID).Msg("failed to store import result")
		}
	}

	return result, nil
}

func (uc *IngestUseCase) run(ctx context.Context, in IngestInput) (*IngestResult, error) {
	runID := uc.idGen.Generate()
	log := uc.logger.With().Str("run_id", runID).Str("user_id", in.UserID).Str("file", in.FileName).Logger()

	extracted, err := uc.Extract(ctx, in)
	if err != nil {
		log.Warn().Err(err).Msg("extraction failed")
		return nil, err
	}

	marked := identity.NewMarker(in.UserID, log).Mark(extracted.Transactions)
	uc.observer.ObserveSkippedRows(StageMark, len(marked.Skipped))

	classified, report, err := uc.classifier.ClassifyBatch(ctx, in.UserID, marked.Transactions)
	if err != nil {
		return nil, err
	}

	skipped := append(append([]domain.RowError(nil), extracted.Skipped...), marked.Skipped...)

	log.Info().
		Str("adapter", extracted.Key.String()).
		Int("transactions", len(classified)).
		Int("skipped", len(skipped)).
		Int("needs_review", report.NeedsReview).
		Int("collaborator_errors", report.CollaboratorErrors).
		Str("balance", string(extracted.Balance.Status)).
		Msg("file ingested")

	return &IngestResult{
		RunID:        runID,
		Key:          extracted.Key,
		Transactions: classified,
		Balance:      extracted.Balance,
		Skipped:      skipped,
		Report:       report,
	}, nil
}

func (uc *IngestUseCase) replay(stored []byte) (*IngestResult, error) {
	if string(stored) == idempotencyPending {
		return nil, ErrImportInProgress
	}

	var result IngestResult
	if err := json.Unmarshal(stored, &result); err != nil {
		return nil, fmt.Errorf("decode stored import result: %w", err)
	}
	result.Replayed = true
	return &result, nil
}

// IdempotencyKey identifies an upload by user and file content.
func IdempotencyKey(userID string, content []byte) string {
	sum := sha256.Sum256(content)
	return "import:" + userID + ":" + hex.EncodeToString(sum[:])
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, domain.ErrFormatNotRecognized):
		return OutcomeNotRecognized
	case errors.Is(err, domain.ErrWrongDocumentType):
		return OutcomeWrongType
	case errors.Is(err, domain.ErrPasswordRequired):
		return OutcomePasswordNeeded
	case errors.Is(err, domain.ErrWrongPassword):
		return OutcomeWrongPassword
	default:
		return OutcomeError
	}
}
