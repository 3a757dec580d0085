// Package extractor turns bank and card source files into raw transactions.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/goextrato/internal/domain"
)

// Issuer codes.
const (
	IssuerNubank  = "nubank"
	IssuerItau    = "itau"
	IssuerBB      = "bb"
	IssuerInter   = "inter"
	IssuerOFX     = "ofx"
	IssuerGeneric = "generic"
	// IssuerAny marks adapters that serve several issuers.
	IssuerAny = "*"
)

// Formats.
const (
	FormatCSV         = "csv"
	FormatSpreadsheet = "spreadsheet"
	FormatBankExport  = "bank-export"
	FormatPDF         = "pdf"
	FormatOCR         = "ocr"
	FormatText        = "text"
)

// Key identifies an adapter. An empty DocumentType means the adapter decides
// per file.
type Key struct {
	Issuer       string              `json:"issuer"`
	DocumentType domain.DocumentType `json:"document_type"`
	Format       string              `json:"format"`
}

func (k Key) String() string {
	dt := string(k.DocumentType)
	if dt == "" {
		dt = "*"
	}
	return k.Issuer + "/" + dt + "/" + k.Format
}

// Result is the output of one adapter.
type Result struct {
	Key          Key
	Transactions []domain.RawTransaction
	Balance      domain.BalanceValidation
	Skipped      []domain.RowError
}

// Adapter parses one issuer/document/format combination.
type Adapter interface {
	Key() Key
	Detect(doc *Document) bool
	Parse(ctx context.Context, doc *Document) (*Result, error)
}

// Expectation narrows what the caller is uploading. Empty fields accept anything.
type Expectation struct {
	Issuer       string
	DocumentType domain.DocumentType
}

// Registry tries adapters in priority order; the first that detects the file wins.
type Registry struct {
	adapters []Adapter
	fallback Adapter
	logger   zerolog.Logger
	now      func() time.Time
}

// NewRegistry creates an empty registry.
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		logger: logger.With().Str("component", "extractor").Logger(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Options configure the default registry.
type Options struct {
	// OCR enables the OCR adapter for scanned PDFs. Nil disables it.
	OCR OCREngine
}

// NewDefaultRegistry registers every built-in adapter in priority order.
func NewDefaultRegistry(logger zerolog.Logger, opts Options) *Registry {
	r := NewRegistry(logger)
	r.Register(NewNubankInvoiceAdapter(logger))
	r.Register(NewNubankStatementAdapter(logger))
	r.Register(NewItauStatementAdapter(logger))
	r.Register(NewItauInvoiceAdapter(logger))
	r.Register(NewBBStatementAdapter(logger))
	r.Register(NewOFXAdapter(logger))
	r.Register(NewInterInvoiceAdapter(logger))
	if opts.OCR != nil {
		r.Register(NewOCRAdapter(opts.OCR, logger))
	}
	r.SetFallback(NewGenericAdapter(logger))
	return r
}

// Register appends an adapter with the lowest priority so far.
func (r *Registry) Register(a Adapter) {
	r.adapters = append(r.adapters, a)
}

// SetFallback sets the adapter tried after every registered one.
func (r *Registry) SetFallback(a Adapter) {
	r.fallback = a
}

// SetClock overrides the ingestion clock.
func (r *Registry) SetClock(now func() time.Time) {
	r.now = now
}

// Keys lists registered adapters in priority order.
func (r *Registry) Keys() []Key {
	keys := make([]Key, 0, len(r.adapters)+1)
	for _, a := range r.adapters {
		keys = append(keys, a.Key())
	}
	if r.fallback != nil {
		keys = append(keys, r.fallback.Key())
	}
	return keys
}

// Extract detects and parses doc. Password problems and unrecognized formats are
// fatal; malformed rows end up in Result.Skipped.
func (r *Registry) Extract(ctx context.Context, doc *Document, exp Expectation) (*Result, error) {
	if err := doc.Unlock(); err != nil {
		return nil, err
	}

	var wrongType *Key
	candidates := r.adapters
	if r.fallback != nil {
		candidates = append(append([]Adapter(nil), r.adapters...), r.fallback)
	}

	for _, a := range candidates {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		key := a.Key()
		if !issuerMatches(key.Issuer, exp.Issuer) {
			continue
		}
		if !a.Detect(doc) {
			continue
		}

		if exp.DocumentType != "" && key.DocumentType != "" && key.DocumentType != exp.DocumentType {
			if wrongType == nil {
				k := key
				wrongType = &k
			}
			continue
		}

		res, err := a.Parse(ctx, doc)
		if err != nil {
			if errors.Is(err, domain.ErrFormatNotRecognized) {
				r.logger.Debug().Str("adapter", key.String()).Err(err).Msg("adapter declined file")
				continue
			}
			return nil, fmt.Errorf("%s: %w", key, err)
		}

		if exp.DocumentType != "" && res.Key.DocumentType != exp.DocumentType {
			if wrongType == nil {
				k := res.Key
				wrongType = &k
			}
			continue
		}

		r.finish(doc, res)
		return res, nil
	}

	if wrongType != nil {
		return nil, fmt.Errorf("%w: file is a %s %s, expected %s",
			domain.ErrWrongDocumentType, wrongType.Issuer, wrongType.DocumentType, exp.DocumentType)
	}

	return nil, fmt.Errorf("%w: %s", domain.ErrFormatNotRecognized, doc.Name)
}

func issuerMatches(adapterIssuer, expected string) bool {
	return expected == "" || adapterIssuer == expected || adapterIssuer == IssuerAny || adapterIssuer == IssuerGeneric
}

// finish stamps provenance fields and drops rows that break invariants.
func (r *Registry) finish(doc *Document, res *Result) {
	now := r.now()
	kept := res.Transactions[:0]

	for i := range res.Transactions {
		tx := res.Transactions[i]
		tx.IngestedAt = now
		tx.SourceFile = doc.Name
		if tx.Issuer == "" {
			tx.Issuer = res.Key.Issuer
		}
		if tx.DocumentType == "" {
			tx.DocumentType = res.Key.DocumentType
		}

		if tx.Amount.IsZero() {
			continue
		}

		kept = append(kept, tx)
	}
	res.Transactions = kept

	r.logger.Info().
		Str("adapter", res.Key.String()).
		Str("file", doc.Name).
		Int("transactions", len(res.Transactions)).
		Int("skipped", len(res.Skipped)).
		Str("balance", string(res.Balance.Status)).
		Msg("file extracted")

	if err := res.Balance.Err(); err != nil {
		r.logger.Warn().Str("adapter", res.Key.String()).Err(err).Msg("balance check failed")
	}
}
