package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/iho/goextrato/internal/adapter/http/dto"
	"github.com/iho/goextrato/internal/domain"
	"github.com/iho/goextrato/internal/extractor"
	"github.com/iho/goextrato/internal/usecase"
)

// ImportService runs the ingestion pipeline.
type ImportService interface {
	Ingest(ctx context.Context, in usecase.IngestInput) (*usecase.IngestResult, error)
	Extract(ctx context.Context, in usecase.IngestInput) (*extractor.Result, error)
}

// ImportHandler handles file uploads.
type ImportHandler struct {
	service        ImportService
	maxUploadBytes int64
	logger         zerolog.Logger
}

// NewImportHandler creates a new ImportHandler.
func NewImportHandler(service ImportService, maxUploadBytes int64, logger zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With().Str("component", "import_handler").Logger(),
	}
}

// Import handles POST /api/v1/imports.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	in, err := h.readInput(w, r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	res, err := h.service.Ingest(r.Context(), in)
	if err != nil {
		h.logFailure(r, in, err)
		writeDomainError(w, err)
		return
	}

	status := http.StatusCreated
	if res.Replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, dto.ImportFromResult(res))
}

// Extract handles POST /api/v1/imports/extract.
func (h *ImportHandler) Extract(w http.ResponseWriter, r *http.Request) {
	in, err := h.readInput(w, r)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	res, err := h.service.Extract(r.Context(), in)
	if err != nil {
		h.logFailure(r, in, err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ExtractFromResult(res))
}

// readInput reads the multipart form: file, user_id and the optional
// password, issuer and document_type fields.
func (h *ImportHandler) readInput(w http.ResponseWriter, r *http.Request) (usecase.IngestInput, error) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return usecase.IngestInput{}, err
		}
		return usecase.IngestInput{}, fmt.Errorf("%w: expected multipart form: %v", domain.ErrFormatNotRecognized, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return usecase.IngestInput{}, fmt.Errorf("%w: missing file field", domain.ErrFormatNotRecognized)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return usecase.IngestInput{}, fmt.Errorf("read upload: %w", err)
	}

	return usecase.IngestInput{
		UserID:       r.FormValue("user_id"),
		FileName:     header.Filename,
		Content:      content,
		Password:     r.FormValue("password"),
		Issuer:       r.FormValue("issuer"),
		DocumentType: domain.DocumentType(r.FormValue("document_type")),
	}, nil
}

func (h *ImportHandler) logFailure(r *http.Request, in usecase.IngestInput, err error) {
	status, code := mapDomainError(err)
	event := h.logger.Info()
	if status == http.StatusInternalServerError {
		event = h.logger.Error()
	}
	event.Err(err).
		Str("path", r.URL.Path).
		Str("user_id", in.UserID).
		Str("file", in.FileName).
		Str("code", code).
		Msg("import rejected")
}
