package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/iho/goextrato/internal/adapter/http/dto"
	"github.com/iho/goextrato/internal/domain"
	"github.com/iho/goextrato/internal/usecase"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to an HTTP status and a stable error code.
func mapDomainError(err error) (int, string) {
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge, "file_too_large"
	case errors.Is(err, domain.ErrFormatNotRecognized):
		return http.StatusUnsupportedMediaType, "format_not_recognized"
	case errors.Is(err, domain.ErrWrongDocumentType):
		return http.StatusUnprocessableEntity, "wrong_document_type"
	case errors.Is(err, domain.ErrPasswordRequired):
		return http.StatusUnauthorized, "password_required"
	case errors.Is(err, domain.ErrWrongPassword):
		return http.StatusUnauthorized, "wrong_password"
	case errors.Is(err, usecase.ErrImportInProgress):
		return http.StatusConflict, "import_in_progress"
	case errors.Is(err, domain.ErrInvalidUserID),
		errors.Is(err, domain.ErrInvalidDocumentType),
		errors.Is(err, domain.ErrInvalidIssuer):
		return http.StatusBadRequest, "invalid_request"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

func writeDomainError(w http.ResponseWriter, err error) {
	status, code := mapDomainError(err)
	details := err.Error()
	if status == http.StatusInternalServerError {
		details = ""
	}
	writeError(w, status, code, details)
}
