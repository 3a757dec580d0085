package domain

import "errors"

var (
	// File errors
	ErrFormatNotRecognized = errors.New("file format not recognized")
	ErrWrongDocumentType   = errors.New("recognized issuer, wrong document type")
	ErrPasswordRequired    = errors.New("file is password protected")
	ErrWrongPassword       = errors.New("wrong password for protected file")

	// Row errors
	ErrRowParse    = errors.New("row could not be parsed")
	ErrZeroAmount  = errors.New("amount must not be zero")
	ErrInvalidDate = errors.New("transaction date is missing or invalid")

	// Classification errors
	ErrCollaboratorLookup = errors.New("collaborator lookup failed")
	ErrNotFound           = errors.New("not found")

	// Balance errors
	ErrBalanceMismatch = errors.New("extracted transactions do not reconcile with declared balances")
)
