package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBusy            = errors.New("a request is already in progress, please wait")
	ErrEmptyMessage    = errors.New("message is empty")
	ErrInvalidFileType = errors.New("invalid file type, please upload a PDF file")
	ErrSessionNotFound = errors.New("session not found")
)

// ExtractionError reports a document the byte-range heuristic could not read.
type ExtractionError struct {
	Length int
	Min    int
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("document unreadable: extracted %d characters, need at least %d", e.Length, e.Min)
}

type CredentialMissingError struct {
	Reason string
}

func (e *CredentialMissingError) Error() string {
	if e.Reason == "" {
		return "credential missing"
	}
	return "credential missing: " + e.Reason
}

// TransportError is a network level failure: the endpoint was never reached
// or the connection broke before a response arrived.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return "transport error: " + e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProviderError means the endpoint answered, but not with a usable completion.
type ProviderError struct {
	StatusCode int
	Message    string
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

// CompletionError is returned by every completion client. Cause is one of
// CredentialMissingError, TransportError or ProviderError.
type CompletionError struct {
	Cause error
}

func (e *CompletionError) Error() string {
	return e.Cause.Error()
}

func (e *CompletionError) Unwrap() error { return e.Cause }
