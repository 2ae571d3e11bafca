package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind names one failure class of the prediction workflow.
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindAuthentication ErrorKind = "authentication"
	KindTransport      ErrorKind = "transport"
	KindProtocol       ErrorKind = "protocol"
	KindPersistence    ErrorKind = "persistence"
	KindNotFound       ErrorKind = "not_found"
	KindInternal       ErrorKind = "internal"
)

// ValidationError lists form fields that were empty (MissingFields) or not
// acceptable integers (InvalidFields).
type ValidationError struct {
	MissingFields []string
	InvalidFields []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.MissingFields) > 0 {
		parts = append(parts, "missing fields: "+strings.Join(e.MissingFields, ", "))
	}
	if len(e.InvalidFields) > 0 {
		parts = append(parts, "invalid fields: "+strings.Join(e.InvalidFields, ", "))
	}
	if len(parts) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

type AuthenticationError struct {
	Reason string
}

func (e *AuthenticationError) Error() string {
	if e.Reason == "" {
		return "authentication required"
	}
	return "authentication required: " + e.Reason
}

// TransportError means the predictor could not be reached, timed out, or
// returned a payload that could not be used.
type TransportError struct {
	Endpoint string
	Timeout  bool
	Err      error
}

func (e *TransportError) Error() string {
	if e.Timeout {
		return fmt.Sprintf("predictor %s timed out: %v", e.Endpoint, e.Err)
	}
	return fmt.Sprintf("predictor %s unavailable: %v", e.Endpoint, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError means the predictor answered with a non-success status.
type ProtocolError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *ProtocolError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("predictor %s responded with status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("predictor %s responded with status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("record store %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("prediction %q not found", e.ID)
}

// KindOf classifies err. Unknown errors are KindInternal.
func KindOf(err error) ErrorKind {
	var (
		validationErr  *ValidationError
		authErr        *AuthenticationError
		transportErr   *TransportError
		protocolErr    *ProtocolError
		persistenceErr *PersistenceError
		notFoundErr    *NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		return KindValidation
	case errors.As(err, &authErr):
		return KindAuthentication
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &protocolErr):
		return KindProtocol
	case errors.As(err, &notFoundErr):
		return KindNotFound
	case errors.As(err, &persistenceErr):
		return KindPersistence
	default:
		return KindInternal
	}
}
