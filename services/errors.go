package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFetchCancelled is returned by a load that was superseded by a newer
// one or stopped by teardown. Its result has been discarded.
var ErrFetchCancelled = errors.New("quotation fetch cancelled")

// ErrQuotationNotFound is returned when an id is not in the loaded list.
var ErrQuotationNotFound = errors.New("quotation not found")

// APIError is a failure response from the quotation API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("quotation api: status %d", e.StatusCode)
	}
	return fmt.Sprintf("quotation api: status %d: %s", e.StatusCode, e.Message)
}

// TransientFetchError is a list fetch that failed on the network, with a
// non-2xx status or with success:false. Callers fall back to cached data.
type TransientFetchError struct {
	Err error
}

func (e *TransientFetchError) Error() string {
	return "fetch quotations: " + e.Err.Error()
}

func (e *TransientFetchError) Unwrap() error { return e.Err }

// ValidationError represents a single field-level error on one row.
// Row is 0 for top-level fields and the 1-based line for charge rows.
type ValidationError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("%s row %d: %s", e.Field, e.Row, e.Message)
	}
	return e.Field + ": " + e.Message
}

// SaveConflictError is returned when an update failed under the quotation
// id and, where one exists, under the storage id too. Message is the
// server's text for the last attempt.
type SaveConflictError struct {
	ID      string
	Message string
	Err     error
}

func (e *SaveConflictError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("save quotation %s: %s", e.ID, e.Message)
	}
	return fmt.Sprintf("save quotation %s: update rejected", e.ID)
}

func (e *SaveConflictError) Unwrap() error { return e.Err }

// ShareError reports a clipboard or mail composer failure during an email
// share. It never blocks the share; it is carried on the result.
type ShareError struct {
	Step string
	Err  error
}

func (e *ShareError) Error() string {
	return e.Step + ": " + e.Err.Error()
}

func (e *ShareError) Unwrap() error { return e.Err }

// ValidationErrors joins field errors into one message.
func ValidationErrors(errs []ValidationError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Error()
	}
	return errors.New(strings.Join(msgs, "; "))
}
