// Package seederr defines the failure classes a seeding run can end in and
// maps driver errors onto them.
package seederr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrSchemaPrecondition means the schema could not be created or verified.
	ErrSchemaPrecondition = errors.New("schema precondition failed")
	// ErrConstraintViolation means a row was rejected by a foreign key, check,
	// not-null, unique or enum constraint.
	ErrConstraintViolation = errors.New("constraint violation")
	// ErrConnectionFailure means the sink could not be reached or the session
	// was lost. It is never retried.
	ErrConnectionFailure = errors.New("connection failure")
	// ErrConfiguration means the run configuration was rejected before any
	// row was generated.
	ErrConfiguration = errors.New("configuration error")
)

// kindError attaches a sentinel kind to an underlying error so that both
// errors.Is(err, kind) and errors.As(err, *pgconn.PgError) work.
type kindError struct {
	kind error
	err  error
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%s: %s", e.kind, e.err)
}

func (e *kindError) Unwrap() []error {
	return []error{e.kind, e.err}
}

// Wrap tags err with kind. A nil err stays nil.
func Wrap(kind, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, kind) {
		return err
	}
	return &kindError{kind: kind, err: err}
}

// Configf builds a configuration error.
func Configf(format string, args ...any) error {
	return Wrap(ErrConfiguration, fmt.Errorf(format, args...))
}

// dataRejections are class 22 codes raised when a value does not fit its
// column type.
var dataRejections = map[string]bool{
	"22001": true, // string_data_right_truncation
	"22003": true, // numeric_value_out_of_range
	"22007": true, // invalid_datetime_format
	"22008": true, // datetime_field_overflow
	"22P02": true, // invalid_text_representation
}

// Classify tags a sink error with its failure class. Errors that already
// carry a kind, context errors and unrecognised errors are returned as is.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if Kind(err) != nil {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case strings.HasPrefix(pgErr.Code, "23"), dataRejections[pgErr.Code]:
			return Wrap(ErrConstraintViolation, err)
		case strings.HasPrefix(pgErr.Code, "08"),
			strings.HasPrefix(pgErr.Code, "57P"):
			return Wrap(ErrConnectionFailure, err)
		}
		return err
	}

	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) {
		return Wrap(ErrConnectionFailure, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Wrap(ErrConnectionFailure, err)
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return Wrap(ErrConnectionFailure, err)
	}
	return err
}

// Kind returns the sentinel carried by err, or nil.
func Kind(err error) error {
	for _, k := range []error{
		ErrConfiguration,
		ErrSchemaPrecondition,
		ErrConstraintViolation,
		ErrConnectionFailure,
	} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
