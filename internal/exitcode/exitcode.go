// Package exitcode lists process exit codes, one per failure class.
package exitcode

import (
	"errors"

	"github.com/gyeh/medseed/internal/seederr"
)

const (
	Success         = 0
	UsageError      = 1
	SchemaError     = 2
	DBConnError     = 3
	ConstraintError = 4
	LoadError       = 5
)

// For maps an error to the exit code of its failure class.
func For(err error) int {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, seederr.ErrConfiguration):
		return UsageError
	case errors.Is(err, seederr.ErrSchemaPrecondition):
		return SchemaError
	case errors.Is(err, seederr.ErrConnectionFailure):
		return DBConnError
	case errors.Is(err, seederr.ErrConstraintViolation):
		return ConstraintError
	}
	return LoadError
}
