package seederr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_PgCodes(t *testing.T) {
	tests := []struct {
		code string
		want error
	}{
		{"23503", ErrConstraintViolation},
		{"23505", ErrConstraintViolation},
		{"23502", ErrConstraintViolation},
		{"22P02", ErrConstraintViolation},
		{"22001", ErrConstraintViolation},
		{"22003", ErrConstraintViolation},
		{"22007", ErrConstraintViolation},
		{"22008", ErrConstraintViolation},
		{"22012", nil},
		{"08006", ErrConnectionFailure},
		{"08001", ErrConnectionFailure},
		{"57P01", ErrConnectionFailure},
		{"42P01", nil},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			src := fmt.Errorf("insert chunk: %w", &pgconn.PgError{Code: tt.code, Message: "boom"})
			got := Classify(src)
			assert.Equal(t, tt.want, Kind(got))

			var pgErr *pgconn.PgError
			require.True(t, errors.As(got, &pgErr), "driver error must stay reachable")
			assert.Equal(t, tt.code, pgErr.Code)
		})
	}
}

func TestClassify_PassThrough(t *testing.T) {
	assert.Nil(t, Classify(nil))

	ctxErr := fmt.Errorf("begin: %w", context.Canceled)
	assert.Same(t, ctxErr, Classify(ctxErr))

	plain := errors.New("something else")
	assert.Same(t, plain, Classify(plain))
}

func TestClassify_KeepsExistingKind(t *testing.T) {
	cfg := Configf("departments %d exceeds catalog %d", 25, 20)
	got := Classify(cfg)
	assert.Same(t, cfg, got)
	assert.ErrorIs(t, got, ErrConfiguration)
	assert.Contains(t, got.Error(), "departments 25 exceeds catalog 20")
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(ErrSchemaPrecondition, nil))

	base := errors.New("create type")
	w := Wrap(ErrSchemaPrecondition, base)
	assert.ErrorIs(t, w, ErrSchemaPrecondition)
	assert.ErrorIs(t, w, base)
	assert.Same(t, w, Wrap(ErrSchemaPrecondition, w))
}
