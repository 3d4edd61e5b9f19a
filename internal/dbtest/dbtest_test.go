package dbtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSkipRequested(t *testing.T) {
	if testing.Short() {
		t.Skip("-short always skips")
	}
	tests := []struct {
		value string
		want  bool
	}{
		{"", false},
		{"0", false},
		{"false", false},
		{"yes", false},
		{"1", true},
		{"true", true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(SkipEnv, tt.value)
			assert.Equal(t, tt.want, skipRequested())
		})
	}
}

func TestDSN_SkipsWithoutServer(t *testing.T) {
	dsn = ""
	ok := t.Run("inner", func(t *testing.T) {
		DSN(t)
		t.Error("DSN returned without a server")
	})
	assert.True(t, ok)
}
