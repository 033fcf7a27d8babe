package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := Query(stderrors.New("permission denied"))
	wrapped := Wrap(base, "fetch review rows")

	assert.Equal(t, CodeQueryError, GetCode(wrapped))
	assert.Equal(t, "fetch review rows: report query failed: permission denied", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrapPlainError(t *testing.T) {
	err := Wrap(stderrors.New("boom"), "context")
	assert.Equal(t, CodeInternalError, GetCode(err))
	assert.Nil(t, Wrap(nil, "ignored"))
	assert.Nil(t, Wrapf(nil, "ignored %d", 1))
}

func TestGetCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", Connection(stderrors.New("login failed")))
	assert.Equal(t, CodeConnectionError, GetCode(err))
	assert.True(t, IsAppError(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeWriteError, stderrors.New("disk full"))
	assert.Equal(t, CodeWriteError, GetCode(err))
	assert.Equal(t, "disk full", err.Error())

	recoded := WithCode(CodeInvalidInput, ConfigInvalid("bad"))
	assert.Equal(t, CodeInvalidInput, GetCode(recoded))
}

func TestTaxonomyConstructors(t *testing.T) {
	cause := stderrors.New("x")
	tests := []struct {
		name string
		err  *AppError
		code string
	}{
		{"connection", Connection(cause), CodeConnectionError},
		{"query", Query(cause), CodeQueryError},
		{"write", Write("save report", cause), CodeWriteError},
		{"config", ConfigInvalid("missing"), CodeConfigInvalid},
		{"input", InvalidInput("no columns"), CodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
		})
	}
}
