package mcp

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	werrors "github.com/Aman-CERP/wordrank/internal/errors"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		contains string
	}{
		{"deadline", context.DeadlineExceeded, ErrCodeTimeout, "timed out"},
		{"canceled", fmt.Errorf("analyze: %w", context.Canceled), ErrCodeTimeout, "canceled"},
		{"unknown", errors.New("boom"), ErrCodeInternalError, "Internal server error"},
		{
			"validation with suggestion",
			werrors.ValidationError("unknown tokenizer", nil).WithSuggestion("Use alnum"),
			ErrCodeInvalidParams,
			"unknown tokenizer. Use alnum",
		},
		{"too large", werrors.New(werrors.ErrCodeFileTooLarge, "input too large", nil), ErrCodeInputTooLarge, "too large"},
		{"io", werrors.New(werrors.ErrCodeReadFailed, "read failed", nil), ErrCodeInternalError, "read failed"},
		{"already mapped", fmt.Errorf("wrap: %w", NewInvalidParamsError("bad")), ErrCodeInvalidParams, "bad"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Contains(t, got.Message, tt.contains)
		})
	}

	assert.Nil(t, MapError(nil))
}

func TestMCPError_Error(t *testing.T) {
	err := NewMethodNotFoundError("search")

	assert.Equal(t, "MCP error -32601: Tool 'search' not found.", err.Error())
}
