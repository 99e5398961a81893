package exception_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	exception "github.com/blank-1/datacollector/pkg/pipeline/support/util/exception"
)

func TestStageError_RendersModuleCodeAndCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := exception.NewStageError("searchindex", "INDEX_03", "index unreachable", cause)

	assert.Contains(t, err.Error(), "[searchindex]")
	assert.Contains(t, err.Error(), "INDEX_03")
	assert.Contains(t, err.Error(), "index unreachable")
	assert.Contains(t, err.Error(), "connection refused")
	assert.NotEmpty(t, err.StackTrace)
}

func TestStageError_WithSourceID(t *testing.T) {
	err := exception.NewStageError("searchindex", "INDEX_04", "record failed", nil).
		WithSourceID("file::12")

	assert.Equal(t, "file::12", err.SourceID)
	assert.Contains(t, err.Error(), "file::12")
}

func TestStageError_UnwrapsToCause(t *testing.T) {
	cause := errors.New("boom")
	err := exception.NewStageErrorf("m", "X_00", cause, "wrapped %d times", 1)

	assert.ErrorIs(t, err, cause)
	assert.True(t, exception.IsStageError(err))
	assert.True(t, exception.IsStageError(fmt.Errorf("outer: %w", err)))
	assert.False(t, exception.IsStageError(cause))
}

func TestCodeOf(t *testing.T) {
	err := exception.NewStageError("m", "X_01", "msg", nil)

	assert.Equal(t, exception.ErrorCode("X_01"), exception.CodeOf(err))
	assert.Equal(t, exception.ErrorCode("X_01"), exception.CodeOf(fmt.Errorf("outer: %w", err)))
	assert.Equal(t, exception.ErrorCode(""), exception.CodeOf(errors.New("plain")))
	assert.Equal(t, exception.ErrorCode(""), exception.CodeOf(nil))
}

func TestExtractErrorMessage(t *testing.T) {
	assert.Equal(t, "", exception.ExtractErrorMessage(nil))
	assert.Equal(t, "plain", exception.ExtractErrorMessage(errors.New("plain")))
}
