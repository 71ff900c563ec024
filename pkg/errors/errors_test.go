package errors_test

import (
	stderrors "errors"
	"io/fs"
	"testing"

	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "stage_not_found",
			code:    errors.ErrStageNotFound,
			message: "stage 'minify' is not registered",
			wantStr: "[STAGE_NOT_FOUND] stage 'minify' is not registered",
		},
		{
			name:    "invalid_input",
			code:    errors.ErrInvalidInput,
			message: "empty package name",
			wantStr: "[INVALID_INPUT] empty package name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details)
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestWrap(t *testing.T) {
	t.Run("nil error stays nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrFileRemove, "remove"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrFileRemove, "remove %s", "x"))
	})

	t.Run("wrapped error is reachable", func(t *testing.T) {
		err := errors.Wrapf(fs.ErrPermission, errors.ErrFileRemove, "failed to remove %s", "components/w")

		assert.Equal(t, "[FILE_REMOVE] failed to remove components/w: permission denied", err.Error())
		assert.True(t, stderrors.Is(err, fs.ErrPermission))
		assert.Equal(t, fs.ErrPermission, stderrors.Unwrap(err))
	})
}

func TestIsByCode(t *testing.T) {
	err := errors.New(errors.ErrStageInit, "node missing")
	same := errors.New(errors.ErrStageInit, "different message")
	other := errors.New(errors.ErrStageProcess, "node missing")

	assert.True(t, stderrors.Is(err, same))
	assert.False(t, stderrors.Is(err, other))
}

func TestCodeHelpers(t *testing.T) {
	err := errors.Wrap(stderrors.New("boom"), errors.ErrToolMissing, "node not found").
		WithDetail("tool", "node")

	assert.True(t, errors.IsErrorCode(err, errors.ErrToolMissing))
	assert.False(t, errors.IsErrorCode(err, errors.ErrStageInit))
	assert.Equal(t, errors.ErrToolMissing, errors.GetErrorCode(err))
	assert.Equal(t, "node", errors.GetErrorDetails(err)["tool"])

	plain := stderrors.New("plain")
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(plain))
	assert.Nil(t, errors.GetErrorDetails(plain))
	assert.False(t, errors.IsErrorCode(plain, errors.ErrUnknown))
}
