// pkg/errors/errors_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test error creation, wrapping, and code lookup

package errors_test

import (
	stderrors "errors"
	"testing"

	"github.com/libtour/libtour/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    errors.ErrorCode
		message string
		wantStr string
	}{
		{
			name:    "construction_failure",
			code:    errors.ErrConstruction,
			message: "resource constructor failed",
			wantStr: "[CONSTRUCTION_FAILURE] resource constructor failed",
		},
		{
			name:    "invalid_input_error",
			code:    errors.ErrInvalidInput,
			message: "stddev must not be negative",
			wantStr: "[INVALID_INPUT] stddev must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := errors.New(tt.code, tt.message)

			assert.Equal(t, tt.code, err.Code)
			assert.Equal(t, tt.message, err.Message)
			assert.NotNil(t, err.Details, "details should be initialized")
			assert.Equal(t, tt.wantStr, err.Error())
		})
	}
}

func TestNewf(t *testing.T) {
	err := errors.Newf(errors.ErrArchiveInvalid, "unsupported archive version %d", 7)
	assert.Equal(t, "unsupported archive version 7", err.Message)
}

func TestWrap(t *testing.T) {
	baseErr := stderrors.New("disk full")

	t.Run("wrap_non_nil_error", func(t *testing.T) {
		err := errors.Wrap(baseErr, errors.ErrFileWrite, "cannot write archive")

		assert.Equal(t, errors.ErrFileWrite, err.Code)
		assert.Same(t, baseErr, err.Wrapped)
		assert.Equal(t, "[FILE_WRITE] cannot write archive: disk full", err.Error())
	})

	t.Run("wrap_nil_error_returns_nil", func(t *testing.T) {
		assert.Nil(t, errors.Wrap(nil, errors.ErrInternal, "internal error"))
		assert.Nil(t, errors.Wrapf(nil, errors.ErrInternal, "internal %s", "error"))
	})
}

func TestWithDetails(t *testing.T) {
	err := errors.New(errors.ErrFileRead, "cannot read archive").
		WithDetail("path", "map.dat").
		WithDetails(map[string]interface{}{"format": "binary", "size": 42})

	assert.Equal(t, "map.dat", err.Details["path"])
	assert.Equal(t, "binary", err.Details["format"])
	assert.Equal(t, 42, err.Details["size"])
	assert.Equal(t, err.Details, errors.GetErrorDetails(err))
	assert.Nil(t, errors.GetErrorDetails(stderrors.New("plain")))
}

func TestIs(t *testing.T) {
	err1 := errors.New(errors.ErrRegistryClosed, "closed once")
	err2 := errors.New(errors.ErrRegistryClosed, "closed twice")
	err3 := errors.New(errors.ErrConstruction, "boom")

	assert.True(t, err1.Is(err2), "same code should match")
	assert.False(t, err1.Is(err3), "different codes should not match")
	assert.True(t, stderrors.Is(err1, err2), "errors.Is should use the code")
}

func TestIsErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     errors.ErrorCode
		expected bool
	}{
		{"matching_code", errors.New(errors.ErrNotFound, "x"), errors.ErrNotFound, true},
		{"different_code", errors.New(errors.ErrNotFound, "x"), errors.ErrInternal, false},
		{"wrapped_error", errors.Wrap(stderrors.New("base"), errors.ErrFileRead, "denied"), errors.ErrFileRead, true},
		{"plain_error", stderrors.New("standard error"), errors.ErrNotFound, false},
		{"nil_error", nil, errors.ErrNotFound, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errors.IsErrorCode(tt.err, tt.code))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, errors.ErrReleased, errors.GetErrorCode(errors.New(errors.ErrReleased, "gone")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(stderrors.New("standard error")))
	assert.Equal(t, errors.ErrUnknown, errors.GetErrorCode(nil))
}

func TestErrorChaining(t *testing.T) {
	rootCause := stderrors.New("root cause")
	fileErr := errors.Wrap(rootCause, errors.ErrFileRead, "cannot read file")
	configErr := errors.Wrap(fileErr, errors.ErrConfigLoad, "failed to load config")

	assert.True(t, errors.IsErrorCode(configErr, errors.ErrConfigLoad))
	assert.False(t, errors.IsErrorCode(configErr, errors.ErrFileRead), "only the outermost code is checked")
	assert.True(t, errors.HasErrorCode(configErr, errors.ErrFileRead), "inner codes are reachable")
	assert.False(t, errors.HasErrorCode(configErr, errors.ErrConstruction))

	var libErr *errors.LibtourError
	require.True(t, stderrors.As(configErr.Unwrap(), &libErr))
	assert.Equal(t, errors.ErrFileRead, libErr.Code)

	assert.True(t, stderrors.Is(configErr, rootCause), "root cause should be found with errors.Is")
}
