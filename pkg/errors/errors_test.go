package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrThemeNotFound, "theme missing")
	assert.Equal(t, "[THEME_NOT_FOUND] theme missing", err.Error())
	assert.Equal(t, ErrThemeNotFound, err.Code)
}

func TestNewf(t *testing.T) {
	err := Newf(ErrThemeNotFound, "theme %q missing", "bgrt")
	assert.Equal(t, `[THEME_NOT_FOUND] theme "bgrt" missing`, err.Error())
}

func TestWrap(t *testing.T) {
	base := stderrors.New("disk full")
	err := Wrap(base, ErrFileWrite, "cannot write config")
	assert.Equal(t, "[FILE_WRITE] cannot write config: disk full", err.Error())
	assert.ErrorIs(t, err, base)

	assert.Nil(t, Wrap(nil, ErrFileWrite, "ignored"))
}

func TestIsErrorCode(t *testing.T) {
	err := Newf(ErrThemeNotFound, "missing")
	assert.True(t, IsErrorCode(err, ErrThemeNotFound))
	assert.False(t, IsErrorCode(err, ErrFileWrite))
	assert.False(t, IsErrorCode(stderrors.New("plain"), ErrThemeNotFound))

	// Codes survive further wrapping
	wrapped := fmt.Errorf("assembly failed: %w", err)
	assert.True(t, IsErrorCode(wrapped, ErrThemeNotFound))
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrDepMissing, GetErrorCode(New(ErrDepMissing, "gap")))
	assert.Equal(t, ErrUnknown, GetErrorCode(stderrors.New("plain")))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrThemeNotFound, "missing").
		WithDetail("theme", "bgrt").
		WithDetail("option", "splash.theme")
	require.NotNil(t, err.Details)
	assert.Equal(t, "bgrt", err.Details["theme"])
	assert.Equal(t, "splash.theme", err.Details["option"])
}
