package medium2md_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/medium2md"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := medium2md.Errorf(medium2md.ENOTFOUND, "no markdown file in %q", "out")

	assert.Equal(t, medium2md.ENOTFOUND, medium2md.ErrorCode(err))
	assert.Equal(t, "no markdown file in \"out\"", medium2md.ErrorMessage(err))
}

func TestErrorCode_Wrapped(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("localize: %w", medium2md.Errorf(medium2md.ECONFLICT, "two files"))

	assert.Equal(t, medium2md.ECONFLICT, medium2md.ErrorCode(err))
	assert.Equal(t, "two files", medium2md.ErrorMessage(err))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	err := errors.New("connection reset")

	assert.Equal(t, medium2md.EINTERNAL, medium2md.ErrorCode(err))
	assert.Equal(t, "Internal error.", medium2md.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, medium2md.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, medium2md.ErrorMessage(nil))
}
