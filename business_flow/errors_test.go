package businessflow

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessError_WrapsSentinel(t *testing.T) {
	err := NewBusinessError("TEMPLATE_NOT_FOUND", "Template not found", ErrTemplateNotFound)

	assert.Equal(t, "TEMPLATE_NOT_FOUND", err.Code)
	assert.True(t, IsTemplateNotFound(err))
	assert.False(t, IsTemplateAccessDenied(err))
	assert.ErrorIs(t, err, ErrTemplateNotFound)
	assert.Contains(t, err.Error(), "Template not found")
}

func TestBusinessError_WithoutSentinel(t *testing.T) {
	err := NewBusinessError("CONTACT_LIST_FAILED", "Failed to list contacts", nil)

	assert.Equal(t, "Failed to list contacts", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestBusinessErrorf(t *testing.T) {
	err := NewBusinessErrorf("IMPORT_FAILED", "Import failed for %d rows", ErrNoValidNumbers, 3)

	assert.Equal(t, "Import failed for 3 rows: no valid numbers found", err.Error())
	assert.True(t, IsNoValidNumbers(err))
}

func TestNormalizePage(t *testing.T) {
	page, pageSize, err := normalizePage(0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page)
	assert.Equal(t, 50, pageSize)

	page, pageSize, err = normalizePage(3, 25)
	require.NoError(t, err)
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, pageSize)

	_, _, err = normalizePage(-1, 10)
	assert.ErrorIs(t, err, ErrInvalidPage)

	_, _, err = normalizePage(1, 500)
	assert.ErrorIs(t, err, ErrInvalidPageSize)
}
