package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageErrorWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewStorageError("checkout", 3, cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, IsStorageError(fmt.Errorf("outer: %w", err)))

	var se *StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "checkout", se.Op)
	assert.Equal(t, 3, se.Step)
}

func TestValidateRatingBounds(t *testing.T) {
	assert.NoError(t, ValidateRating(0))
	assert.NoError(t, ValidateRating(5))
	assert.Error(t, ValidateRating(-1))
	assert.Error(t, ValidateRating(6))
}

func TestValidateUUID(t *testing.T) {
	_, err := ValidateUUID(" ", "id")
	assert.Error(t, err)

	_, err = ValidateUUID("not-a-uuid", "id")
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "id", ve.Field)

	id, err := ValidateUUID("8f4de1a8-3f2b-4f7e-9a64-0c6a5f9d2b11", "id")
	require.NoError(t, err)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", id.String())
}
