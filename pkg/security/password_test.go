package security

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("correcthorse")
	require.NoError(t, err)
	assert.NotEqual(t, "correcthorse", hash)

	assert.NoError(t, hasher.Compare(hash, "correcthorse"))
	assert.Error(t, hasher.Compare(hash, "wronghorse"))
}

func TestHashRejectsShortPassword(t *testing.T) {
	hasher := NewBcryptHasher(4)

	_, err := hasher.Hash("short")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPasswordTooShort))
}

func TestOutOfRangeCostFallsBack(t *testing.T) {
	hasher := NewBcryptHasher(99)

	hash, err := hasher.Hash("correcthorse")
	require.NoError(t, err)
	assert.NoError(t, hasher.Compare(hash, "correcthorse"))
}
