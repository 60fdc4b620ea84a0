package auth

import (
	"testing"

	"github.com/dmitrijs2005/gophusers/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("123456")
	require.NoError(t, err)
	assert.NotEqual(t, "123456", hash)

	assert.NoError(t, h.Compare(hash, "123456"))
	assert.ErrorIs(t, h.Compare(hash, "654321"), common.ErrorUnauthorized)
}

func TestBcryptHasher_FreshSaltPerCall(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	first, err := h.Hash("same")
	require.NoError(t, err)
	second, err := h.Hash("same")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.NoError(t, h.Compare(first, "same"))
	assert.NoError(t, h.Compare(second, "same"))
}

func TestBcryptHasher_DefaultCost(t *testing.T) {
	h := NewBcryptHasher(0)

	hash, err := h.Hash("pw")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	err := h.Compare("not-a-hash", "pw")
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrorUnauthorized)
}

func TestBcryptHasher_TooLongPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	_, err := h.Hash(string(long))
	assert.Error(t, err)
}
