package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcrypt(t *testing.T) {
	tests := []struct {
		name     string
		cost     int
		expected int
	}{
		{name: "Configured cost", cost: bcrypt.MinCost, expected: bcrypt.MinCost},
		{name: "Zero falls back", cost: 0, expected: bcrypt.DefaultCost},
		{name: "Too expensive falls back", cost: bcrypt.MaxCost + 1, expected: bcrypt.DefaultCost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewBcrypt(tt.cost).Cost())
		})
	}
}

func TestBcrypt_Hash(t *testing.T) {
	hasher := NewBcrypt(bcrypt.MinCost)

	t.Run("Uses configured cost", func(t *testing.T) {
		hash, err := hasher.Hash("secret123")
		require.NoError(t, err)
		cost, err := bcrypt.Cost([]byte(hash))
		require.NoError(t, err)
		assert.Equal(t, bcrypt.MinCost, cost)
	})

	t.Run("Salted per call", func(t *testing.T) {
		first, err := hasher.Hash("secret123")
		require.NoError(t, err)
		second, err := hasher.Hash("secret123")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("Empty password", func(t *testing.T) {
		hash, err := hasher.Hash("")
		assert.ErrorIs(t, err, ErrEmptyPassword)
		assert.Empty(t, hash)
	})

	t.Run("Longer than bcrypt accepts", func(t *testing.T) {
		hash, err := hasher.Hash(strings.Repeat("x", 73))
		assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)
		assert.Empty(t, hash)
	})
}

func TestBcrypt_Verify(t *testing.T) {
	hasher := NewBcrypt(bcrypt.MinCost)
	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		hash     string
		password string
		check    func(t *testing.T, err error)
	}{
		{
			name:     "Match",
			hash:     hash,
			password: "secret123",
			check:    func(t *testing.T, err error) { assert.NoError(t, err) },
		},
		{
			name:     "Wrong password",
			hash:     hash,
			password: "secret124",
			check:    func(t *testing.T, err error) { assert.ErrorIs(t, err, ErrPasswordMismatch) },
		},
		{
			name:     "Malformed hash",
			hash:     "not-a-bcrypt-hash",
			password: "secret123",
			check: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.NotErrorIs(t, err, ErrPasswordMismatch)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, hasher.Verify(tt.hash, tt.password))
		})
	}
}
