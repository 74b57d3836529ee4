package identity

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStaticVerifier(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	v := NewStaticVerifier("admin@example.com", string(hash))
	ctx := context.Background()

	t.Run("valid credential", func(t *testing.T) {
		user, err := v.Verify(ctx, "admin@example.com:hunter2")
		require.NoError(t, err)
		assert.Equal(t, "admin", user.UID)
		assert.Equal(t, "admin@example.com", user.Email)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := v.Verify(ctx, "admin@example.com:wrong")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("wrong email", func(t *testing.T) {
		_, err := v.Verify(ctx, "other@example.com:hunter2")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("malformed credential", func(t *testing.T) {
		_, err := v.Verify(ctx, "no-separator")
		assert.ErrorIs(t, err, ErrInvalidCredential)
	})
}
