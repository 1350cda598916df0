package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		hash, err := HashPassword("correct horse battery staple")
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

		require.NoError(t, VerifyPassword("correct horse battery staple", hash))
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		hash, err := HashPassword("secret")
		require.NoError(t, err)

		require.ErrorIs(t, VerifyPassword("not-secret", hash), ErrPasswordMismatch)
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		h1, err := HashPassword("secret")
		require.NoError(t, err)
		h2, err := HashPassword("secret")
		require.NoError(t, err)
		require.NotEqual(t, h1, h2)
	})

	t.Run("malformed hash rejected", func(t *testing.T) {
		require.Error(t, VerifyPassword("secret", "$bcrypt$nope"))
		require.Error(t, VerifyPassword("secret", ""))
	})
}
