package auth

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, password := range []string{"p", "correct horse battery staple", "пароль"} {
		hash, err := HashPassword(password, bcrypt.MinCost)
		require.NoError(t, err)
		require.NotEqual(t, password, hash)
		require.True(t, CheckPassword(password, hash))
	}
}

func TestCheckPassword_WrongPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("right", bcrypt.MinCost)
	require.NoError(t, err)
	require.False(t, CheckPassword("wrong", hash))
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	t.Parallel()

	require.False(t, CheckPassword("anything", "not-a-bcrypt-hash"))
	require.False(t, CheckPassword("anything", ""))
}

func TestHashPassword_DefaultCost(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret", 0)
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	require.Equal(t, bcrypt.DefaultCost, cost)
}
