package cryptox_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/foodiehq/foodie/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "cryptox-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := cryptox.HashPassword("secret1")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, cryptox.VerifyPassword("secret1", hash))
	require.ErrorIs(t, cryptox.VerifyPassword("secret2", hash), cryptox.ErrMismatch)
}

func TestHashesAreSalted(t *testing.T) {
	first, err := cryptox.HashPassword("same-password")
	require.NoError(t, err)
	second, err := cryptox.HashPassword("same-password")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=19456,t=2,p=1$onlyfourparts",
		"$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=19456,t=2,p=1$!!!$aGFzaA",
	} {
		err := cryptox.VerifyPassword("whatever", encoded)
		require.Error(t, err, "encoded=%q", encoded)
		require.NotErrorIs(t, err, cryptox.ErrMismatch)
	}
}
