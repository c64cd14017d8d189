package jwtx_test

import (
	"testing"
	"time"

	"github.com/foodiehq/foodie/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testIssuer = "foodie-test"

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	codec := jwtx.NewCodec([]byte("session-secret"), testIssuer)

	token, err := codec.Issue(jwtx.Claims{Scope: "vendor-admin"}, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, testIssuer, claims.Issuer)
	require.Equal(t, "vendor-admin", claims.Scope)
	require.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	issuing := jwtx.NewCodec([]byte("invite-secret"), testIssuer)
	verifying := jwtx.NewCodec([]byte("session-secret"), testIssuer)

	token, err := issuing.Issue(jwtx.Claims{Email: "a@x.com"}, time.Hour)
	require.NoError(t, err)

	_, err = verifying.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	codec := jwtx.NewCodec([]byte("secret"), testIssuer)
	codec.Now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := codec.Issue(jwtx.Claims{Email: "a@x.com"}, time.Hour)
	require.NoError(t, err)

	codec.Now = nil
	_, err = codec.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	issuing := jwtx.NewCodec([]byte("secret"), "someone-else")
	verifying := jwtx.NewCodec([]byte("secret"), testIssuer)

	token, err := issuing.Issue(jwtx.Claims{}, time.Minute)
	require.NoError(t, err)

	_, err = verifying.Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	codec := jwtx.NewCodec([]byte("secret"), testIssuer)
	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := codec.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidToken)
	}
}

func TestIssueRequiresExpiry(t *testing.T) {
	t.Parallel()

	codec := jwtx.NewCodec([]byte("secret"), testIssuer)

	_, err := codec.Issue(jwtx.Claims{}, 0)
	require.ErrorIs(t, err, jwtx.ErrMissingExpiry)

	_, err = codec.Issue(jwtx.Claims{}, -time.Minute)
	require.ErrorIs(t, err, jwtx.ErrMissingExpiry)
}
