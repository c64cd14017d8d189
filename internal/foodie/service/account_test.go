package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	st := newTestStore(t)
	svc := &AccountService{Store: st}
	ctx := context.Background()

	t.Run("creates the user with a hashed password", func(t *testing.T) {
		user, err := svc.Register(ctx, Registration{
			Email:       "Eater@Example.com",
			Password:    "hungry-1",
			FirstName:   "Eve",
			LastName:    "Eater",
			PhoneNumber: "0400000001",
		})
		require.NoError(t, err)
		require.Equal(t, "eater@example.com", user.Email)
		require.NotEqual(t, "hungry-1", user.PasswordHash)
		require.Contains(t, user.PasswordHash, "$argon2id$")
	})

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, Registration{
			Email:       "eater@example.com",
			Password:    "hungry-2",
			FirstName:   "Other",
			LastName:    "Person",
			PhoneNumber: "0400000002",
		})
		require.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("missing email", func(t *testing.T) {
		_, err := svc.Register(ctx, Registration{Password: "hungry-3"})
		require.ErrorIs(t, err, ErrInvalidRegistration)
	})

	t.Run("weak password", func(t *testing.T) {
		_, err := svc.Register(ctx, Registration{
			Email:    "short@example.com",
			Password: "ab c d",
		})
		require.ErrorIs(t, err, ErrWeakPassword)
	})
}

func TestSeedAdminIsIdempotent(t *testing.T) {
	st := newTestStore(t)
	svc := &AccountService{Store: st}
	ctx := context.Background()

	require.NoError(t, svc.SeedAdmin(ctx, "root@example.com", "super-secret"))
	require.NoError(t, svc.SeedAdmin(ctx, "root@example.com", "different-password"))

	// The first seed wins; the second run changed nothing.
	admin, err := st.Admins().GetAdminByEmail(ctx, "root@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, admin.PasswordHash)
}
