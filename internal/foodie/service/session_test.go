package service

import (
	"context"
	"testing"
	"time"

	"github.com/foodiehq/foodie/internal/foodie/domain"

	"github.com/stretchr/testify/require"
)

func TestAuthenticatePlatformAdmin(t *testing.T) {
	st := newTestStore(t)
	codec := newSessionCodec()
	svc := &SessionService{Store: st, Codec: codec, AccessTTL: time.Minute}

	admin := seedAdmin(t, st, "root@example.com", "super-secret")

	session, err := svc.Authenticate(context.Background(), domain.ScopePlatformAdmin, "root@example.com", "super-secret")
	require.NoError(t, err)
	require.NotEmpty(t, session.AccessToken)
	require.Equal(t, time.Minute, session.ExpiresIn)

	claims, err := codec.Verify(session.AccessToken)
	require.NoError(t, err)
	require.Equal(t, admin.ID.String(), claims.Subject)
	require.Equal(t, string(domain.ScopePlatformAdmin), claims.Scope)
}

func TestAuthenticateFailuresAreIndistinguishable(t *testing.T) {
	st := newTestStore(t)
	svc := &SessionService{Store: st, Codec: newSessionCodec(), AccessTTL: time.Minute}

	seedAdmin(t, st, "root@example.com", "super-secret")

	_, wrongPassword := svc.Authenticate(context.Background(), domain.ScopePlatformAdmin, "root@example.com", "nope")
	_, unknownEmail := svc.Authenticate(context.Background(), domain.ScopePlatformAdmin, "ghost@example.com", "nope")

	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	require.Equal(t, wrongPassword, unknownEmail)
}

func TestAuthenticateOrgScopes(t *testing.T) {
	st := newTestStore(t)
	partners := &PartnerService{Store: st}
	svc := &SessionService{Store: st, Codec: newSessionCodec(), AccessTTL: time.Minute}
	ctx := context.Background()

	vendor := seedVendor(t, partners, "Pasta Palace")
	courier := seedCourier(t, partners, "Speedy")

	seedMember(t, st, vendor, "boss@example.com", domain.RoleAdmin, "password-1")
	seedMember(t, st, vendor, "staff@example.com", domain.RoleStaff, "password-2")
	seedMember(t, st, courier, "rider@example.com", domain.RoleStaff, "password-3")

	t.Run("admin member authenticates on both vendor scopes", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, domain.ScopeVendorAdmin, "boss@example.com", "password-1")
		require.NoError(t, err)
		_, err = svc.Authenticate(ctx, domain.ScopeVendorStaff, "boss@example.com", "password-1")
		require.NoError(t, err)
	})

	t.Run("staff member is rejected on the admin scope", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, domain.ScopeVendorAdmin, "staff@example.com", "password-2")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("courier member cannot use vendor scopes", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, domain.ScopeVendorStaff, "rider@example.com", "password-3")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthenticateAmbiguousEmail(t *testing.T) {
	st := newTestStore(t)
	partners := &PartnerService{Store: st}
	svc := &SessionService{Store: st, Codec: newSessionCodec(), AccessTTL: time.Minute}
	ctx := context.Background()

	one := seedVendor(t, partners, "First Kitchen")
	two := seedVendor(t, partners, "Second Kitchen")

	// Same email in two vendors: login by email alone is ambiguous, so it
	// must fail even with the right password.
	seedMember(t, st, one, "dual@example.com", domain.RoleStaff, "password-1")
	seedMember(t, st, two, "dual@example.com", domain.RoleStaff, "password-1")

	_, err := svc.Authenticate(ctx, domain.ScopeVendorStaff, "dual@example.com", "password-1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUserScope(t *testing.T) {
	st := newTestStore(t)
	accounts := &AccountService{Store: st}
	svc := &SessionService{Store: st, Codec: newSessionCodec(), AccessTTL: time.Minute}
	ctx := context.Background()

	user, err := accounts.Register(ctx, Registration{
		Email:       "eater@example.com",
		Password:    "hungry-1",
		FirstName:   "Eve",
		LastName:    "Eater",
		PhoneNumber: "0400000001",
	})
	require.NoError(t, err)

	session, err := svc.Authenticate(ctx, domain.ScopeUser, "eater@example.com", "hungry-1")
	require.NoError(t, err)

	claims, err := svc.Codec.Verify(session.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID.String(), claims.Subject)

	// An end user's credentials are worthless on the admin scope.
	_, err = svc.Authenticate(ctx, domain.ScopePlatformAdmin, "eater@example.com", "hungry-1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
