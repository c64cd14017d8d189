package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/internal/foodie/store"
	"github.com/foodiehq/foodie/pkg/idx"

	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "foodie.db"))
	st, err := NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newOrg(orgType domain.OrgType, name string) domain.Org {
	o := domain.Org{
		ID:      idx.New(),
		Type:    orgType,
		Name:    name,
		Address: "1 Test St",
	}
	if orgType == domain.OrgTypeVendor {
		o.Kind = domain.VendorKindRestaurant
	}
	return o
}

func newMember(orgID idx.ID, email string) domain.OrgUser {
	return domain.OrgUser{
		ID:           idx.New(),
		OrgID:        orgID,
		Email:        email,
		Role:         domain.RoleStaff,
		PasswordHash: "hash",
		FirstName:    "Mem",
		LastName:     "Ber",
		PhoneNumber:  "0400000000",
	}
}

func TestOrgUniqueness(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	require.NoError(t, st.Orgs().CreateOrg(ctx, newOrg(domain.OrgTypeVendor, "Pasta Palace")))

	t.Run("duplicate name within type", func(t *testing.T) {
		err := st.Orgs().CreateOrg(ctx, newOrg(domain.OrgTypeVendor, "Pasta Palace"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("same name across types", func(t *testing.T) {
		require.NoError(t, st.Orgs().CreateOrg(ctx, newOrg(domain.OrgTypeCourier, "Pasta Palace")))
	})

	t.Run("lookup is typed", func(t *testing.T) {
		orgs, err := st.Orgs().ListOrgs(ctx, domain.OrgTypeVendor)
		require.NoError(t, err)
		require.Len(t, orgs, 1)

		_, err = st.Orgs().GetOrg(ctx, domain.OrgTypeCourier, orgs[0].ID)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestOrgUserEmailResolution(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	one := newOrg(domain.OrgTypeVendor, "First Kitchen")
	two := newOrg(domain.OrgTypeVendor, "Second Kitchen")
	courier := newOrg(domain.OrgTypeCourier, "Speedy")
	require.NoError(t, st.Orgs().CreateOrg(ctx, one))
	require.NoError(t, st.Orgs().CreateOrg(ctx, two))
	require.NoError(t, st.Orgs().CreateOrg(ctx, courier))

	require.NoError(t, st.OrgUsers().CreateOrgUser(ctx, newMember(one.ID, "solo@example.com")))
	require.NoError(t, st.OrgUsers().CreateOrgUser(ctx, newMember(one.ID, "dual@example.com")))
	require.NoError(t, st.OrgUsers().CreateOrgUser(ctx, newMember(two.ID, "dual@example.com")))

	t.Run("unique email resolves with org type attached", func(t *testing.T) {
		ou, err := st.OrgUsers().GetOrgUserByEmail(ctx, domain.OrgTypeVendor, "solo@example.com")
		require.NoError(t, err)
		require.Equal(t, one.ID, ou.OrgID)
		require.Equal(t, domain.OrgTypeVendor, ou.OrgType)
	})

	t.Run("ambiguous email reads as absent", func(t *testing.T) {
		_, err := st.OrgUsers().GetOrgUserByEmail(ctx, domain.OrgTypeVendor, "dual@example.com")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("email is only ambiguous within one org type", func(t *testing.T) {
		require.NoError(t, st.OrgUsers().CreateOrgUser(ctx, newMember(courier.ID, "solo@example.com")))

		_, err := st.OrgUsers().GetOrgUserByEmail(ctx, domain.OrgTypeVendor, "solo@example.com")
		require.NoError(t, err)
		_, err = st.OrgUsers().GetOrgUserByEmail(ctx, domain.OrgTypeCourier, "solo@example.com")
		require.NoError(t, err)
	})

	t.Run("duplicate within one org conflicts", func(t *testing.T) {
		err := st.OrgUsers().CreateOrgUser(ctx, newMember(one.ID, "solo@example.com"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})
}

func TestRedeemedInvitesLedger(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	org := newOrg(domain.OrgTypeVendor, "Pasta Palace")
	require.NoError(t, st.Orgs().CreateOrg(ctx, org))

	redeemed, err := st.RedeemedInvites().IsRedeemed(ctx, "jti-1")
	require.NoError(t, err)
	require.False(t, redeemed)

	require.NoError(t, st.RedeemedInvites().RecordRedemption(ctx, "jti-1", org.ID, "a@example.com"))

	redeemed, err = st.RedeemedInvites().IsRedeemed(ctx, "jti-1")
	require.NoError(t, err)
	require.True(t, redeemed)

	err = st.RedeemedInvites().RecordRedemption(ctx, "jti-1", org.ID, "a@example.com")
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	org := newOrg(domain.OrgTypeVendor, "Pasta Palace")
	boom := fmt.Errorf("boom")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Orgs().CreateOrg(ctx, org); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Orgs().GetOrg(ctx, domain.OrgTypeVendor, org.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTimestampsRoundTrip(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Second)
	org := newOrg(domain.OrgTypeVendor, "Pasta Palace")
	require.NoError(t, st.Orgs().CreateOrg(ctx, org))

	got, err := st.Orgs().GetOrg(ctx, domain.OrgTypeVendor, org.ID)
	require.NoError(t, err)
	require.True(t, got.CreatedAt.After(before))
	require.True(t, got.UpdatedAt.After(before))
}
