package service

import (
	"context"
	"testing"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/internal/foodie/store"
	"github.com/foodiehq/foodie/pkg/idx"

	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

func TestCreateVendorSeedsWeeklySchedule(t *testing.T) {
	st := newTestStore(t)
	svc := &PartnerService{Store: st}
	ctx := context.Background()

	org, err := svc.CreateVendor(ctx, "Pasta Palace", domain.VendorKindRestaurant, "1 Main St")
	require.NoError(t, err)
	require.Equal(t, domain.OrgTypeVendor, org.Type)
	require.Equal(t, domain.VendorKindRestaurant, org.Kind)

	hours, err := svc.GetOpenHours(ctx, org.ID)
	require.NoError(t, err)
	require.Len(t, hours, len(domain.Weekdays))

	for i, oh := range hours {
		require.Equal(t, domain.Weekdays[i], oh.Day)
		require.Equal(t, domain.DefaultOpenFrom, oh.OpenFrom)
		require.Equal(t, domain.DefaultOpenTo, oh.OpenTo)
		require.True(t, oh.Closed)
	}
}

func TestCreateVendorValidation(t *testing.T) {
	st := newTestStore(t)
	svc := &PartnerService{Store: st}
	ctx := context.Background()

	t.Run("empty name", func(t *testing.T) {
		_, err := svc.CreateVendor(ctx, "  ", domain.VendorKindHome, "1 Main St")
		require.ErrorIs(t, err, ErrInvalidPartner)
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := svc.CreateVendor(ctx, "Pasta Palace", "drive-through", "1 Main St")
		require.ErrorIs(t, err, ErrInvalidPartner)
	})

	t.Run("duplicate name within org type", func(t *testing.T) {
		_, err := svc.CreateVendor(ctx, "Pasta Palace", domain.VendorKindRestaurant, "1 Main St")
		require.NoError(t, err)

		_, err = svc.CreateVendor(ctx, "Pasta Palace", domain.VendorKindHome, "2 Other St")
		require.ErrorIs(t, err, ErrDuplicateOrg)

		// Duplicate rolls the whole transaction back, schedule rows included.
		orgs, err := svc.ListVendors(ctx)
		require.NoError(t, err)
		require.Len(t, orgs, 1)
	})

	t.Run("same name allowed across org types", func(t *testing.T) {
		_, err := svc.CreateCourier(ctx, "Pasta Palace", "3 Depot Rd")
		require.NoError(t, err)
	})
}

func TestCreateCourierHasNoSchedule(t *testing.T) {
	st := newTestStore(t)
	svc := &PartnerService{Store: st}
	ctx := context.Background()

	org, err := svc.CreateCourier(ctx, "Speedy", "2 Depot Rd")
	require.NoError(t, err)
	require.Equal(t, domain.OrgTypeCourier, org.Type)
	require.Empty(t, org.Kind)

	hours, err := svc.GetOpenHours(ctx, org.ID)
	require.NoError(t, err)
	require.Empty(t, hours)

	_, err = svc.CreateCourier(ctx, "Speedy", "9 Elsewhere")
	require.ErrorIs(t, err, ErrDuplicateOrg)
}

func TestUpdateOpenHours(t *testing.T) {
	st := newTestStore(t)
	svc := &PartnerService{Store: st}
	ctx := context.Background()

	org := seedVendor(t, svc, "Pasta Palace")

	t.Run("partial patch keeps untouched fields", func(t *testing.T) {
		week, err := svc.UpdateOpenHours(ctx, org.ID, domain.Monday, OpenHoursPatch{
			Closed: boolptr(false),
		})
		require.NoError(t, err)
		require.Len(t, week, len(domain.Weekdays))

		monday := week[0]
		require.Equal(t, domain.Monday, monday.Day)
		require.False(t, monday.Closed)
		require.Equal(t, domain.DefaultOpenFrom, monday.OpenFrom)
		require.Equal(t, domain.DefaultOpenTo, monday.OpenTo)

		// Tuesday untouched.
		require.True(t, week[1].Closed)
	})

	t.Run("full patch", func(t *testing.T) {
		week, err := svc.UpdateOpenHours(ctx, org.ID, domain.Friday, OpenHoursPatch{
			OpenFrom: strptr("11:30:00"),
			OpenTo:   strptr("23:00:00"),
			Closed:   boolptr(false),
		})
		require.NoError(t, err)

		friday := week[4]
		require.Equal(t, "11:30:00", friday.OpenFrom)
		require.Equal(t, "23:00:00", friday.OpenTo)
		require.False(t, friday.Closed)
	})

	t.Run("open_from at or after open_to", func(t *testing.T) {
		_, err := svc.UpdateOpenHours(ctx, org.ID, domain.Monday, OpenHoursPatch{
			OpenFrom: strptr("20:00:00"),
		})
		require.ErrorIs(t, err, ErrInvalidHours)

		_, err = svc.UpdateOpenHours(ctx, org.ID, domain.Monday, OpenHoursPatch{
			OpenFrom: strptr("19:00:00"),
			OpenTo:   strptr("19:00:00"),
		})
		require.ErrorIs(t, err, ErrInvalidHours)

		// Rejected update left the stored row alone.
		monday, err := st.OpenHours().GetOpenHours(ctx, org.ID, domain.Monday)
		require.NoError(t, err)
		require.Equal(t, domain.DefaultOpenFrom, monday.OpenFrom)
	})

	t.Run("malformed time", func(t *testing.T) {
		_, err := svc.UpdateOpenHours(ctx, org.ID, domain.Monday, OpenHoursPatch{
			OpenFrom: strptr("9am"),
		})
		require.ErrorIs(t, err, ErrInvalidHours)
	})

	t.Run("unknown org", func(t *testing.T) {
		_, err := svc.UpdateOpenHours(ctx, idx.New(), domain.Monday, OpenHoursPatch{
			Closed: boolptr(false),
		})
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestListVendorsIncludesHours(t *testing.T) {
	st := newTestStore(t)
	svc := &PartnerService{Store: st}
	ctx := context.Background()

	seedVendor(t, svc, "Alpha Diner")
	seedVendor(t, svc, "Beta Bistro")

	listings, err := svc.ListVendors(ctx)
	require.NoError(t, err)
	require.Len(t, listings, 2)
	for _, l := range listings {
		require.Len(t, l.Hours, len(domain.Weekdays))
	}
}
