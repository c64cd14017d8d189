package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/internal/foodie/store/drivers/sqlite"
	"github.com/foodiehq/foodie/pkg/cryptox"
	"github.com/foodiehq/foodie/pkg/idx"
	"github.com/foodiehq/foodie/pkg/jwtx"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "foodie-service-test")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

// newTestStore opens a throwaway file-backed database. File-backed rather
// than :memory: so multiple pooled connections observe the same data.
func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", filepath.Join(t.TempDir(), "foodie.db"))
	st, err := sqlite.NewStore(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func newInviteCodec() *jwtx.Codec {
	return jwtx.NewCodec([]byte("invite-test-secret"), "foodie-test")
}

func newSessionCodec() *jwtx.Codec {
	return jwtx.NewCodec([]byte("session-test-secret"), "foodie-test")
}

func seedVendor(t *testing.T, svc *PartnerService, name string) domain.Org {
	t.Helper()

	org, err := svc.CreateVendor(context.Background(), name, domain.VendorKindRestaurant, "1 Test St")
	require.NoError(t, err)
	return org
}

func seedCourier(t *testing.T, svc *PartnerService, name string) domain.Org {
	t.Helper()

	org, err := svc.CreateCourier(context.Background(), name, "2 Test St")
	require.NoError(t, err)
	return org
}

func seedAdmin(t *testing.T, st *sqlite.Store, email, password string) domain.Admin {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	admin := domain.Admin{
		ID:           idx.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Ada",
		LastName:     "Admin",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, st.Admins().CreateAdmin(context.Background(), admin))
	return admin
}

func seedMember(t *testing.T, st *sqlite.Store, org domain.Org, email string, role domain.OrgRole, password string) domain.OrgUser {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	member := domain.OrgUser{
		ID:           idx.New(),
		OrgID:        org.ID,
		OrgType:      org.Type,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		FirstName:    "Mem",
		LastName:     "Ber",
		PhoneNumber:  "0400000000",
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, st.OrgUsers().CreateOrgUser(context.Background(), member))
	return member
}
