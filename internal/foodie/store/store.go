package store

import (
	"context"
	"errors"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/pkg/idx"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable.
type Store interface {
	Admins() Admins
	Users() Users
	Orgs() Orgs
	OrgUsers() OrgUsers
	OpenHours() OpenHours
	RedeemedInvites() RedeemedInvites

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, rolling back if fn returns an
	// error and committing otherwise. This is the recommended way to run
	// multi-step writes.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying connection pool.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Admins interface {
	// GetAdminByID returns a platform admin by id.
	GetAdminByID(ctx context.Context, id idx.ID) (domain.Admin, error)

	// GetAdminByEmail is used during authentication.
	GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error)

	// CreateAdmin inserts a new platform admin (id provided by app via ULID).
	CreateAdmin(ctx context.Context, a domain.Admin) error
}

type Users interface {
	GetUserByID(ctx context.Context, id idx.ID) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	CreateUser(ctx context.Context, u domain.User) error
}

type Orgs interface {
	// GetOrg fetches an organization of the given type by id.
	GetOrg(ctx context.Context, orgType domain.OrgType, id idx.ID) (domain.Org, error)

	// CreateOrg inserts a new organization. Returns ErrAlreadyExists when the
	// (org_type, name) pair is taken.
	CreateOrg(ctx context.Context, o domain.Org) error

	// ListOrgs returns all organizations of one type, newest first.
	ListOrgs(ctx context.Context, orgType domain.OrgType) ([]domain.Org, error)
}

type OrgUsers interface {
	// GetOrgUserByID resolves an org principal by id within an org type.
	GetOrgUserByID(ctx context.Context, orgType domain.OrgType, id idx.ID) (domain.OrgUser, error)

	// GetOrgUserByEmail finds the single principal with this email across all
	// organizations of one type. Zero or multiple matches both return
	// ErrNotFound: an ambiguous email cannot authenticate.
	GetOrgUserByEmail(ctx context.Context, orgType domain.OrgType, email string) (domain.OrgUser, error)

	// GetMember finds a principal by (org, email), the pair that is unique at
	// the storage layer.
	GetMember(ctx context.Context, orgID idx.ID, email string) (domain.OrgUser, error)

	// CreateOrgUser inserts a new org principal. Returns ErrAlreadyExists when
	// (org_id, email) is taken; this is the redemption serialization point.
	CreateOrgUser(ctx context.Context, u domain.OrgUser) error
}

type OpenHours interface {
	// CreateOpenHours inserts one schedule row. Returns ErrAlreadyExists when
	// (org_id, day) is taken.
	CreateOpenHours(ctx context.Context, oh domain.OpenHours) error

	// GetOpenHours fetches one day's entry for an organization.
	GetOpenHours(ctx context.Context, orgID idx.ID, day domain.Weekday) (domain.OpenHours, error)

	// ListOpenHours returns the full week for an organization in schedule order.
	ListOpenHours(ctx context.Context, orgID idx.ID) ([]domain.OpenHours, error)

	// UpdateOpenHours overwrites the times and closed flag of an existing row.
	UpdateOpenHours(ctx context.Context, oh domain.OpenHours) error
}

type RedeemedInvites interface {
	// RecordRedemption marks an invitation's jti as consumed. Returns
	// ErrAlreadyExists when the jti was consumed before.
	RecordRedemption(ctx context.Context, jti string, orgID idx.ID, email string) error

	// IsRedeemed reports whether the jti has been consumed.
	IsRedeemed(ctx context.Context, jti string) (bool, error)
}
