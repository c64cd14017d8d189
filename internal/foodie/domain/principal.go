package domain

import (
	"time"

	"github.com/foodiehq/foodie/pkg/idx"
)

// Scope names the principal partition an authentication or authorization
// check runs against. Admin-flavored org scopes additionally require the
// resolved principal to carry the admin role.
type Scope string

const (
	ScopePlatformAdmin Scope = "platform-admin"
	ScopeUser          Scope = "user"
	ScopeVendorStaff   Scope = "vendor-staff"
	ScopeVendorAdmin   Scope = "vendor-admin"
	ScopeCourierStaff  Scope = "courier-staff"
	ScopeCourierAdmin  Scope = "courier-admin"
)

func (s Scope) Valid() bool {
	switch s {
	case ScopePlatformAdmin, ScopeUser,
		ScopeVendorStaff, ScopeVendorAdmin,
		ScopeCourierStaff, ScopeCourierAdmin:
		return true
	}
	return false
}

// OrgType reports which organization type an org-scoped scope belongs to.
// The second return is false for the global scopes.
func (s Scope) OrgType() (OrgType, bool) {
	switch s {
	case ScopeVendorStaff, ScopeVendorAdmin:
		return OrgTypeVendor, true
	case ScopeCourierStaff, ScopeCourierAdmin:
		return OrgTypeCourier, true
	}
	return "", false
}

// RequiresAdminRole reports whether the scope demands role=admin on the
// resolved org principal.
func (s Scope) RequiresAdminRole() bool {
	return s == ScopeVendorAdmin || s == ScopeCourierAdmin
}

// OrgRole is the role tag carried by org-scoped principals.
type OrgRole string

const (
	RoleAdmin   OrgRole = "admin"
	RoleManager OrgRole = "manager"
	RoleStaff   OrgRole = "staff"
)

func (r OrgRole) Valid() bool {
	return r == RoleAdmin || r == RoleManager || r == RoleStaff
}

// Admin is a platform administrator.
type Admin struct {
	ID           idx.ID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// User is an end user ordering food on the platform.
type User struct {
	ID           idx.ID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	PhoneNumber  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// OrgUser is a principal scoped to exactly one organization. Its email is
// unique within the organization only; the same address may recur across
// organizations.
type OrgUser struct {
	ID           idx.ID
	OrgID        idx.ID
	OrgType      OrgType
	Email        string
	Role         OrgRole
	PasswordHash string
	FirstName    string
	LastName     string
	PhoneNumber  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
