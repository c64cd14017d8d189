package domain

// InviteKind names one of the four invitation flavours. All four run through
// the same issuance/redemption flow; the kind only decides which organization
// type the invite binds to and which role the redeemed member receives.
type InviteKind string

const (
	InviteVendorAdmin  InviteKind = "vendor-admin-invite"
	InviteVendorUser   InviteKind = "vendor-user-invite"
	InviteCourierAdmin InviteKind = "courier-admin-invite"
	InviteCourierUser  InviteKind = "courier-user-invite"
)

// inviteGrants maps each kind to the organization type it targets and the
// role the new member is created with. The role is derived here, never from
// redeemer input.
var inviteGrants = map[InviteKind]struct {
	Org  OrgType
	Role OrgRole
}{
	InviteVendorAdmin:  {OrgTypeVendor, RoleAdmin},
	InviteVendorUser:   {OrgTypeVendor, RoleStaff},
	InviteCourierAdmin: {OrgTypeCourier, RoleAdmin},
	InviteCourierUser:  {OrgTypeCourier, RoleStaff},
}

func (k InviteKind) Valid() bool {
	_, ok := inviteGrants[k]
	return ok
}

// OrgType returns the organization type the kind targets.
func (k InviteKind) OrgType() OrgType {
	return inviteGrants[k].Org
}

// Role returns the role granted on redemption.
func (k InviteKind) Role() OrgRole {
	return inviteGrants[k].Role
}

// AdminInviteKind returns the org-admin invite kind for an organization type.
func AdminInviteKind(t OrgType) InviteKind {
	if t == OrgTypeCourier {
		return InviteCourierAdmin
	}
	return InviteVendorAdmin
}

// StaffInviteKind returns the staff invite kind for an organization type.
func StaffInviteKind(t OrgType) InviteKind {
	if t == OrgTypeCourier {
		return InviteCourierUser
	}
	return InviteVendorUser
}
