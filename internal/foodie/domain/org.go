package domain

import (
	"time"

	"github.com/foodiehq/foodie/pkg/idx"
)

// OrgType distinguishes the two organization flavours on the platform.
type OrgType string

const (
	OrgTypeVendor  OrgType = "vendor"
	OrgTypeCourier OrgType = "courier"
)

func (t OrgType) Valid() bool {
	return t == OrgTypeVendor || t == OrgTypeCourier
}

// VendorKind classifies vendors; couriers carry no kind.
type VendorKind string

const (
	VendorKindRestaurant VendorKind = "restaurant"
	VendorKindHome       VendorKind = "home"
	VendorKindFoodStand  VendorKind = "food_stand"
)

func (k VendorKind) Valid() bool {
	return k == VendorKindRestaurant || k == VendorKindHome || k == VendorKindFoodStand
}

// Org is a vendor or courier organization. Its name is unique per org type.
// An organization outlives any single member; members are deleted
// independently.
type Org struct {
	ID        idx.ID
	Type      OrgType
	Name      string
	Address   string
	Kind      VendorKind // vendors only, empty for couriers
	CreatedAt time.Time
	UpdatedAt time.Time
}
