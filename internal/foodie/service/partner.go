package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/internal/foodie/store"
	"github.com/foodiehq/foodie/pkg/idx"
	"github.com/foodiehq/foodie/pkg/slogx"
)

var (
	// ErrDuplicateOrg rejects an organization name already taken within its
	// org type.
	ErrDuplicateOrg = errors.New("organization name already taken")

	// ErrInvalidPartner reports a malformed create request (empty name or
	// unknown vendor kind).
	ErrInvalidPartner = errors.New("invalid partner request")

	// ErrInvalidHours reports a schedule update whose opening time is not
	// strictly before its closing time, or whose times are malformed.
	ErrInvalidHours = errors.New("open_from must be before open_to")
)

// PartnerService onboards vendor and courier organizations and manages vendor
// opening schedules.
type PartnerService struct {
	Store store.Store
}

// VendorListing pairs a vendor with its weekly schedule.
type VendorListing struct {
	Org   domain.Org
	Hours []domain.OpenHours
}

// OpenHoursPatch is a partial update to one day's schedule entry. Nil fields
// keep their stored values.
type OpenHoursPatch struct {
	OpenFrom *string
	OpenTo   *string
	Closed   *bool
}

// CreateVendor registers a new vendor and seeds a closed 09:00-19:00 schedule
// row for each weekday, all in one transaction.
func (s *PartnerService) CreateVendor(ctx context.Context, name string, kind domain.VendorKind, address string) (domain.Org, error) {
	log := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" || !kind.Valid() {
		return domain.Org{}, ErrInvalidPartner
	}

	org := domain.Org{
		ID:      idx.New(),
		Type:    domain.OrgTypeVendor,
		Name:    name,
		Address: address,
		Kind:    kind,
	}

	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Orgs().CreateOrg(ctx, org); err != nil {
			return err
		}
		for _, day := range domain.Weekdays {
			oh := domain.OpenHours{
				ID:       idx.New(),
				OrgID:    org.ID,
				Day:      day,
				OpenFrom: domain.DefaultOpenFrom,
				OpenTo:   domain.DefaultOpenTo,
				Closed:   true,
			}
			if err := tx.OpenHours().CreateOpenHours(ctx, oh); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Org{}, ErrDuplicateOrg
		}
		log.Error("failed to create vendor", slog.Any("error", err))
		return domain.Org{}, err
	}

	log.Info("vendor created",
		slog.String("org_id", org.ID.String()),
		slog.String("kind", string(kind)),
	)

	return org, nil
}

// CreateCourier registers a new courier organization.
func (s *PartnerService) CreateCourier(ctx context.Context, name, address string) (domain.Org, error) {
	log := slogx.FromContext(ctx)

	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Org{}, ErrInvalidPartner
	}

	org := domain.Org{
		ID:      idx.New(),
		Type:    domain.OrgTypeCourier,
		Name:    name,
		Address: address,
	}

	if err := s.Store.Orgs().CreateOrg(ctx, org); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Org{}, ErrDuplicateOrg
		}
		log.Error("failed to create courier", slog.Any("error", err))
		return domain.Org{}, err
	}

	log.Info("courier created", slog.String("org_id", org.ID.String()))

	return org, nil
}

// ListVendors returns every vendor with its weekly schedule attached.
func (s *PartnerService) ListVendors(ctx context.Context) ([]VendorListing, error) {
	orgs, err := s.Store.Orgs().ListOrgs(ctx, domain.OrgTypeVendor)
	if err != nil {
		return nil, err
	}

	listings := make([]VendorListing, 0, len(orgs))
	for _, org := range orgs {
		hours, err := s.Store.OpenHours().ListOpenHours(ctx, org.ID)
		if err != nil {
			return nil, err
		}
		listings = append(listings, VendorListing{Org: org, Hours: hours})
	}
	return listings, nil
}

// ListCouriers returns every courier organization.
func (s *PartnerService) ListCouriers(ctx context.Context) ([]domain.Org, error) {
	return s.Store.Orgs().ListOrgs(ctx, domain.OrgTypeCourier)
}

// GetOpenHours returns the full weekly schedule for an organization.
func (s *PartnerService) GetOpenHours(ctx context.Context, orgID idx.ID) ([]domain.OpenHours, error) {
	return s.Store.OpenHours().ListOpenHours(ctx, orgID)
}

// UpdateOpenHours applies a partial update to one day's entry and returns the
// resulting week. The merged row must open strictly before it closes.
func (s *PartnerService) UpdateOpenHours(ctx context.Context, orgID idx.ID, day domain.Weekday, patch OpenHoursPatch) ([]domain.OpenHours, error) {
	log := slogx.FromContext(ctx)

	var week []domain.OpenHours
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		oh, err := tx.OpenHours().GetOpenHours(ctx, orgID, day)
		if err != nil {
			return err
		}

		if patch.OpenFrom != nil {
			oh.OpenFrom = *patch.OpenFrom
		}
		if patch.OpenTo != nil {
			oh.OpenTo = *patch.OpenTo
		}
		if patch.Closed != nil {
			oh.Closed = *patch.Closed
		}

		if !domain.ValidTimeOfDay(oh.OpenFrom) || !domain.ValidTimeOfDay(oh.OpenTo) {
			return ErrInvalidHours
		}
		// Fixed-width HH:MM:SS strings compare chronologically.
		if oh.OpenFrom >= oh.OpenTo {
			return ErrInvalidHours
		}

		if err := tx.OpenHours().UpdateOpenHours(ctx, oh); err != nil {
			return err
		}

		week, err = tx.OpenHours().ListOpenHours(ctx, orgID)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrInvalidHours) || errors.Is(err, store.ErrNotFound) {
			return nil, err
		}
		log.Error("failed to update open hours", slog.Any("error", err))
		return nil, err
	}

	return week, nil
}
