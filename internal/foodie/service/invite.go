package service

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/internal/foodie/store"
	"github.com/foodiehq/foodie/pkg/cryptox"
	"github.com/foodiehq/foodie/pkg/idx"
	"github.com/foodiehq/foodie/pkg/jwtx"
	"github.com/foodiehq/foodie/pkg/slogx"
)

var (
	ErrOrgNotFound = errors.New("organization not found")

	// ErrInvalidMintRequest reports a mint call with a missing email or an
	// unknown invite kind.
	ErrInvalidMintRequest = errors.New("invalid invite request")

	// ErrDuplicateMember rejects minting an invite for an email that already
	// belongs to the target organization.
	ErrDuplicateMember = errors.New("email already belongs to this organization")

	// ErrInvalidInvite is the single redemption/inspection failure. Bad
	// signature, expiry, dangling org, consumed jti and existing membership
	// all collapse into it; an invite holder learns nothing beyond "no".
	ErrInvalidInvite = errors.New("invite is invalid or expired")

	// ErrWeakPassword rejects redemption passwords with fewer than six
	// non-whitespace characters.
	ErrWeakPassword = errors.New("password must contain at least 6 non-whitespace characters")
)

// minPasswordChars counts non-whitespace runes, so padding a short password
// with spaces does not help.
const minPasswordChars = 6

// InviteService mints, inspects and redeems invitation tokens. An invitation
// is a signed claim binding (organization, email, kind); possession of the
// token plus a chosen password is all a redemption needs.
type InviteService struct {
	Store store.Store
	Codec *jwtx.Codec

	// InviteTTL bounds every minted invitation.
	InviteTTL time.Duration
}

// MintedInvite is a freshly signed invitation.
type MintedInvite struct {
	Token     string
	ExpiresAt time.Time
}

// InviteDetails is the preview a prospective member sees before redeeming.
type InviteDetails struct {
	Email   string
	Role    domain.OrgRole
	OrgType domain.OrgType
	OrgName string
}

// Profile carries the redeemer-supplied account fields. Role is deliberately
// absent; it derives from the invite kind alone.
type Profile struct {
	FirstName   string
	LastName    string
	PhoneNumber string
	Password    string
}

// Mint signs a new invitation of the given kind for an email, bound to one
// organization. The token is returned to the caller for out-of-band delivery.
func (s *InviteService) Mint(ctx context.Context, kind domain.InviteKind, orgID idx.ID, email string) (MintedInvite, error) {
	log := slogx.FromContext(ctx)

	if !kind.Valid() || email == "" {
		return MintedInvite{}, ErrInvalidMintRequest
	}

	// 1. The target organization must exist and match the kind's org type.
	org, err := s.Store.Orgs().GetOrg(ctx, kind.OrgType(), orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return MintedInvite{}, ErrOrgNotFound
		}
		log.Error("failed to fetch organization", slog.Any("error", err))
		return MintedInvite{}, err
	}

	// 2. Refuse to mint for an email that is already a member. Redemption
	// still enforces this transactionally; the early check just gives the
	// admin a useful error instead of a dud token.
	_, err = s.Store.OrgUsers().GetMember(ctx, org.ID, email)
	if err == nil {
		return MintedInvite{}, ErrDuplicateMember
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check membership", slog.Any("error", err))
		return MintedInvite{}, err
	}

	// 3. Sign the claim.
	token, err := s.Codec.Issue(jwtx.Claims{
		OrgID: org.ID.String(),
		Email: email,
		Kind:  string(kind),
	}, s.InviteTTL)
	if err != nil {
		log.Error("failed to sign invite token", slog.Any("error", err))
		return MintedInvite{}, err
	}

	// Read the stamped expiry back rather than recomputing it, so the value
	// reported to the caller is exactly the one inside the token.
	claims, err := s.Codec.Verify(token)
	if err != nil {
		return MintedInvite{}, err
	}

	log.Debug("invite minted",
		slog.String("org_id", org.ID.String()),
		slog.String("kind", string(kind)),
	)

	return MintedInvite{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Inspect validates a token and describes what accepting it would grant.
// It never consumes the token.
func (s *InviteService) Inspect(ctx context.Context, token string) (InviteDetails, error) {
	claims, org, err := s.validate(ctx, token)
	if err != nil {
		return InviteDetails{}, err
	}

	kind := domain.InviteKind(claims.Kind)
	return InviteDetails{
		Email:   claims.Email,
		Role:    kind.Role(),
		OrgType: kind.OrgType(),
		OrgName: org.Name,
	}, nil
}

// Redeem consumes a token, creating the org-scoped principal it describes.
// The membership insert and the jti consumption record commit atomically;
// concurrent redemptions of one token are serialized by storage uniqueness,
// and every loser observes ErrInvalidInvite.
func (s *InviteService) Redeem(ctx context.Context, token string, profile Profile) (domain.OrgUser, error) {
	log := slogx.FromContext(ctx)

	// 1. Re-validate independently of any earlier Inspect call.
	claims, org, err := s.validate(ctx, token)
	if err != nil {
		return domain.OrgUser{}, err
	}

	// 2. Reject weak passwords before any write.
	if !strongEnough(profile.Password) {
		return domain.OrgUser{}, ErrWeakPassword
	}

	hash, err := cryptox.HashPassword(profile.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.OrgUser{}, err
	}

	kind := domain.InviteKind(claims.Kind)
	member := domain.OrgUser{
		ID:           idx.New(),
		OrgID:        org.ID,
		OrgType:      org.Type,
		Email:        claims.Email,
		Role:         kind.Role(),
		PasswordHash: hash,
		FirstName:    profile.FirstName,
		LastName:     profile.LastName,
		PhoneNumber:  profile.PhoneNumber,
	}

	// 3. Consume the jti and create the member in one transaction. Either
	// uniqueness violation rolls the whole thing back.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.RedeemedInvites().RecordRedemption(ctx, claims.ID, org.ID, claims.Email); err != nil {
			return err
		}
		return tx.OrgUsers().CreateOrgUser(ctx, member)
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.OrgUser{}, ErrInvalidInvite
		}
		log.Error("failed to redeem invite", slog.Any("error", err))
		return domain.OrgUser{}, err
	}

	log.Info("invite redeemed",
		slog.String("org_id", org.ID.String()),
		slog.String("member_id", member.ID.String()),
		slog.String("role", string(member.Role)),
	)

	return member, nil
}

// validate runs the checks shared by Inspect and Redeem: signature/expiry,
// claim shape, live organization, unconsumed jti and absent membership.
func (s *InviteService) validate(ctx context.Context, token string) (jwtx.Claims, domain.Org, error) {
	log := slogx.FromContext(ctx)

	claims, err := s.Codec.Verify(token)
	if err != nil {
		return jwtx.Claims{}, domain.Org{}, ErrInvalidInvite
	}

	kind := domain.InviteKind(claims.Kind)
	if !kind.Valid() || claims.Email == "" || claims.ID == "" {
		return jwtx.Claims{}, domain.Org{}, ErrInvalidInvite
	}

	orgID, err := idx.Parse(claims.OrgID)
	if err != nil {
		return jwtx.Claims{}, domain.Org{}, ErrInvalidInvite
	}

	org, err := s.Store.Orgs().GetOrg(ctx, kind.OrgType(), orgID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return jwtx.Claims{}, domain.Org{}, ErrInvalidInvite
		}
		log.Error("failed to fetch organization", slog.Any("error", err))
		return jwtx.Claims{}, domain.Org{}, err
	}

	redeemed, err := s.Store.RedeemedInvites().IsRedeemed(ctx, claims.ID)
	if err != nil {
		log.Error("failed to check redemption ledger", slog.Any("error", err))
		return jwtx.Claims{}, domain.Org{}, err
	}
	if redeemed {
		return jwtx.Claims{}, domain.Org{}, ErrInvalidInvite
	}

	_, err = s.Store.OrgUsers().GetMember(ctx, org.ID, claims.Email)
	if err == nil {
		return jwtx.Claims{}, domain.Org{}, ErrInvalidInvite
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check membership", slog.Any("error", err))
		return jwtx.Claims{}, domain.Org{}, err
	}

	return claims, org, nil
}

func strongEnough(password string) bool {
	n := 0
	for _, r := range password {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n >= minPasswordChars
}
