package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/internal/foodie/store"
	"github.com/foodiehq/foodie/pkg/cryptox"
	"github.com/foodiehq/foodie/pkg/jwtx"
	"github.com/foodiehq/foodie/pkg/slogx"
)

// ErrInvalidCredentials is the single authentication failure. Unknown email,
// ambiguous email, wrong password and missing admin role all collapse into it
// so responses cannot be used to probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// SessionService authenticates principals and issues short-lived bearer
// credentials.
type SessionService struct {
	Store store.Store
	Codec *jwtx.Codec

	// AccessTTL bounds every issued bearer credential.
	AccessTTL time.Duration
}

// Session is an issued bearer credential.
type Session struct {
	AccessToken string
	ExpiresIn   time.Duration
}

// Authenticate verifies an email/password pair against the principal
// partition named by scope and returns a signed bearer credential carrying
// the principal id and scope.
func (s *SessionService) Authenticate(ctx context.Context, scope domain.Scope, email, password string) (Session, error) {
	log := slogx.FromContext(ctx)

	if !scope.Valid() {
		return Session{}, ErrInvalidCredentials
	}

	// 1. Resolve the principal within the scope's partition.
	id, hash, role, err := s.lookup(ctx, scope, email)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("principal lookup failed", slog.Any("error", err))
			return Session{}, err
		}
		// Burn comparable time on a throwaway hash so absent accounts are not
		// distinguishable by response latency.
		_ = cryptox.VerifyPassword(password, dummyHash)
		return Session{}, ErrInvalidCredentials
	}

	// 2. Admin-flavored org scopes require the admin role tag.
	if scope.RequiresAdminRole() && role != domain.RoleAdmin {
		log.Warn("non-admin principal attempted admin-scoped login",
			slog.String("scope", string(scope)),
		)
		return Session{}, ErrInvalidCredentials
	}

	// 3. Constant-time password verification.
	if err := cryptox.VerifyPassword(password, hash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			return Session{}, ErrInvalidCredentials
		}
		log.Error("password verification failed", slog.Any("error", err))
		return Session{}, err
	}

	// 4. Issue the bearer credential.
	claims := jwtx.Claims{Scope: string(scope)}
	claims.Subject = id
	token, err := s.Codec.Issue(claims, s.AccessTTL)
	if err != nil {
		log.Error("failed to sign access token", slog.Any("error", err))
		return Session{}, err
	}

	log.Debug("session issued",
		slog.String("sub", id),
		slog.String("scope", string(scope)),
	)

	return Session{AccessToken: token, ExpiresIn: s.AccessTTL}, nil
}

// lookup returns (id, password hash, role) for the single principal holding
// this email within the scope's partition. Role is empty for global scopes.
func (s *SessionService) lookup(ctx context.Context, scope domain.Scope, email string) (string, string, domain.OrgRole, error) {
	switch scope {
	case domain.ScopePlatformAdmin:
		a, err := s.Store.Admins().GetAdminByEmail(ctx, email)
		if err != nil {
			return "", "", "", err
		}
		return a.ID.String(), a.PasswordHash, "", nil

	case domain.ScopeUser:
		u, err := s.Store.Users().GetUserByEmail(ctx, email)
		if err != nil {
			return "", "", "", err
		}
		return u.ID.String(), u.PasswordHash, "", nil

	default:
		orgType, _ := scope.OrgType()
		ou, err := s.Store.OrgUsers().GetOrgUserByEmail(ctx, orgType, email)
		if err != nil {
			return "", "", "", err
		}
		return ou.ID.String(), ou.PasswordHash, ou.Role, nil
	}
}

// dummyHash is verified against when no principal matches, keeping the
// success and failure paths close in duration. Argon2id of an unguessable
// random string.
const dummyHash = "$argon2id$v=19$m=19456,t=2,p=1$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
