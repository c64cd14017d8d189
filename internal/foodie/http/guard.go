package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/internal/foodie/store"
	"github.com/foodiehq/foodie/pkg/httpx"
	"github.com/foodiehq/foodie/pkg/idx"
	"github.com/foodiehq/foodie/pkg/jwtx"
)

// Principal is the authenticated caller, resolved from a bearer credential
// against the store on every guarded request. OrgID is zero for the global
// scopes.
type Principal struct {
	ID    idx.ID
	Scope domain.Scope
	OrgID idx.ID
}

type principalCtxKey struct{}

// PrincipalFromContext returns the acting principal set by RequireScope.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalCtxKey{}).(Principal)
	return p, ok
}

// ContextWithPrincipal is exported for handler tests.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// RequireScope gates a route behind one scope. It verifies the bearer
// credential, requires the token's scope claim to equal the route's scope,
// and re-resolves the principal from the store so deleted accounts and
// demoted admins lose access the moment the row changes, not when the token
// expires. Every failure is the same 401.
func RequireScope(codec *jwtx.Codec, st store.Store, scope domain.Scope) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				writeUnauthorized(w)
				return
			}

			claims, err := codec.Verify(token)
			if err != nil || domain.Scope(claims.Scope) != scope {
				writeUnauthorized(w)
				return
			}

			id, err := idx.Parse(claims.Subject)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			principal, err := resolvePrincipal(r.Context(), st, scope, id)
			if err != nil {
				writeUnauthorized(w)
				return
			}

			ctx := ContextWithPrincipal(r.Context(), principal)
			ctx = httpx.ContextWithPrincipalID(ctx, principal.ID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// resolvePrincipal loads the principal row backing a verified token.
func resolvePrincipal(ctx context.Context, st store.Store, scope domain.Scope, id idx.ID) (Principal, error) {
	switch scope {
	case domain.ScopePlatformAdmin:
		a, err := st.Admins().GetAdminByID(ctx, id)
		if err != nil {
			return Principal{}, err
		}
		return Principal{ID: a.ID, Scope: scope}, nil

	case domain.ScopeUser:
		u, err := st.Users().GetUserByID(ctx, id)
		if err != nil {
			return Principal{}, err
		}
		return Principal{ID: u.ID, Scope: scope}, nil

	default:
		orgType, ok := scope.OrgType()
		if !ok {
			return Principal{}, errors.New("unknown scope")
		}
		ou, err := st.OrgUsers().GetOrgUserByID(ctx, orgType, id)
		if err != nil {
			return Principal{}, err
		}
		if scope.RequiresAdminRole() && ou.Role != domain.RoleAdmin {
			return Principal{}, errors.New("role downgraded")
		}
		return Principal{ID: ou.ID, Scope: scope, OrgID: ou.OrgID}, nil
	}
}

func bearerToken(r *http.Request) (string, bool) {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(auth) <= len(prefix) || !strings.EqualFold(auth[:len(prefix)], prefix) {
		return "", false
	}
	return auth[len(prefix):], true
}

// writeUnauthorized emits the one 401 body every credential failure shares.
func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="foodie"`)
	httpx.WriteError(w, http.StatusUnauthorized,
		"unauthorized", "Invalid credentials")
}
