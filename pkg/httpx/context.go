package httpx

import "context"

type ctxKey string

// CtxKeyPrincipalID holds the authenticated principal's id. The access guard
// sets it; rate limiting keys off it.
const CtxKeyPrincipalID ctxKey = "principal_id"

func PrincipalIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyPrincipalID).(string); ok {
		return v
	}
	return ""
}

func ContextWithPrincipalID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CtxKeyPrincipalID, id)
}
