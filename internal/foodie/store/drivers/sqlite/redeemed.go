package sqlite

import (
	"context"
	"time"

	"github.com/foodiehq/foodie/pkg/idx"
)

type redeemedInvitesRepo struct {
	db dbtx
}

func (r *redeemedInvitesRepo) RecordRedemption(ctx context.Context, jti string, orgID idx.ID, email string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO redeemed_invites (jti, org_id, email, redeemed_at) VALUES (?, ?, ?, ?)`,
		jti, orgID.String(), email, time.Now().UTC())
	return mapConflict(err)
}

func (r *redeemedInvitesRepo) IsRedeemed(ctx context.Context, jti string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM redeemed_invites WHERE jti = ?`, jti).Scan(&n)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
