package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/pkg/idx"
)

type orgsRepo struct {
	db dbtx
}

const orgColumns = `id, org_type, name, address, vendor_kind, created_at, updated_at`

func scanOrg(scan func(dest ...any) error) (domain.Org, error) {
	var o domain.Org
	var id string
	var kind sql.NullString
	err := scan(&id, &o.Type, &o.Name, &o.Address, &kind, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return domain.Org{}, mapNotFound(err)
	}
	if kind.Valid {
		o.Kind = domain.VendorKind(kind.String)
	}
	o.ID, err = idx.Parse(id)
	if err != nil {
		return domain.Org{}, err
	}
	return o, nil
}

func (r *orgsRepo) GetOrg(ctx context.Context, orgType domain.OrgType, id idx.ID) (domain.Org, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orgColumns+` FROM orgs WHERE org_type = ? AND id = ?`,
		string(orgType), id.String())
	return scanOrg(row.Scan)
}

func (r *orgsRepo) CreateOrg(ctx context.Context, o domain.Org) error {
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	if o.UpdatedAt.IsZero() {
		o.UpdatedAt = now
	}

	// Couriers carry no kind; store NULL rather than an empty string.
	var kind sql.NullString
	if o.Kind != "" {
		kind = sql.NullString{String: string(o.Kind), Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO orgs (id, org_type, name, address, vendor_kind, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		o.ID.String(), string(o.Type), o.Name, o.Address, kind, o.CreatedAt, o.UpdatedAt)
	return mapConflict(err)
}

func (r *orgsRepo) ListOrgs(ctx context.Context, orgType domain.OrgType) ([]domain.Org, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orgColumns+` FROM orgs WHERE org_type = ? ORDER BY created_at DESC, id DESC`,
		string(orgType))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []domain.Org
	for rows.Next() {
		o, err := scanOrg(rows.Scan)
		if err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}
