package sqlite

import (
	"context"
	"time"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/internal/foodie/store"
	"github.com/foodiehq/foodie/pkg/idx"
)

type orgUsersRepo struct {
	db dbtx
}

// Columns are joined against orgs so callers always see the member's org type.
const orgUserColumns = `ou.id, ou.org_id, o.org_type, ou.email, ou.role, ou.password_hash,
	ou.first_name, ou.last_name, ou.phone_number, ou.created_at, ou.updated_at`

func scanOrgUser(scan func(dest ...any) error) (domain.OrgUser, error) {
	var u domain.OrgUser
	var id, orgID string
	err := scan(&id, &orgID, &u.OrgType, &u.Email, &u.Role, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.PhoneNumber, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.OrgUser{}, mapNotFound(err)
	}
	if u.ID, err = idx.Parse(id); err != nil {
		return domain.OrgUser{}, err
	}
	if u.OrgID, err = idx.Parse(orgID); err != nil {
		return domain.OrgUser{}, err
	}
	return u, nil
}

func (r *orgUsersRepo) GetOrgUserByID(ctx context.Context, orgType domain.OrgType, id idx.ID) (domain.OrgUser, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orgUserColumns+`
		 FROM org_users ou JOIN orgs o ON o.id = ou.org_id
		 WHERE o.org_type = ? AND ou.id = ?`,
		string(orgType), id.String())
	return scanOrgUser(row.Scan)
}

// GetOrgUserByEmail resolves an email to the single member holding it across
// all organizations of one type. Ambiguity is indistinguishable from absence
// to callers, so both map to ErrNotFound.
func (r *orgUsersRepo) GetOrgUserByEmail(ctx context.Context, orgType domain.OrgType, email string) (domain.OrgUser, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+orgUserColumns+`
		 FROM org_users ou JOIN orgs o ON o.id = ou.org_id
		 WHERE o.org_type = ? AND ou.email = ?
		 LIMIT 2`,
		string(orgType), email)
	if err != nil {
		return domain.OrgUser{}, err
	}
	defer rows.Close()

	var matches []domain.OrgUser
	for rows.Next() {
		u, err := scanOrgUser(rows.Scan)
		if err != nil {
			return domain.OrgUser{}, err
		}
		matches = append(matches, u)
	}
	if err := rows.Err(); err != nil {
		return domain.OrgUser{}, err
	}
	if len(matches) != 1 {
		return domain.OrgUser{}, store.ErrNotFound
	}
	return matches[0], nil
}

func (r *orgUsersRepo) GetMember(ctx context.Context, orgID idx.ID, email string) (domain.OrgUser, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+orgUserColumns+`
		 FROM org_users ou JOIN orgs o ON o.id = ou.org_id
		 WHERE ou.org_id = ? AND ou.email = ?`,
		orgID.String(), email)
	return scanOrgUser(row.Scan)
}

func (r *orgUsersRepo) CreateOrgUser(ctx context.Context, u domain.OrgUser) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO org_users (id, org_id, email, role, password_hash, first_name, last_name, phone_number, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID.String(), u.OrgID.String(), u.Email, string(u.Role), u.PasswordHash,
		u.FirstName, u.LastName, u.PhoneNumber, u.CreatedAt, u.UpdatedAt)
	return mapConflict(err)
}
