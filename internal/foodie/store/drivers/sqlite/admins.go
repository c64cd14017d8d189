package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/pkg/idx"
)

type adminsRepo struct {
	db dbtx
}

const adminColumns = `id, email, password_hash, first_name, last_name, created_at, updated_at`

func scanAdmin(row *sql.Row) (domain.Admin, error) {
	var a domain.Admin
	var id string
	err := row.Scan(&id, &a.Email, &a.PasswordHash, &a.FirstName, &a.LastName, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Admin{}, mapNotFound(err)
	}
	a.ID, err = idx.Parse(id)
	if err != nil {
		return domain.Admin{}, err
	}
	return a, nil
}

func (r *adminsRepo) GetAdminByID(ctx context.Context, id idx.ID) (domain.Admin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE id = ?`, id.String())
	return scanAdmin(row)
}

func (r *adminsRepo) GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+adminColumns+` FROM admins WHERE email = ?`, email)
	return scanAdmin(row)
}

func (r *adminsRepo) CreateAdmin(ctx context.Context, a domain.Admin) error {
	now := time.Now().UTC()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO admins (id, email, password_hash, first_name, last_name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.ID.String(), a.Email, a.PasswordHash, a.FirstName, a.LastName, a.CreatedAt, a.UpdatedAt)
	return mapConflict(err)
}
