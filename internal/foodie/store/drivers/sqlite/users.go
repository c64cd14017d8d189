package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/foodiehq/foodie/internal/foodie/domain"
	"github.com/foodiehq/foodie/pkg/idx"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, email, password_hash, first_name, last_name, phone_number, created_at, updated_at`

func scanUser(row *sql.Row) (domain.User, error) {
	var u domain.User
	var id string
	err := row.Scan(&id, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.PhoneNumber, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.ID, err = idx.Parse(id)
	if err != nil {
		return domain.User{}, err
	}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id idx.ID) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id.String())
	return scanUser(row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, first_name, last_name, phone_number, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID.String(), u.Email, u.PasswordHash, u.FirstName, u.LastName, u.PhoneNumber, u.CreatedAt, u.UpdatedAt)
	return mapConflict(err)
}
