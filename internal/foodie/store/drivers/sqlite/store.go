package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/foodiehq/foodie/internal/foodie/store"

	sqlite3 "modernc.org/sqlite"
	sqlitelib "modernc.org/sqlite/lib"
)

// dbtx is the common surface of *sql.DB and *sql.Tx the repositories run on.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db  *sql.DB
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// One connection: session pragmas hold for every statement and
	// concurrent writers queue in the pool instead of seeing SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db, dsn: dsn}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Ensure rollback happens if we panic or return early with an error.
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	if err := fn(tx); err != nil {
		return err // rollback happens in defer
	}

	return tx.Commit()
}

func (s *Store) Admins() store.Admins                   { return &adminsRepo{db: s.db} }
func (s *Store) Users() store.Users                     { return &usersRepo{db: s.db} }
func (s *Store) Orgs() store.Orgs                       { return &orgsRepo{db: s.db} }
func (s *Store) OrgUsers() store.OrgUsers               { return &orgUsersRepo{db: s.db} }
func (s *Store) OpenHours() store.OpenHours             { return &openHoursRepo{db: s.db} }
func (s *Store) RedeemedInvites() store.RedeemedInvites { return &redeemedInvitesRepo{db: s.db} }

// mapNotFound translates sql.ErrNoRows into the driver-agnostic sentinel.
func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapConflict translates unique-constraint violations into ErrAlreadyExists.
// Services lean on this instead of racy pre-checks.
func mapConflict(err error) error {
	if err == nil {
		return nil
	}

	var se *sqlite3.Error
	if errors.As(err, &se) {
		switch se.Code() {
		case sqlitelib.SQLITE_CONSTRAINT_UNIQUE, sqlitelib.SQLITE_CONSTRAINT_PRIMARYKEY:
			return store.ErrAlreadyExists
		}
	}
	return err
}
