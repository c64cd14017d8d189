package sqlite

import (
	"context"
	"database/sql"

	"github.com/foodiehq/foodie/internal/foodie/store"
)

type txStore struct {
	tx *sql.Tx
}

func newTx(tx *sql.Tx) *txStore {
	return &txStore{tx: tx}
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // outer DB stays open; caller commits or rolls back

// Ping is a no-op inside a transaction; the connection is already held.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return sql.ErrTxDone
}

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx starts

func (t *txStore) Admins() store.Admins                   { return &adminsRepo{db: t.tx} }
func (t *txStore) Users() store.Users                     { return &usersRepo{db: t.tx} }
func (t *txStore) Orgs() store.Orgs                       { return &orgsRepo{db: t.tx} }
func (t *txStore) OrgUsers() store.OrgUsers               { return &orgUsersRepo{db: t.tx} }
func (t *txStore) OpenHours() store.OpenHours             { return &openHoursRepo{db: t.tx} }
func (t *txStore) RedeemedInvites() store.RedeemedInvites { return &redeemedInvitesRepo{db: t.tx} }
