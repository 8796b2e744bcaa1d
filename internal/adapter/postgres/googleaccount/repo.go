// Package googleaccount stores the single connected Google identity: its
// OAuth token and the Drive folder invoices are uploaded into.
package googleaccount

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/liamdatt/invoicegen/internal/adapter/postgres"
	"github.com/liamdatt/invoicegen/internal/domain"
)

// Repo provides Google account persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new Google account repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getSQL = `
SELECT email, token::text, drive_folder_id, drive_folder_name, updated_at
FROM google_accounts
WHERE id = 1`

const saveTokenSQL = `
INSERT INTO google_accounts (id, email, token, updated_at)
VALUES (1, $1, $2::jsonb, now())
ON CONFLICT (id) DO UPDATE SET
    email      = CASE WHEN EXCLUDED.email = '' THEN google_accounts.email ELSE EXCLUDED.email END,
    token      = EXCLUDED.token,
    updated_at = now()`

const setFolderSQL = `
INSERT INTO google_accounts (id, drive_folder_id, drive_folder_name, updated_at)
VALUES (1, $1, $2, now())
ON CONFLICT (id) DO UPDATE SET
    drive_folder_id   = EXCLUDED.drive_folder_id,
    drive_folder_name = EXCLUDED.drive_folder_name,
    updated_at        = now()`

const clearSQL = `DELETE FROM google_accounts WHERE id = 1`

// Get returns the connected account.
// Returns domain.ErrNotFound if no account has been connected.
func (r *Repo) Get(ctx context.Context) (*domain.GoogleAccount, error) {
	var (
		a     domain.GoogleAccount
		token *string
	)
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, getSQL).
		Scan(&a.Email, &token, &a.DriveFolderID, &a.DriveFolderName, &a.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "google_account", 1)
	}
	if token != nil {
		a.Token = []byte(*token)
	}
	return &a, nil
}

// SaveToken stores a serialized OAuth token. An empty email keeps the
// previously stored one.
func (r *Repo) SaveToken(ctx context.Context, email string, token []byte) error {
	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, saveTokenSQL, email, string(token))
	return postgres.MapError(err, "google_account", 1)
}

// SetFolder records the Drive folder new uploads are created in.
func (r *Repo) SetFolder(ctx context.Context, id, name string) error {
	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, setFolderSQL, id, name)
	return postgres.MapError(err, "google_account", 1)
}

// Clear forgets the account and its credentials. Files already in Drive are
// not touched.
func (r *Repo) Clear(ctx context.Context) error {
	_, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, clearSQL)
	return postgres.MapError(err, "google_account", 1)
}
