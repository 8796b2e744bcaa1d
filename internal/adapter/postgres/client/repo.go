// Package client implements the Client repository using PostgreSQL.
package client

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/liamdatt/invoicegen/internal/adapter/postgres"
	"github.com/liamdatt/invoicegen/internal/domain"
)

// Repo provides client persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new client repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

var clientColumns = []string{"id", "name", "email", "phone", "address", "created_at", "updated_at"}

const insertClientSQL = `
INSERT INTO clients (name, email, phone, address)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at, updated_at`

// Create inserts a client.
func (r *Repo) Create(ctx context.Context, c *domain.Client) (*domain.Client, error) {
	out := *c
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, insertClientSQL, c.Name, c.Email, c.Phone, c.Address).
		Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "client", "new")
	}
	return &out, nil
}

// GetByID returns a client by primary key.
// Returns domain.ErrNotFound if the client does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	sql, args, err := postgres.Builder.
		Select(clientColumns...).
		From("clients").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get client: %w", err)
	}

	c, err := scanClient(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "client", id)
	}
	return c, nil
}

// ListWithoutActiveFollowUp returns clients that may be enrolled: those
// with no follow-up profile or only an inactive one. Ordered by name.
func (r *Repo) ListWithoutActiveFollowUp(ctx context.Context, limit int) ([]domain.Client, error) {
	b := postgres.Builder.
		Select(clientColumns...).
		From("clients c").
		Where(squirrel.Expr(`NOT EXISTS (
			SELECT 1 FROM follow_up_profiles p
			WHERE p.client_id = c.id AND p.is_active)`)).
		OrderBy("c.name ASC", "c.id ASC")
	if limit > 0 {
		b = b.Limit(uint64(limit))
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list eligible clients: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "client", "eligible")
	}
	defer rows.Close()

	var out []domain.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "client", "eligible")
	}
	return out, nil
}

func scanClient(row pgx.Row) (*domain.Client, error) {
	var c domain.Client
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
