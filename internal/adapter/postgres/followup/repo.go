// Package followup implements persistence for follow-up profiles, the
// singleton follow-up settings row, and the append-only message log.
package followup

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/liamdatt/invoicegen/internal/adapter/postgres"
	"github.com/liamdatt/invoicegen/internal/domain"
)

// Repo provides follow-up persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new follow-up repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

const ensureSettingsSQL = `
INSERT INTO follow_up_settings (id, default_interval_days)
VALUES (1, $1)
ON CONFLICT (id) DO NOTHING`

const getSettingsSQL = `
SELECT default_interval_days, business_name, updated_at
FROM follow_up_settings
WHERE id = 1`

const upsertSettingsSQL = `
INSERT INTO follow_up_settings (id, default_interval_days, business_name, updated_at)
VALUES (1, $1, $2, now())
ON CONFLICT (id) DO UPDATE SET
    default_interval_days = EXCLUDED.default_interval_days,
    business_name         = EXCLUDED.business_name,
    updated_at            = now()
RETURNING default_interval_days, business_name, updated_at`

const upsertProfileSQL = `
INSERT INTO follow_up_profiles (client_id, is_active, last_service_date, interval_override_days)
VALUES ($1, TRUE, $2, $3)
ON CONFLICT (client_id) DO UPDATE SET
    is_active              = TRUE,
    last_service_date      = EXCLUDED.last_service_date,
    interval_override_days = EXCLUDED.interval_override_days,
    updated_at             = now()
RETURNING id`

const saveProfileSQL = `
UPDATE follow_up_profiles SET
    is_active              = $2,
    last_service_date      = $3,
    interval_override_days = $4,
    next_follow_up_date    = $5,
    last_sent_at           = $6,
    last_error             = $7,
    updated_at             = now()
WHERE id = $1
RETURNING updated_at`

const insertMessageSQL = `
INSERT INTO follow_up_messages (id, profile_id, status, trigger_kind, body, provider_message_id, error_text)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING created_at`

const listMessagesSQL = `
SELECT id, profile_id, status, trigger_kind, body, provider_message_id, error_text, created_at
FROM follow_up_messages
WHERE profile_id = $1
ORDER BY created_at DESC, id
LIMIT $2`

var profileColumns = []string{
	"p.id", "p.client_id", "p.is_active", "p.last_service_date", "p.interval_override_days",
	"p.next_follow_up_date", "p.last_sent_at", "p.last_error", "p.created_at", "p.updated_at",
	"c.id", "c.name", "c.email", "c.phone", "c.address",
}

func selectProfiles() squirrel.SelectBuilder {
	return postgres.Builder.
		Select(profileColumns...).
		From("follow_up_profiles p").
		Join("clients c ON c.id = p.client_id")
}

// ---------------------------------------------------------------------------
// Settings
// ---------------------------------------------------------------------------

// GetOrCreateSettings returns the singleton settings row, creating it with
// the default interval when absent. Safe under concurrent callers.
func (r *Repo) GetOrCreateSettings(ctx context.Context) (*domain.FollowUpSettings, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if _, err := q.Exec(ctx, ensureSettingsSQL, domain.DefaultFollowUpDays); err != nil {
		return nil, postgres.MapError(err, "follow_up_settings", 1)
	}

	var s domain.FollowUpSettings
	if err := q.QueryRow(ctx, getSettingsSQL).Scan(&s.DefaultIntervalDays, &s.BusinessDisplayName, &s.UpdatedAt); err != nil {
		return nil, postgres.MapError(err, "follow_up_settings", 1)
	}
	return &s, nil
}

// SaveSettings writes the singleton settings row.
func (r *Repo) SaveSettings(ctx context.Context, s domain.FollowUpSettings) (*domain.FollowUpSettings, error) {
	var out domain.FollowUpSettings
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, upsertSettingsSQL, s.DefaultIntervalDays, s.BusinessDisplayName).
		Scan(&out.DefaultIntervalDays, &out.BusinessDisplayName, &out.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "follow_up_settings", 1)
	}
	return &out, nil
}

// ---------------------------------------------------------------------------
// Profiles
// ---------------------------------------------------------------------------

// UpsertProfile creates the client's profile or reactivates and overwrites
// the existing one. The cached next date is left for the caller to refresh.
func (r *Repo) UpsertProfile(ctx context.Context, clientID int64, lastService *time.Time, override *int) (*domain.FollowUpProfile, error) {
	var id int64
	err := postgres.QuerierFromCtx(ctx, r.pool).
		QueryRow(ctx, upsertProfileSQL, clientID, lastService, override).
		Scan(&id)
	if err != nil {
		return nil, postgres.MapError(err, "follow_up_profile", fmt.Sprintf("client=%d", clientID))
	}
	return r.GetProfile(ctx, id)
}

// GetProfile returns a profile with its client.
// Returns domain.ErrNotFound if the profile does not exist.
func (r *Repo) GetProfile(ctx context.Context, id int64) (*domain.FollowUpProfile, error) {
	return r.getProfile(ctx, id, false)
}

// GetProfileForUpdate is GetProfile with the row locked until the
// surrounding transaction ends.
func (r *Repo) GetProfileForUpdate(ctx context.Context, id int64) (*domain.FollowUpProfile, error) {
	if !postgres.InTx(ctx) {
		return nil, fmt.Errorf("follow_up_profile %d: GetProfileForUpdate requires a transaction", id)
	}
	return r.getProfile(ctx, id, true)
}

func (r *Repo) getProfile(ctx context.Context, id int64, lock bool) (*domain.FollowUpProfile, error) {
	b := selectProfiles().Where(squirrel.Eq{"p.id": id})
	if lock {
		b = b.Suffix("FOR UPDATE OF p")
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get profile: %w", err)
	}

	p, err := scanProfile(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "follow_up_profile", id)
	}
	return p, nil
}

// ListProfiles returns profiles matching the filter, ordered by id.
func (r *Repo) ListProfiles(ctx context.Context, f domain.ProfileFilter) ([]domain.FollowUpProfile, error) {
	b := selectProfiles().OrderBy("p.id ASC")
	if f.ActiveOnly {
		b = b.Where(squirrel.Eq{"p.is_active": true})
	}
	if f.DueOn != nil {
		b = b.Where(squirrel.Expr("p.next_follow_up_date <= ?::date", f.DueOn.Format(time.DateOnly)))
	}
	if f.WithoutOverride {
		b = b.Where(squirrel.Eq{"p.interval_override_days": nil})
	}
	if f.NeverSent {
		b = b.Where(squirrel.Eq{"p.last_sent_at": nil})
	}
	if f.AfterID > 0 {
		b = b.Where(squirrel.Gt{"p.id": f.AfterID})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list profiles: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "follow_up_profile", "list")
	}
	defer rows.Close()

	var out []domain.FollowUpProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "follow_up_profile", "list")
	}
	return out, nil
}

// SaveProfile writes every mutable column of the profile.
func (r *Repo) SaveProfile(ctx context.Context, p *domain.FollowUpProfile) error {
	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, saveProfileSQL,
		p.ID, p.IsActive, p.LastServiceDate, p.IntervalOverrideDays,
		p.NextFollowUpDate, p.LastSentAt, p.LastError,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return postgres.MapError(err, "follow_up_profile", p.ID)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Message log
// ---------------------------------------------------------------------------

// AppendMessage inserts a message log entry. Entries are never updated.
func (r *Repo) AppendMessage(ctx context.Context, e domain.MessageLogEntry) (*domain.MessageLogEntry, error) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, insertMessageSQL,
		e.ID, e.ProfileID, string(e.Status), string(e.Trigger), e.Body, e.ProviderMessageID, e.ErrorText,
	).Scan(&e.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "follow_up_message", e.ID)
	}
	return &e, nil
}

// ListMessages returns the newest entries of a profile first.
func (r *Repo) ListMessages(ctx context.Context, profileID int64, limit int) ([]domain.MessageLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, listMessagesSQL, profileID, limit)
	if err != nil {
		return nil, postgres.MapError(err, "follow_up_message", profileID)
	}
	defer rows.Close()

	var out []domain.MessageLogEntry
	for rows.Next() {
		var (
			e       domain.MessageLogEntry
			status  string
			trigger string
		)
		if err := rows.Scan(&e.ID, &e.ProfileID, &status, &trigger, &e.Body, &e.ProviderMessageID, &e.ErrorText, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan follow_up_message: %w", err)
		}
		e.Status = domain.MessageStatus(status)
		e.Trigger = domain.MessageTrigger(trigger)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "follow_up_message", profileID)
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func scanProfile(row pgx.Row) (*domain.FollowUpProfile, error) {
	var (
		p           domain.FollowUpProfile
		c           domain.Client
		lastService pgtype.Date
		override    pgtype.Int4
		next        pgtype.Date
		lastSent    pgtype.Timestamptz
	)

	err := row.Scan(
		&p.ID, &p.ClientID, &p.IsActive, &lastService, &override,
		&next, &lastSent, &p.LastError, &p.CreatedAt, &p.UpdatedAt,
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address,
	)
	if err != nil {
		return nil, err
	}

	p.Client = &c
	p.LastServiceDate = datePtr(lastService)
	p.NextFollowUpDate = datePtr(next)
	if override.Valid {
		v := int(override.Int32)
		p.IntervalOverrideDays = &v
	}
	if lastSent.Valid {
		ts := lastSent.Time
		p.LastSentAt = &ts
	}

	return &p, nil
}

func datePtr(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	t := time.Date(d.Time.Year(), d.Time.Month(), d.Time.Day(), 0, 0, 0, 0, time.UTC)
	return &t
}
