// Package invoice implements the Invoice repository using PostgreSQL.
// Invoice headers and their document state live in one row; line items are
// loaded separately, ordered by id. Totals are never stored.
package invoice

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	postgres "github.com/liamdatt/invoicegen/internal/adapter/postgres"
	"github.com/liamdatt/invoicegen/internal/domain"
)

// Repo provides invoice persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new invoice repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// SQL
// ---------------------------------------------------------------------------

var invoiceColumns = []string{
	"i.id", "i.client_id", "i.invoice_type", "i.invoice_date",
	"i.vehicle", "i.lic_no", "i.chassis_no", "i.engine_no",
	"i.proforma_make", "i.proforma_model", "i.proforma_year", "i.proforma_colour",
	"i.proforma_cc_rating", "i.proforma_price::text", "i.proforma_currency",
	"i.document_kind", "i.local_blob_ref", "i.remote_file_id", "i.remote_file_name",
	"i.remote_view_link", "i.remote_download_link", "i.remote_synced_at",
	"i.created_at", "i.updated_at",
	"c.id", "c.name", "c.email", "c.phone", "c.address",
}

const getItemsSQL = `
SELECT id, invoice_id, description, labour_cost::text, parts_cost::text
FROM invoice_items
WHERE invoice_id = $1
ORDER BY id`

const insertInvoiceSQL = `
INSERT INTO invoices (
    client_id, invoice_type, invoice_date, vehicle, lic_no, chassis_no, engine_no,
    proforma_make, proforma_model, proforma_year, proforma_colour, proforma_cc_rating,
    proforma_price, proforma_currency
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13::numeric, $14)
RETURNING id, created_at, updated_at`

const insertItemSQL = `
INSERT INTO invoice_items (invoice_id, description, labour_cost, parts_cost)
VALUES ($1, $2, $3::numeric, $4::numeric)
RETURNING id`

const setDocumentSQL = `
UPDATE invoices SET
    document_kind        = $2,
    local_blob_ref       = $3,
    remote_file_id       = $4,
    remote_file_name     = $5,
    remote_view_link     = $6,
    remote_download_link = $7,
    remote_synced_at     = $8,
    updated_at           = now()
WHERE id = $1`

func selectInvoices() squirrel.SelectBuilder {
	return postgres.Builder.
		Select(invoiceColumns...).
		From("invoices i").
		Join("clients c ON c.id = i.client_id")
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an invoice with its client and line items.
// Returns domain.ErrNotFound if the invoice does not exist.
func (r *Repo) GetByID(ctx context.Context, id int64) (*domain.Invoice, error) {
	return r.get(ctx, id, false)
}

// GetForUpdate is GetByID with the invoice row locked until the surrounding
// transaction ends. Concurrent document transitions on the same invoice
// queue behind the lock.
func (r *Repo) GetForUpdate(ctx context.Context, id int64) (*domain.Invoice, error) {
	if !postgres.InTx(ctx) {
		return nil, fmt.Errorf("invoice %d: GetForUpdate requires a transaction", id)
	}
	return r.get(ctx, id, true)
}

func (r *Repo) get(ctx context.Context, id int64, lock bool) (*domain.Invoice, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := selectInvoices().Where(squirrel.Eq{"i.id": id})
	if lock {
		b = b.Suffix("FOR UPDATE OF i")
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get invoice: %w", err)
	}

	inv, err := scanInvoice(q.QueryRow(ctx, sql, args...))
	if err != nil {
		return nil, postgres.MapError(err, "invoice", id)
	}

	items, err := r.items(ctx, q, id)
	if err != nil {
		return nil, err
	}
	inv.Items = items

	return inv, nil
}

// List returns invoice headers (without line items) matching the filter,
// ordered by id.
func (r *Repo) List(ctx context.Context, f domain.InvoiceFilter) ([]domain.Invoice, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := selectInvoices().OrderBy("i.id ASC")
	if f.AfterID > 0 {
		b = b.Where(squirrel.Gt{"i.id": f.AfterID})
	}
	if f.Type != nil {
		b = b.Where(squirrel.Eq{"i.invoice_type": string(*f.Type)})
	}
	if f.ClientID != nil {
		b = b.Where(squirrel.Eq{"i.client_id": *f.ClientID})
	}
	if f.Limit > 0 {
		b = b.Limit(uint64(f.Limit))
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list invoices: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, postgres.MapError(err, "invoice", "list")
	}
	defer rows.Close()

	var out []domain.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		out = append(out, *inv)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "invoice", "list")
	}

	return out, nil
}

func (r *Repo) items(ctx context.Context, q postgres.Querier, invoiceID int64) ([]domain.LineItem, error) {
	rows, err := q.Query(ctx, getItemsSQL, invoiceID)
	if err != nil {
		return nil, postgres.MapError(err, "invoice_items", invoiceID)
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var (
			it            domain.LineItem
			labour, parts string
		)
		if err := rows.Scan(&it.ID, &it.InvoiceID, &it.Description, &labour, &parts); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		if it.LabourCost, err = decimal.NewFromString(labour); err != nil {
			return nil, fmt.Errorf("invoice item %d labour_cost: %w", it.ID, err)
		}
		if it.PartsCost, err = decimal.NewFromString(parts); err != nil {
			return nil, fmt.Errorf("invoice item %d parts_cost: %w", it.ID, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, postgres.MapError(err, "invoice_items", invoiceID)
	}

	return items, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts the invoice header and its line items. The document state
// of a new invoice is always None.
func (r *Repo) Create(ctx context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	currency := inv.Proforma.Currency
	if currency == "" {
		currency = domain.DefaultProformaCurrency
	}

	var price *string
	if inv.Proforma.Price != nil {
		s := inv.Proforma.Price.String()
		price = &s
	}

	out := *inv
	out.Proforma.Currency = currency
	out.Document = domain.NoDocument()
	out.Items = nil

	err := q.QueryRow(ctx, insertInvoiceSQL,
		inv.ClientID, string(inv.Type), inv.Date, inv.Vehicle, inv.LicNo, inv.ChassisNo, inv.EngineNo,
		inv.Proforma.Make, inv.Proforma.Model, inv.Proforma.Year, inv.Proforma.Colour, inv.Proforma.CCRating,
		price, currency,
	).Scan(&out.ID, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "invoice", "new")
	}

	for _, it := range inv.Items {
		created, err := r.AddItem(ctx, out.ID, it)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, created)
	}

	return &out, nil
}

// AddItem appends a line item to an invoice.
func (r *Repo) AddItem(ctx context.Context, invoiceID int64, it domain.LineItem) (domain.LineItem, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	it.InvoiceID = invoiceID
	err := q.QueryRow(ctx, insertItemSQL,
		invoiceID, it.Description, it.LabourCost.String(), it.PartsCost.String(),
	).Scan(&it.ID)
	if err != nil {
		return domain.LineItem{}, postgres.MapError(err, "invoice_item", invoiceID)
	}
	return it, nil
}

// SetDocument persists the document union of an invoice. Exactly the
// columns of the active arm are written; the others are cleared.
func (r *Repo) SetDocument(ctx context.Context, id int64, doc domain.Document) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		localRef                               *string
		remoteID, remoteName, viewLink, dlLink *string
		syncedAt                               *time.Time
	)
	if ref, ok := doc.Local(); ok {
		localRef = &ref
	}
	if rf, ok := doc.Remote(); ok {
		remoteID, remoteName = &rf.ID, &rf.Name
		viewLink, dlLink = &rf.ViewLink, &rf.DownloadLink
		syncedAt = &rf.SyncedAt
	}

	tag, err := q.Exec(ctx, setDocumentSQL,
		id, string(doc.Kind()), localRef, remoteID, remoteName, viewLink, dlLink, syncedAt,
	)
	if err != nil {
		return postgres.MapError(err, "invoice", id)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "invoice", id)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping
// ---------------------------------------------------------------------------

func scanInvoice(row pgx.Row) (*domain.Invoice, error) {
	var (
		inv        domain.Invoice
		client     domain.Client
		invType    string
		year       pgtype.Int4
		price      pgtype.Text
		kind       string
		localRef   pgtype.Text
		remoteID   pgtype.Text
		remoteName pgtype.Text
		viewLink   pgtype.Text
		dlLink     pgtype.Text
		syncedAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&inv.ID, &inv.ClientID, &invType, &inv.Date,
		&inv.Vehicle, &inv.LicNo, &inv.ChassisNo, &inv.EngineNo,
		&inv.Proforma.Make, &inv.Proforma.Model, &year, &inv.Proforma.Colour,
		&inv.Proforma.CCRating, &price, &inv.Proforma.Currency,
		&kind, &localRef, &remoteID, &remoteName,
		&viewLink, &dlLink, &syncedAt,
		&inv.CreatedAt, &inv.UpdatedAt,
		&client.ID, &client.Name, &client.Email, &client.Phone, &client.Address,
	)
	if err != nil {
		return nil, err
	}

	inv.Type = domain.InvoiceType(invType)
	inv.Client = &client

	if year.Valid {
		y := int(year.Int32)
		inv.Proforma.Year = &y
	}
	if price.Valid {
		p, err := decimal.NewFromString(price.String)
		if err != nil {
			return nil, fmt.Errorf("invoice %d proforma_price: %w", inv.ID, err)
		}
		inv.Proforma.Price = &p
	}

	doc, err := toDocument(kind, localRef, domain.RemoteFile{
		ID:           remoteID.String,
		Name:         remoteName.String,
		ViewLink:     viewLink.String,
		DownloadLink: dlLink.String,
		SyncedAt:     syncedAt.Time,
	})
	if err != nil {
		return nil, fmt.Errorf("invoice %d: %w", inv.ID, err)
	}
	inv.Document = doc

	return &inv, nil
}

func toDocument(kind string, localRef pgtype.Text, remote domain.RemoteFile) (domain.Document, error) {
	switch domain.DocumentKind(kind) {
	case domain.DocumentKindLocal:
		return domain.NewLocalDocument(localRef.String)
	case domain.DocumentKindRemote:
		return domain.NewRemoteDocument(remote)
	case domain.DocumentKindNone:
		return domain.NoDocument(), nil
	default:
		return domain.Document{}, fmt.Errorf("unknown document_kind %q", kind)
	}
}
