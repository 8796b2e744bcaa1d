// Package document owns the lifecycle of an invoice's PDF: rendering it,
// keeping a local copy, mirroring it to the remote document store, and
// serving or mailing the canonical bytes.
package document

import (
	"context"
	"log/slog"
	"time"

	"github.com/liamdatt/invoicegen/internal/domain"
	"github.com/liamdatt/invoicegen/internal/money"
)

type invoiceRepo interface {
	GetByID(ctx context.Context, id int64) (*domain.Invoice, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Invoice, error)
	List(ctx context.Context, f domain.InvoiceFilter) ([]domain.Invoice, error)
	SetDocument(ctx context.Context, id int64, doc domain.Document) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type pdfRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

type blobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

type accountRepo interface {
	Get(ctx context.Context) (*domain.GoogleAccount, error)
}

type assetLocator interface {
	DataURL(candidates ...string) (string, bool)
}

// RemoteStore is the remote document store and mail transport.
type RemoteStore interface {
	Upload(ctx context.Context, content []byte, filename, existingID, parentID string) (domain.RemoteFile, error)
	Download(ctx context.Context, id string) ([]byte, error)
	SendMessage(ctx context.Context, to, subject, body string, attachment domain.Attachment) (string, error)
}

// RemoteFactory connects to the remote store on demand. It returns an error
// wrapping domain.ErrConfigurationMissing when no account is connected.
type RemoteFactory func(ctx context.Context) (RemoteStore, error)

// AssetNames lists the candidate file names of the optional images.
type AssetNames struct {
	Logo      []string
	Signature []string
}

// Service manages invoice documents.
type Service struct {
	invoices invoiceRepo
	tx       txManager
	renderer pdfRenderer
	blobs    blobStore
	remote   RemoteFactory
	accounts accountRepo
	assets   assetLocator
	names    AssetNames
	money    money.Engine
	now      func() time.Time
	log      *slog.Logger
}

// NewService creates a new document service.
func NewService(
	log *slog.Logger,
	invoices invoiceRepo,
	tx txManager,
	renderer pdfRenderer,
	blobs blobStore,
	remote RemoteFactory,
	accounts accountRepo,
	assets assetLocator,
	names AssetNames,
	engine money.Engine,
) *Service {
	return &Service{
		invoices: invoices,
		tx:       tx,
		renderer: renderer,
		blobs:    blobs,
		remote:   remote,
		accounts: accounts,
		assets:   assets,
		names:    names,
		money:    engine,
		now:      time.Now,
		log:      log.With("service", "document"),
	}
}

// blobKey is where the local copy of an invoice document is stored.
func blobKey(inv *domain.Invoice) string {
	return "invoices/" + inv.Filename()
}
