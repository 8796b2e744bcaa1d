package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/liamdatt/invoicegen/internal/adapter/assets"
	"github.com/liamdatt/invoicegen/internal/adapter/blobstore"
	"github.com/liamdatt/invoicegen/internal/adapter/postgres"
	"github.com/liamdatt/invoicegen/internal/adapter/postgres/client"
	followuprepo "github.com/liamdatt/invoicegen/internal/adapter/postgres/followup"
	"github.com/liamdatt/invoicegen/internal/adapter/postgres/googleaccount"
	"github.com/liamdatt/invoicegen/internal/adapter/postgres/invoice"
	"github.com/liamdatt/invoicegen/internal/adapter/provider/google"
	"github.com/liamdatt/invoicegen/internal/adapter/provider/whatsapp"
	"github.com/liamdatt/invoicegen/internal/adapter/renderer"
	"github.com/liamdatt/invoicegen/internal/config"
	"github.com/liamdatt/invoicegen/internal/domain"
	"github.com/liamdatt/invoicegen/internal/money"
	"github.com/liamdatt/invoicegen/internal/service/document"
	"github.com/liamdatt/invoicegen/internal/service/followup"
)

// App holds the wired services shared by the command-line tools.
type App struct {
	Config *config.Config
	Log    *slog.Logger
	Pool   *pgxpool.Pool

	Clients  *client.Repo
	Invoices *invoice.Repo
	Accounts *googleaccount.Repo

	Documents *document.Service
	FollowUps *followup.Service
}

// Bootstrap loads .env and configuration and initializes the logger.
func Bootstrap() (*config.Config, *slog.Logger, error) {
	if err := config.LoadDotenv(); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, NewLogger(cfg.Log), nil
}

// New connects to the database and builds every service. Optional
// collaborators (browser, Google, WhatsApp) are resolved lazily, so a
// missing one only fails the operations that need it.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	logger.InfoContext(ctx, "starting",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	a, err := Wire(cfg, logger, pool)
	if err != nil {
		pool.Close()
		return nil, err
	}
	return a, nil
}

// Wire builds the services on top of an existing pool. Close releases it.
func Wire(cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (*App, error) {
	blobs, err := blobstore.NewFS(cfg.Storage.Root)
	if err != nil {
		return nil, fmt.Errorf("open blob store: %w", err)
	}

	a := &App{
		Config:   cfg,
		Log:      logger,
		Pool:     pool,
		Clients:  client.New(pool),
		Invoices: invoice.New(pool),
		Accounts: googleaccount.New(pool),
	}
	tx := postgres.NewTxManager(pool)

	a.Documents = document.NewService(
		logger,
		a.Invoices,
		tx,
		newRenderer(cfg.Renderer, logger),
		blobs,
		func(ctx context.Context) (document.RemoteStore, error) {
			c, err := a.Drive(ctx)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		a.Accounts,
		assets.NewLocator(logger, cfg.Assets.Dirs()...),
		document.AssetNames{Logo: cfg.Assets.LogoNames(), Signature: cfg.Assets.SignatureNames()},
		money.New(cfg.Billing.TaxRate()),
	)

	a.FollowUps = followup.NewService(
		logger,
		followuprepo.New(pool),
		a.Clients,
		tx,
		func(context.Context) (followup.Messenger, error) {
			s, err := whatsapp.New(cfg.WhatsApp, logger)
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		cfg.FollowUp.Template,
		followup.ParseTimezone(cfg.FollowUp.Timezone),
	)

	return a, nil
}

// Drive connects to the stored Google account.
func (a *App) Drive(ctx context.Context) (*google.Client, error) {
	account, err := a.Accounts.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.NewMissingConfigError("google account token")
	}
	if err != nil {
		return nil, fmt.Errorf("load google account: %w", err)
	}
	return google.NewClient(ctx, a.Config.Google, account, a.Accounts, a.Log)
}

// Close releases the database pool.
func (a *App) Close() {
	a.Pool.Close()
}

type pdfRenderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

func newRenderer(cfg config.RendererConfig, logger *slog.Logger) pdfRenderer {
	c, err := renderer.NewChromium(cfg, logger)
	if err != nil {
		logger.Warn("pdf rendering disabled", slog.String("error", err.Error()))
		return renderer.Unavailable{Err: err}
	}
	return c
}
