package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/liamdatt/invoicegen/internal/domain"
)

// SyncRemote uploads content to the remote store and records the result as
// the invoice's document. An invoice that already points at a remote file
// has that file updated in place; otherwise a new file is created in the
// configured folder. An empty filename uses the invoice's standard one.
//
// The state changes only after the upload succeeds. A previous local copy
// is deleted once the new state is committed.
func (s *Service) SyncRemote(ctx context.Context, invoiceID int64, content []byte, filename string) (domain.RemoteFile, error) {
	if len(content) == 0 {
		return domain.RemoteFile{}, domain.NewValidationError("content", "required")
	}

	remote, err := s.remote(ctx)
	if err != nil {
		return domain.RemoteFile{}, fmt.Errorf("connect remote store: %w", err)
	}
	parentID, err := s.folderID(ctx)
	if err != nil {
		return domain.RemoteFile{}, err
	}

	var (
		file     domain.RemoteFile
		oldLocal string
	)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		inv, err := s.invoices.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return fmt.Errorf("lock invoice %d: %w", invoiceID, err)
		}

		name := strings.TrimSpace(filename)
		if name == "" {
			name = inv.Filename()
		}

		var existingID string
		if r, ok := inv.Document.Remote(); ok {
			existingID = r.ID
		}

		f, err := remote.Upload(ctx, content, name, existingID, parentID)
		if err != nil {
			if !errors.Is(err, domain.ErrRemoteSyncFailed) {
				err = fmt.Errorf("%w: %w", domain.ErrRemoteSyncFailed, err)
			}
			return fmt.Errorf("upload invoice %d: %w", invoiceID, err)
		}
		if f.Name == "" {
			f.Name = name
		}
		f.SyncedAt = s.now().UTC()

		doc, err := domain.NewRemoteDocument(f)
		if err != nil {
			return fmt.Errorf("upload invoice %d: %w: %w", invoiceID, domain.ErrRemoteSyncFailed, err)
		}
		if err := s.invoices.SetDocument(ctx, invoiceID, doc); err != nil {
			s.log.ErrorContext(ctx, "remote file uploaded but not recorded",
				slog.Int64("invoice_id", invoiceID),
				slog.String("remote_id", f.ID),
				slog.String("error", err.Error()),
			)
			return fmt.Errorf("record remote document of invoice %d: %w", invoiceID, err)
		}

		oldLocal, _ = inv.Document.Local()
		file = f
		return nil
	})
	if err != nil {
		return domain.RemoteFile{}, err
	}

	s.log.InfoContext(ctx, "invoice synced",
		slog.Int64("invoice_id", invoiceID),
		slog.String("remote_id", file.ID),
	)

	if oldLocal != "" {
		s.deleteOrphan(ctx, invoiceID, oldLocal)
	}
	return file, nil
}

// ClearRemote forgets the remote pointer of an invoice. The remote file is
// not touched. It is a no-op unless the invoice points at a remote file.
func (s *Service) ClearRemote(ctx context.Context, invoiceID int64) error {
	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		inv, err := s.invoices.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return fmt.Errorf("lock invoice %d: %w", invoiceID, err)
		}
		if inv.Document.Kind() != domain.DocumentKindRemote {
			return nil
		}
		return s.invoices.SetDocument(ctx, invoiceID, domain.NoDocument())
	})
}

// folderID returns the configured upload folder, or "" for the store root.
func (s *Service) folderID(ctx context.Context) (string, error) {
	acc, err := s.accounts.Get(ctx)
	if errors.Is(err, domain.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get remote account: %w", err)
	}
	return acc.DriveFolderID, nil
}
