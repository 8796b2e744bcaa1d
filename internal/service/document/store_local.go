package document

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/liamdatt/invoicegen/internal/domain"
)

// StoreLocal saves content as the local copy of an invoice document.
//
// An existing local copy is kept untouched unless overwrite is set, in
// which case the old blob is deleted before the new one is written. A
// remote document is replaced by the local one; the remote file itself is
// left in place.
func (s *Service) StoreLocal(ctx context.Context, invoiceID int64, content []byte, overwrite bool) error {
	if len(content) == 0 {
		return domain.NewValidationError("content", "required")
	}

	return s.tx.RunInTx(ctx, func(ctx context.Context) error {
		inv, err := s.invoices.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return fmt.Errorf("lock invoice %d: %w", invoiceID, err)
		}

		ref, hasLocal := inv.Document.Local()
		if hasLocal && !overwrite {
			s.log.DebugContext(ctx, "local document kept", slog.Int64("invoice_id", invoiceID), slog.String("ref", ref))
			return nil
		}

		if hasLocal {
			if err := s.blobs.Delete(ctx, ref); err != nil {
				return fmt.Errorf("delete previous document of invoice %d: %w", invoiceID, err)
			}
		}

		key := blobKey(inv)
		if err := s.blobs.Put(ctx, key, content); err != nil {
			return fmt.Errorf("write document of invoice %d: %w", invoiceID, err)
		}

		doc, err := domain.NewLocalDocument(key)
		if err != nil {
			return err
		}
		if err := s.invoices.SetDocument(ctx, invoiceID, doc); err != nil {
			return fmt.Errorf("record local document of invoice %d: %w", invoiceID, err)
		}

		if r, wasRemote := inv.Document.Remote(); wasRemote {
			s.log.InfoContext(ctx, "remote pointer replaced by local copy",
				slog.Int64("invoice_id", invoiceID),
				slog.String("remote_id", r.ID),
			)
		}
		return nil
	})
}

// ClearLocal forgets the local copy of an invoice document and deletes its
// blob. It is a no-op unless the invoice holds a local copy.
func (s *Service) ClearLocal(ctx context.Context, invoiceID int64) error {
	var ref string
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		inv, err := s.invoices.GetForUpdate(ctx, invoiceID)
		if err != nil {
			return fmt.Errorf("lock invoice %d: %w", invoiceID, err)
		}

		var ok bool
		if ref, ok = inv.Document.Local(); !ok {
			return nil
		}
		return s.invoices.SetDocument(ctx, invoiceID, domain.NoDocument())
	})
	if err != nil || ref == "" {
		return err
	}

	s.deleteOrphan(ctx, invoiceID, ref)
	return nil
}

// deleteOrphan removes a blob no invoice points to any more. Failures are
// logged only; the recorded state is already correct.
func (s *Service) deleteOrphan(ctx context.Context, invoiceID int64, ref string) {
	if err := s.blobs.Delete(ctx, ref); err != nil {
		s.log.WarnContext(ctx, "orphaned local document",
			slog.Int64("invoice_id", invoiceID),
			slog.String("ref", ref),
			slog.String("error", err.Error()),
		)
	}
}
