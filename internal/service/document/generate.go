package document

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/liamdatt/invoicegen/internal/domain"
)

const pdfContentType = "application/pdf"

// Generate renders an invoice and, when asked, keeps the result as its
// local copy.
func (s *Service) Generate(ctx context.Context, invoiceID int64, opts GenerateOptions) ([]byte, error) {
	pdf, err := s.Render(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if opts.StoreLocal {
		if err := s.StoreLocal(ctx, invoiceID, pdf, opts.Overwrite); err != nil {
			return nil, err
		}
	}
	return pdf, nil
}

// Content returns the canonical bytes of an invoice document: the local
// copy, the remote file, or a fresh render when nothing is stored. A local
// copy whose blob has gone missing is re-rendered.
func (s *Service) Content(ctx context.Context, invoiceID int64) (*Download, error) {
	inv, err := s.invoices.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("get invoice %d: %w", invoiceID, err)
	}

	out := &Download{Filename: inv.Filename(), ContentType: pdfContentType, Source: inv.Document.Kind()}

	switch inv.Document.Kind() {
	case domain.DocumentKindLocal:
		ref, _ := inv.Document.Local()
		data, err := s.blobs.Get(ctx, ref)
		if err == nil {
			out.Data = data
			return out, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("read document of invoice %d: %w", invoiceID, err)
		}
		s.log.WarnContext(ctx, "local document missing, rendering",
			slog.Int64("invoice_id", invoiceID),
			slog.String("ref", ref),
		)

	case domain.DocumentKindRemote:
		f, _ := inv.Document.Remote()
		remote, err := s.remote(ctx)
		if err != nil {
			return nil, fmt.Errorf("connect remote store: %w", err)
		}
		data, err := remote.Download(ctx, f.ID)
		if err != nil {
			return nil, fmt.Errorf("download document of invoice %d: %w", invoiceID, err)
		}
		if f.Name != "" {
			out.Filename = f.Name
		}
		out.Data = data
		return out, nil
	}

	data, err := s.render(ctx, inv)
	if err != nil {
		return nil, err
	}
	out.Data = data
	out.Source = domain.DocumentKindNone
	return out, nil
}

// Email sends the invoice document as a mail attachment and returns the
// transport's message ID.
func (s *Service) Email(ctx context.Context, input EmailInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}

	to := strings.TrimSpace(input.To)
	if to == "" {
		inv, err := s.invoices.GetByID(ctx, input.InvoiceID)
		if err != nil {
			return "", fmt.Errorf("get invoice %d: %w", input.InvoiceID, err)
		}
		if inv.Client != nil {
			to = strings.TrimSpace(inv.Client.Email)
		}
		if to == "" {
			return "", domain.NewValidationError("to", "required: client has no email address")
		}
	}

	remote, err := s.remote(ctx)
	if err != nil {
		return "", fmt.Errorf("connect mail transport: %w", err)
	}

	doc, err := s.Content(ctx, input.InvoiceID)
	if err != nil {
		return "", err
	}

	id, err := remote.SendMessage(ctx, to, input.subject(), input.body(), domain.Attachment{
		Filename:    doc.Filename,
		ContentType: doc.ContentType,
		Data:        doc.Data,
	})
	if err != nil {
		return "", fmt.Errorf("email invoice %d: %w", input.InvoiceID, err)
	}

	s.log.InfoContext(ctx, "invoice emailed",
		slog.Int64("invoice_id", input.InvoiceID),
		slog.String("to", to),
		slog.String("message_id", id),
	)
	return id, nil
}
