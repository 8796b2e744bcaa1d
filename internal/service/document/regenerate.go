package document

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/liamdatt/invoicegen/internal/domain"
)

const defaultRegeneratePage = 100

// Regenerate re-renders and stores the document of every invoice with
// overwrite. A failing invoice is recorded and the sweep moves on; only a
// listing failure or cancellation aborts it. In dry-run mode nothing is
// rendered or written.
func (s *Service) Regenerate(ctx context.Context, opts RegenerateOptions) (RegenerateReport, error) {
	report := RegenerateReport{DryRun: opts.DryRun}

	invoices, err := s.listAll(ctx, opts.PageSize)
	if err != nil {
		return report, err
	}
	report.Found = len(invoices)

	s.log.InfoContext(ctx, "regenerate started",
		slog.Int("found", report.Found),
		slog.Bool("dry_run", opts.DryRun),
	)

	for _, inv := range invoices {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Processed++

		res := RegenerateResult{InvoiceID: inv.ID, Type: inv.Type}
		switch {
		case opts.DryRun:
			res.Action = ActionWouldRegenerate
		default:
			if _, err := s.Generate(ctx, inv.ID, GenerateOptions{StoreLocal: true, Overwrite: true}); err != nil {
				res.Action = ActionFailed
				res.Err = err
				report.Failed++
				s.log.WarnContext(ctx, "regenerate failed",
					slog.Int64("invoice_id", inv.ID),
					slog.String("error", err.Error()),
				)
			} else {
				res.Action = ActionRegenerated
				report.Regenerated++
			}
		}
		report.Results = append(report.Results, res)
	}

	s.log.InfoContext(ctx, "regenerate finished",
		slog.Int("processed", report.Processed),
		slog.Int("regenerated", report.Regenerated),
		slog.Int("failed", report.Failed),
	)
	return report, nil
}

// listAll walks every invoice header in id order.
func (s *Service) listAll(ctx context.Context, pageSize int) ([]domain.Invoice, error) {
	if pageSize <= 0 {
		pageSize = defaultRegeneratePage
	}

	var (
		all     []domain.Invoice
		afterID int64
	)
	for {
		page, err := s.invoices.List(ctx, domain.InvoiceFilter{AfterID: afterID, Limit: pageSize})
		if err != nil {
			return nil, fmt.Errorf("list invoices: %w", err)
		}
		all = append(all, page...)
		if len(page) < pageSize {
			return all, nil
		}
		afterID = page[len(page)-1].ID
	}
}
