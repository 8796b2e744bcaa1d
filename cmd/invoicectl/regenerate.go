package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/liamdatt/invoicegen/internal/app"
	"github.com/liamdatt/invoicegen/internal/service/document"
)

func newRegenerateCommand() *cobra.Command {
	var opts document.RegenerateOptions

	cmd := &cobra.Command{
		Use:   "regenerate",
		Short: "Re-render and store the PDF of every invoice",
		Long: `Re-render the PDF of every invoice and store it as the local copy,
replacing whatever document the invoice had.

Example:
  invoicectl regenerate --dry-run
  invoicectl regenerate`,
		Args: cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
			report, err := a.Documents.Regenerate(ctx, opts)
			if err != nil {
				return err
			}
			printRegenerateReport(cmd.OutOrStdout(), report)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&opts.DryRun, "dry-run", false, "show what would be done without regenerating PDFs")
	cmd.Flags().IntVar(&opts.PageSize, "page-size", 100, "invoices fetched per page")

	return cmd
}

func printRegenerateReport(w io.Writer, r document.RegenerateReport) {
	fmt.Fprintf(w, "Found %d invoices to process\n", r.Found)

	for _, res := range r.Results {
		switch res.Action {
		case document.ActionWouldRegenerate:
			fmt.Fprintf(w, "[DRY RUN] Would regenerate PDF for invoice %d (%s)\n", res.InvoiceID, res.Type)
		case document.ActionRegenerated:
			fmt.Fprintf(w, "✓ Regenerated PDF for invoice %d (%s)\n", res.InvoiceID, res.Type)
		case document.ActionFailed:
			fmt.Fprintf(w, "✗ Failed to regenerate PDF for invoice %d: %v\n", res.InvoiceID, res.Err)
		}
	}

	regenerated := r.Regenerated
	if r.DryRun {
		regenerated = r.Processed
	}
	fmt.Fprintf(w, "\nProcessed %d invoices, regenerated %d PDFs\n", r.Processed, regenerated)
	if r.DryRun {
		fmt.Fprintln(w, "This was a dry run - no actual changes made")
	}
}
