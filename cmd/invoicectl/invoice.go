package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/liamdatt/invoicegen/internal/app"
	"github.com/liamdatt/invoicegen/internal/domain"
	"github.com/liamdatt/invoicegen/internal/service/document"
)

func newInvoiceCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "invoice",
		Short: "Render, store and deliver invoice documents",
	}

	cmd.AddCommand(newInvoiceListCommand())
	cmd.AddCommand(newInvoiceRenderCommand())
	cmd.AddCommand(newInvoiceDownloadCommand())
	cmd.AddCommand(newInvoiceSyncCommand())
	cmd.AddCommand(newInvoiceClearCommand("clear-local", "Forget the local copy of an invoice document",
		func(ctx context.Context, s *document.Service, id int64) error { return s.ClearLocal(ctx, id) }))
	cmd.AddCommand(newInvoiceClearCommand("clear-remote", "Forget the remote copy of an invoice document",
		func(ctx context.Context, s *document.Service, id int64) error { return s.ClearRemote(ctx, id) }))
	cmd.AddCommand(newInvoiceEmailCommand())

	return cmd
}

func newInvoiceListCommand() *cobra.Command {
	var (
		typ      string
		clientID int64
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List invoices and where their document lives",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
			f := domain.InvoiceFilter{Limit: limit}
			if typ != "" {
				t := domain.InvoiceType(typ)
				if !t.IsValid() {
					return domain.NewValidationError("type", "must be GENERAL or PROFORMA")
				}
				f.Type = &t
			}
			if clientID > 0 {
				f.ClientID = &clientID
			}

			invoices, err := a.Invoices.List(ctx, f)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTYPE\tDATE\tCLIENT\tDOCUMENT")
			for _, inv := range invoices {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\n",
					inv.ID, inv.Type, inv.Date.Format(dateLayout), inv.ClientID, inv.Document)
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().StringVar(&typ, "type", "", "GENERAL or PROFORMA")
	cmd.Flags().Int64Var(&clientID, "client", 0, "only invoices of this client")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of invoices")

	return cmd
}

func newInvoiceRenderCommand() *cobra.Command {
	var (
		out  string
		opts document.GenerateOptions
	)

	cmd := &cobra.Command{
		Use:   "render INVOICE_ID",
		Short: "Render an invoice PDF, optionally keeping it as the local copy",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice_id", args[0])
			if err != nil {
				return err
			}

			pdf, err := a.Documents.Generate(ctx, id, opts)
			if err != nil {
				return err
			}

			if out == "" && opts.StoreLocal {
				fmt.Fprintf(cmd.OutOrStdout(), "Stored PDF for invoice %d (%d bytes)\n", id, len(pdf))
				return nil
			}
			if out == "" {
				inv, err := a.Invoices.GetByID(ctx, id)
				if err != nil {
					return err
				}
				out = inv.Filename()
			}
			if err := os.WriteFile(out, pdf, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", out, len(pdf))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write the PDF to this file")
	cmd.Flags().BoolVar(&opts.StoreLocal, "store", false, "keep the PDF as the invoice's local copy")
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", false, "replace an existing local copy")

	return cmd
}

func newInvoiceDownloadCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "download INVOICE_ID",
		Short: "Write the canonical document of an invoice to a file",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice_id", args[0])
			if err != nil {
				return err
			}

			d, err := a.Documents.Content(ctx, id)
			if err != nil {
				return err
			}
			if out == "" {
				out = d.Filename
			}
			if err := os.WriteFile(out, d.Data, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s from %s (%d bytes)\n", out, d.Source, len(d.Data))
			return nil
		}),
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "destination file (default: the document filename)")

	return cmd
}

func newInvoiceSyncCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sync INVOICE_ID",
		Short: "Upload the invoice document to Google Drive",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice_id", args[0])
			if err != nil {
				return err
			}

			d, err := a.Documents.Content(ctx, id)
			if err != nil {
				return err
			}
			f, err := a.Documents.SyncRemote(ctx, id, d.Data, d.Filename)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Synced invoice %d as %s\n%s\n", id, f.ID, f.ViewLink)
			return nil
		}),
	}
}

func newInvoiceClearCommand(use, short string, clear func(context.Context, *document.Service, int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " INVOICE_ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice_id", args[0])
			if err != nil {
				return err
			}
			if err := clear(ctx, a.Documents, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared invoice %d\n", id)
			return nil
		}),
	}
}

func newInvoiceEmailCommand() *cobra.Command {
	var input document.EmailInput

	cmd := &cobra.Command{
		Use:   "email INVOICE_ID",
		Short: "Mail the invoice document through Gmail",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID("invoice_id", args[0])
			if err != nil {
				return err
			}
			input.InvoiceID = id

			msgID, err := a.Documents.Email(ctx, input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Sent invoice %d (message %s)\n", id, msgID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&input.To, "to", "", "recipient (default: the client's email)")
	cmd.Flags().StringVar(&input.Subject, "subject", "", "message subject")
	cmd.Flags().StringVar(&input.Body, "body", "", "message body")

	return cmd
}
