// Command invoicectl operates the invoice document store and the follow-up
// outreach cycle from the command line.
//
// Exit codes: 0 = success, 1 = error, 2 = invalid input, 3 = missing
// configuration.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/liamdatt/invoicegen/internal/app"
	"github.com/liamdatt/invoicegen/internal/domain"
	"github.com/liamdatt/invoicegen/pkg/ctxutil"
)

const dateLayout = "2006-01-02"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "invoicectl",
		Short:         "Manage invoice documents and customer follow-ups",
		Version:       app.BuildVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newMigrateCommand())
	cmd.AddCommand(newRegenerateCommand())
	cmd.AddCommand(newInvoiceCommand())
	cmd.AddCommand(newFollowUpCommand())
	cmd.AddCommand(newDriveCommand())

	return cmd
}

// runFunc is a command body that needs the wired application.
type runFunc func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error

// withApp builds the application for the duration of one command and tags
// the context with a fresh run ID.
func withApp(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := app.Bootstrap()
		if err != nil {
			return err
		}

		a, err := app.New(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, _ := ctxutil.NewRun(cmd.Context())
		ctx = ctxutil.WithTrigger(ctx, "cli")
		return fn(ctx, a, cmd, args)
	}
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return 2
	case errors.Is(err, domain.ErrConfigurationMissing):
		return 3
	default:
		return 1
	}
}

func parseID(field, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(field, "must be a positive integer")
	}
	return id, nil
}

func parseDate(field, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, domain.NewValidationError(field, "must be YYYY-MM-DD")
	}
	return &t, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return "not scheduled"
	}
	return t.Format(dateLayout)
}
