package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/liamdatt/invoicegen/internal/app"
	"github.com/liamdatt/invoicegen/internal/domain"
	"github.com/liamdatt/invoicegen/internal/service/followup"
)

func newFollowUpCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "followup",
		Aliases: []string{"fu"},
		Short:   "Manage customer follow-up reminders",
	}

	cmd.AddCommand(newEnrollCommand())
	cmd.AddCommand(newProfileUpdateCommand())
	cmd.AddCommand(newProfileShowCommand())
	cmd.AddCommand(newRefreshCommand())
	cmd.AddCommand(newMarkSentCommand())
	cmd.AddCommand(newMarkFailedCommand())
	cmd.AddCommand(newSendCommand())
	cmd.AddCommand(newSweepCommand())
	cmd.AddCommand(newSettingsCommand())
	cmd.AddCommand(newHistoryCommand())
	cmd.AddCommand(newEligibleCommand())

	return cmd
}

func newEnrollCommand() *cobra.Command {
	var (
		clientID    int64
		lastService string
		interval    int
	)

	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Enroll a client in follow-up reminders",
		Example: `  invoicectl followup enroll --client 12 --last-service 2024-01-01
  invoicectl followup enroll --client 12 --interval 30`,
		Args: cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
			input := followup.EnrollInput{ClientID: clientID}

			last, err := parseDate("last_service_date", lastService)
			if err != nil {
				return err
			}
			input.LastServiceDate = last
			if cmd.Flags().Changed("interval") {
				input.IntervalOverrideDays = &interval
			}

			p, err := a.FollowUps.Enroll(ctx, input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Enrolled client %d (profile %d), next follow-up: %s\n",
				p.ClientID, p.ID, formatDate(p.NextFollowUpDate))
			return nil
		}),
	}

	cmd.Flags().Int64Var(&clientID, "client", 0, "client ID (required)")
	cmd.Flags().StringVar(&lastService, "last-service", "", "last service date, YYYY-MM-DD")
	cmd.Flags().IntVar(&interval, "interval", 0, "per-client interval in days")
	_ = cmd.MarkFlagRequired("client")

	return cmd
}

func newProfileUpdateCommand() *cobra.Command {
	var (
		active           bool
		lastService      string
		clearLastService bool
		interval         int
		clearInterval    bool
	)

	cmd := &cobra.Command{
		Use:   "update PROFILE_ID",
		Short: "Edit a follow-up profile and refresh its schedule",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID("profile_id", args[0])
			if err != nil {
				return err
			}

			input := followup.UpdateProfileInput{
				ProfileID:            id,
				ClearLastServiceDate: clearLastService,
				ClearOverride:        clearInterval,
			}
			if cmd.Flags().Changed("active") {
				input.IsActive = &active
			}
			if input.LastServiceDate, err = parseDate("last_service_date", lastService); err != nil {
				return err
			}
			if cmd.Flags().Changed("interval") {
				input.IntervalOverrideDays = &interval
			}

			p, err := a.FollowUps.UpdateProfile(ctx, input)
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		}),
	}

	cmd.Flags().BoolVar(&active, "active", true, "whether reminders are sent")
	cmd.Flags().StringVar(&lastService, "last-service", "", "last service date, YYYY-MM-DD")
	cmd.Flags().BoolVar(&clearLastService, "clear-last-service", false, "forget the last service date")
	cmd.Flags().IntVar(&interval, "interval", 0, "per-client interval in days")
	cmd.Flags().BoolVar(&clearInterval, "clear-interval", false, "use the default interval")
	cmd.MarkFlagsMutuallyExclusive("last-service", "clear-last-service")
	cmd.MarkFlagsMutuallyExclusive("interval", "clear-interval")

	return cmd
}

func newProfileShowCommand() *cobra.Command {
	return profileCommand("show PROFILE_ID", "Show a follow-up profile",
		func(ctx context.Context, s *followup.Service, id int64) (*domain.FollowUpProfile, error) {
			return s.Profile(ctx, id)
		})
}

func newRefreshCommand() *cobra.Command {
	return profileCommand("refresh PROFILE_ID", "Recompute the next follow-up date of a profile",
		func(ctx context.Context, s *followup.Service, id int64) (*domain.FollowUpProfile, error) {
			return s.RefreshSchedule(ctx, id)
		})
}

func newMarkSentCommand() *cobra.Command {
	return profileCommand("mark-sent PROFILE_ID", "Record a reminder delivered outside invoicectl",
		func(ctx context.Context, s *followup.Service, id int64) (*domain.FollowUpProfile, error) {
			return s.RegisterSuccess(ctx, id)
		})
}

func newMarkFailedCommand() *cobra.Command {
	var reason string

	cmd := profileCommand("mark-failed PROFILE_ID", "Record a failed delivery without changing the schedule",
		func(ctx context.Context, s *followup.Service, id int64) (*domain.FollowUpProfile, error) {
			return s.RegisterFailure(ctx, id, reason)
		})
	cmd.Flags().StringVar(&reason, "error", "", "error text to record (required)")
	_ = cmd.MarkFlagRequired("error")

	return cmd
}

func profileCommand(use, short string, op func(context.Context, *followup.Service, int64) (*domain.FollowUpProfile, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID("profile_id", args[0])
			if err != nil {
				return err
			}
			p, err := op(ctx, a.FollowUps, id)
			if err != nil {
				return err
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		}),
	}
}

func newSendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "send PROFILE_ID",
		Short: "Send a follow-up reminder now",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID("profile_id", args[0])
			if err != nil {
				return err
			}
			entry, err := a.FollowUps.Send(ctx, id, domain.MessageTriggerManual)
			if err != nil {
				return err
			}
			printEntry(cmd.OutOrStdout(), entry)
			return nil
		}),
	}
}

func newSweepCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Send reminders to every profile that is due",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
			report, err := a.FollowUps.Sweep(ctx)
			if err != nil {
				return err
			}
			printSweepReport(cmd.OutOrStdout(), report)
			return nil
		}),
	}
}

func printSweepReport(w io.Writer, r followup.SweepReport) {
	fmt.Fprintf(w, "Found %d profiles due\n", r.Due)
	for _, res := range r.Results {
		switch {
		case res.Err != nil:
			fmt.Fprintf(w, "✗ Profile %d: %v\n", res.ProfileID, res.Err)
		case res.Entry.Status == domain.MessageStatusSent:
			fmt.Fprintf(w, "✓ Sent to profile %d\n", res.ProfileID)
		default:
			fmt.Fprintf(w, "✗ Failed for profile %d: %s\n", res.ProfileID, res.Entry.ErrorText)
		}
	}
	fmt.Fprintf(w, "\nSent %d, failed %d, errored %d\n", r.Sent, r.Failed, r.Errored)
}

func newSettingsCommand() *cobra.Command {
	var (
		days     int
		business string
	)

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change the global follow-up settings",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
			var input followup.UpdateSettingsInput
			if cmd.Flags().Changed("days") {
				input.DefaultIntervalDays = &days
			}
			if cmd.Flags().Changed("business") {
				input.BusinessDisplayName = &business
			}

			var (
				s   *domain.FollowUpSettings
				err error
			)
			if input.DefaultIntervalDays == nil && input.BusinessDisplayName == nil {
				s, err = a.FollowUps.Settings(ctx)
			} else {
				s, err = a.FollowUps.UpdateSettings(ctx, input)
			}
			if err != nil {
				return err
			}

			name := s.BusinessDisplayName
			if name == "" {
				name = "(not set)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Default interval: %d days\nBusiness name:    %s\n", s.DefaultIntervalDays, name)
			return nil
		}),
	}

	cmd.Flags().IntVar(&days, "days", 0, "default interval in days")
	cmd.Flags().StringVar(&business, "business", "", "business name used in messages")

	return cmd
}

func newHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history PROFILE_ID",
		Short: "List the reminders sent to a profile, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			id, err := parseID("profile_id", args[0])
			if err != nil {
				return err
			}
			entries, err := a.FollowUps.History(ctx, id, limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "TIME\tSTATUS\tTRIGGER\tDETAIL")
			for _, e := range entries {
				detail := e.ProviderMessageID
				if e.Status == domain.MessageStatusFailed {
					detail = e.ErrorText
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Status, e.Trigger, detail)
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum number of entries")

	return cmd
}

func newEligibleCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "eligible",
		Short: "List clients that can be enrolled",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
			clients, err := a.FollowUps.ListEligibleClients(ctx, limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tPHONE\tEMAIL")
			for _, c := range clients {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, c.Name, c.Phone, c.Email)
			}
			return tw.Flush()
		}),
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum number of clients")

	return cmd
}

func printProfile(w io.Writer, p *domain.FollowUpProfile) {
	interval := "default"
	if p.IntervalOverrideDays != nil {
		interval = fmt.Sprintf("%d days", *p.IntervalOverrideDays)
	}
	lastSent := "never"
	if p.LastSentAt != nil {
		lastSent = p.LastSentAt.Format("2006-01-02 15:04")
	}

	fmt.Fprintf(w, "Profile %d (client %d)\n", p.ID, p.ClientID)
	fmt.Fprintf(w, "  active:        %t\n", p.IsActive)
	fmt.Fprintf(w, "  last service:  %s\n", formatDate(p.LastServiceDate))
	fmt.Fprintf(w, "  interval:      %s\n", interval)
	fmt.Fprintf(w, "  next:          %s\n", formatDate(p.NextFollowUpDate))
	fmt.Fprintf(w, "  last sent:     %s\n", lastSent)
	if p.LastError != "" {
		fmt.Fprintf(w, "  last error:    %s\n", p.LastError)
	}
}

func printEntry(w io.Writer, e *domain.MessageLogEntry) {
	if e.Status == domain.MessageStatusSent {
		fmt.Fprintf(w, "✓ Sent to profile %d (message %s)\n", e.ProfileID, e.ProviderMessageID)
		return
	}
	fmt.Fprintf(w, "✗ Delivery to profile %d failed: %s\n", e.ProfileID, e.ErrorText)
}
