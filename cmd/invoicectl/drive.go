package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/oauth2"

	"github.com/liamdatt/invoicegen/internal/app"
	"github.com/liamdatt/invoicegen/internal/domain"
)

func newDriveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drive",
		Short: "Manage the connected Google account",
	}

	cmd.AddCommand(newDriveStatusCommand())
	cmd.AddCommand(newDriveFoldersCommand())
	cmd.AddCommand(newDriveSetFolderCommand())
	cmd.AddCommand(newDriveSetTokenCommand())
	cmd.AddCommand(newDriveDisconnectCommand())

	return cmd
}

func newDriveStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the connected account and upload folder",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
			acc, err := a.Accounts.Get(ctx)
			if err != nil {
				return err
			}
			folder := "(root)"
			if acc.DriveFolderID != "" {
				folder = fmt.Sprintf("%s (%s)", acc.DriveFolderName, acc.DriveFolderID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account: %s\nToken:   %t\nFolder:  %s\n", acc.Email, acc.HasToken(), folder)
			return nil
		}),
	}
}

func newDriveFoldersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "List the Drive folders invoices can be uploaded into",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
			drive, err := a.Drive(ctx)
			if err != nil {
				return err
			}
			folders, err := drive.ListFolders(ctx)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, f := range folders {
				fmt.Fprintf(tw, "%s\t%s\n", f.ID, f.Name)
			}
			return tw.Flush()
		}),
	}
}

func newDriveSetFolderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set-folder FOLDER_ID NAME",
		Short: "Choose the Drive folder invoices are uploaded into",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			if err := a.Accounts.SetFolder(ctx, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Uploads go to %s\n", args[1])
			return nil
		}),
	}
}

func newDriveSetTokenCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "set-token TOKEN_FILE",
		Short: "Store an OAuth token obtained outside invoicectl",
		Long: `Store the JSON OAuth token of the Google account used for Drive uploads
and Gmail delivery. The file holds an oauth2 token as written by the
Google client libraries (access_token, refresh_token, expiry).`,
		Args: cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read token: %w", err)
			}

			var tok oauth2.Token
			if err := json.Unmarshal(data, &tok); err != nil {
				return domain.NewValidationError("token", "must be a JSON oauth2 token")
			}
			if tok.AccessToken == "" && tok.RefreshToken == "" {
				return domain.NewValidationError("token", "has neither access_token nor refresh_token")
			}

			if err := a.Accounts.SaveToken(ctx, email, data); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Token stored")
			return nil
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "address of the account, used as the mail sender")

	return cmd
}

func newDriveDisconnectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disconnect",
		Short: "Forget the stored Google account",
		Args:  cobra.NoArgs,
		RunE: withApp(func(ctx context.Context, a *app.App, cmd *cobra.Command, _ []string) error {
			if err := a.Accounts.Clear(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Google account disconnected")
			return nil
		}),
	}
}
