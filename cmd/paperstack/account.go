package main

import (
	"fmt"

	"github.com/paperstack/paperstack/internal/api/dto"
	"github.com/paperstack/paperstack/internal/httpclient"
	"github.com/paperstack/paperstack/internal/localsync"
	"github.com/spf13/cobra"
)

func (a *app) syncClient() *localsync.Client {
	httpClient := httpclient.NewDefaultClient(httpclient.ConfigFrom(a.cfg), a.logger)
	return localsync.NewClient(a.cfg, httpClient, a.logger)
}

func newLoginCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in, or create an account, then upload unsynced local documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			tokens, err := localsync.NewTokenStore(a.cfg)
			if err != nil {
				return reportError(err)
			}

			client := a.syncClient()
			resp, err := client.Authenticate(cmd.Context(), &dto.AuthRequest{Email: email, Password: password})
			if err != nil {
				return reportError(err)
			}
			if err := tokens.Save(resp.Token); err != nil {
				return reportError(err)
			}

			out := cmd.OutOrStdout()
			if resp.IsNewUser {
				fmt.Fprintf(out, "Account created for %s. Check your inbox to verify it.\n", resp.User.Email)
			} else {
				fmt.Fprintf(out, "Logged in as %s\n", resp.User.Email)
			}

			return runSync(cmd, a, client, resp.Token)
		},
	}

	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSyncCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Upload unsynced local documents to your account",
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := localsync.NewTokenStore(a.cfg)
			if err != nil {
				return reportError(err)
			}
			token, err := tokens.Load()
			if err != nil {
				return reportError(err)
			}
			return runSync(cmd, a, a.syncClient(), token)
		},
	}
}

func runSync(cmd *cobra.Command, a *app, client *localsync.Client, token string) error {
	result, err := localsync.NewReconciler(a.store, client, a.logger).Run(cmd.Context(), token)
	if err != nil {
		return reportError(err)
	}

	out := cmd.OutOrStdout()
	if result.Submitted == 0 {
		fmt.Fprintln(out, "Nothing to sync")
		return nil
	}
	fmt.Fprintf(out, "Synced %d of %d local documents\n", len(result.SyncedIDs), result.Submitted)
	for _, failure := range result.Failed {
		fmt.Fprintf(cmd.ErrOrStderr(), "Not synced %s: %s\n", failure.LocalID, failure.Error)
	}
	return nil
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := localsync.NewTokenStore(a.cfg)
			if err != nil {
				return reportError(err)
			}
			if err := tokens.Clear(); err != nil {
				return reportError(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}
