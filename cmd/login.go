package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hyrosy/tripdesk/internal/domain"
)

func newLoginCmd(app *app) *cobra.Command {
	var siteURL, username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to a travel site and load the dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogin(cmd, app, siteURL, username, password)
		},
	}

	cmd.Flags().StringVar(&siteURL, "site", app.defaultSite, "Site address, e.g. https://world.hyrosy.com")
	cmd.Flags().StringVar(&username, "username", "", "WordPress username")
	cmd.Flags().StringVar(&password, "app-password", "", "WordPress application password")

	return cmd
}

func runLogin(cmd *cobra.Command, app *app, siteURL, username, password string) error {
	signIn := func(ctx context.Context) error {
		return app.service.Login(ctx, siteURL, username, password)
	}

	if err := runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Signing in...", signIn); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingInput):
			return err
		case errors.Is(err, domain.ErrInvalidCredentials):
			return fmt.Errorf("login failed: %w", err)
		default:
			return err
		}
	}

	actor, ok := app.service.CurrentSession(cmd.Context())
	if ok {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (#%d)\n", actor.Name, actor.ID)
	}

	return writeDashboard(cmd, app, false)
}
