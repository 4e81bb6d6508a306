package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	dashboardrender "github.com/hyrosy/tripdesk/internal/adapters/render/dashboard"
	"github.com/hyrosy/tripdesk/internal/domain"
)

func newDashboardCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"status"},
		Short:   "Fetch and display your bookings and enquiries",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDashboard(cmd, app, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func runDashboard(cmd *cobra.Command, app *app, asJSON bool) error {
	fetch := func(ctx context.Context) error {
		return app.service.Resume(ctx)
	}

	var err error
	if asJSON {
		err = fetch(cmd.Context())
	} else {
		err = runFetchSpinner(cmd.Context(), cmd.ErrOrStderr(), "Loading dashboard...", fetch)
	}
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return errors.New("not logged in: run `tripdesk login` first")
		}
		return err
	}

	return writeDashboard(cmd, app, asJSON)
}

func writeDashboard(cmd *cobra.Command, app *app, asJSON bool) error {
	result, ok := app.service.CurrentResult()
	if !ok {
		return errors.New("no dashboard data available")
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	actor, _ := app.service.CurrentSession(cmd.Context())

	rendered, err := app.renderer(result, dashboardrender.RenderOptions{
		Actor: actor,
		Site:  app.service.CurrentSite(cmd.Context()),
		Now:   app.now(),
	})
	if err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
