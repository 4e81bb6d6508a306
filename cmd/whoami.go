package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newWhoamiCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in actor",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			actor, ok := app.service.CurrentSession(cmd.Context())
			if !ok {
				return errors.New("not logged in")
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (#%d) @ %s\n", actor.Name, actor.ID, app.service.CurrentSite(cmd.Context()))
			return err
		},
	}
}
