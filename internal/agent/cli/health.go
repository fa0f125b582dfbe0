package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewHealthCmd создаёт CLI-команду проверки доступности сервера.
func NewHealthCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Проверить доступность сервера",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := NewAPIClient(app.ServerURL).Health(cmd.Context()); err != nil {
				return fmt.Errorf("server %s is unavailable: %w", app.ServerURL, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "server %s is ok\n", app.ServerURL)
			return nil
		},
	}
}
