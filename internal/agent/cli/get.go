package cli

import (
	"github.com/spf13/cobra"
)

// NewGetCmd создаёт CLI-команду чтения пользователя.
//
// Пример использования:
//
//	accounts get --id 7f9c...
func NewGetCmd(app *App) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Показать пользователя",
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := app.userID(id)
			if err != nil {
				return err
			}

			u, err := NewAPIClient(app.ServerURL).GetUser(cmd.Context(), userID)
			if err != nil {
				return err
			}
			printUser(cmd, u)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "user id (default: last created user from profile)")
	return cmd
}
