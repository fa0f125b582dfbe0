package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/models"
)

// NewCreateCmd создаёт CLI-команду регистрации пользователя.
//
// Пароль берётся из --password, из stdin (--password-stdin)
// или спрашивается в терминале. id созданного пользователя
// запоминается в профиле для update/get.
//
// Пример использования:
//
//	accounts create --username ana --email ana@example.com
func NewCreateCmd(app *App) *cobra.Command {
	var (
		username, email, password string
		passwordStdin             bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Создать пользователя",
		Long: `Создать пользователя на сервере.

Пример:
  accounts create --username ana --email ana@example.com
  echo 'secret1' | accounts create --username ana --email ana@example.com --password-stdin
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				pw, err := newPasswordReader(cmd, passwordStdin).read("Password")
				if err != nil {
					return err
				}
				password = pw
			}

			c := NewAPIClient(app.ServerURL)
			u, err := c.CreateUser(cmd.Context(), models.CreateUserRequest{
				Username: username,
				Email:    email,
				Password: password,
			})
			if err != nil {
				return err
			}

			app.rememberUser(cmd, u.ID)

			fmt.Fprintln(cmd.OutOrStdout(), "user created")
			printUser(cmd, u)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "email (unique)")
	cmd.Flags().StringVar(&password, "password", "", "password (prefer the prompt or --password-stdin)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read password from stdin")
	cmd.MarkFlagRequired("username")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagsMutuallyExclusive("password", "password-stdin")

	return cmd
}

func printUser(cmd *cobra.Command, u models.User) {
	fmt.Fprintf(cmd.OutOrStdout(), "id=%s\nusername=%s\nemail=%s\n", u.ID, u.Username, u.Email)
}
