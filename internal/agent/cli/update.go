package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/models"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/utils"
)

// NewUpdateCmd создаёт CLI-команду частичного обновления пользователя.
//
// На сервер уходят только явно переданные флаги. Смена пароля:
// --change-password спрашивает текущий, новый и повтор нового
// (или читает их тремя строками из stdin с --password-stdin);
// либо --old-password/--new-password/--confirm-password.
//
// Пример использования:
//
//	accounts update --username bob
//	accounts update --change-password
func NewUpdateCmd(app *App) *cobra.Command {
	var (
		id, username, email                 string
		oldPassword, newPassword, confirmPw string
		changePassword, passwordStdin       bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Изменить имя, email или пароль",
		Long: `Частичное обновление пользователя.

Без --id используется пользователь из профиля.

Пример:
  accounts update --email bob@example.com
  accounts update --change-password
  printf 'old\nnew\nnew\n' | accounts update --change-password --password-stdin
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := app.userID(id)
			if err != nil {
				return err
			}

			var req models.UpdateUserRequest
			flags := cmd.Flags()
			if flags.Changed("username") {
				req.Username = utils.StrPtr(username)
			}
			if flags.Changed("email") {
				req.Email = utils.StrPtr(email)
			}
			if flags.Changed("old-password") {
				req.OldPassword = utils.StrPtr(oldPassword)
			}
			if flags.Changed("new-password") {
				req.NewPassword = utils.StrPtr(newPassword)
			}
			if flags.Changed("confirm-password") {
				req.ConfirmPassword = utils.StrPtr(confirmPw)
			}

			if changePassword {
				pr := newPasswordReader(cmd, passwordStdin)
				for _, p := range []struct {
					dst    **string
					prompt string
				}{
					{&req.OldPassword, "Current password"},
					{&req.NewPassword, "New password"},
					{&req.ConfirmPassword, "Repeat new password"},
				} {
					pw, err := pr.read(p.prompt)
					if err != nil {
						return err
					}
					*p.dst = utils.StrPtr(pw)
				}
			}

			if req == (models.UpdateUserRequest{}) {
				return errors.New("nothing to update: pass --username, --email or --change-password")
			}

			c := NewAPIClient(app.ServerURL)
			u, err := c.UpdateUser(cmd.Context(), userID, req)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "user updated")
			printUser(cmd, u)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "user id (default: last created user from profile)")
	cmd.Flags().StringVar(&username, "username", "", "new display name")
	cmd.Flags().StringVar(&email, "email", "", "new email")
	cmd.Flags().BoolVar(&changePassword, "change-password", false, "prompt for current and new password")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "with --change-password: read current, new and repeated password as lines from stdin")
	cmd.Flags().StringVar(&oldPassword, "old-password", "", "current password")
	cmd.Flags().StringVar(&newPassword, "new-password", "", "new password")
	cmd.Flags().StringVar(&confirmPw, "confirm-password", "", "new password again")
	cmd.MarkFlagsMutuallyExclusive("change-password", "old-password")
	cmd.MarkFlagsMutuallyExclusive("change-password", "new-password")
	cmd.MarkFlagsMutuallyExclusive("change-password", "confirm-password")

	return cmd
}
