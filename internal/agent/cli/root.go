// Package cli реализует командный интерфейс (CLI) клиента сервера учётных записей.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку локального профиля (адрес сервера, id последнего пользователя);
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета — функция Execute.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/agent/config"
)

const defaultServerURL = "https://127.0.0.1:8080"

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ServerURL — базовый URL сервера (например, "https://127.0.0.1:8080").
	ServerURL string

	// ProfilePath — путь к файлу профиля.
	ProfilePath string
	// Profile — загруженный профиль. Может быть nil, если загрузка не выполнялась.
	Profile *config.Profile
}

// rememberUser сохраняет адрес сервера и id пользователя в профиль.
// Ошибка записи профиля не ломает команду: результат уже получен.
func (app *App) rememberUser(cmd *cobra.Command, id string) {
	if app.ProfilePath == "" {
		return
	}
	if app.Profile == nil {
		app.Profile = &config.Profile{}
	}
	app.Profile.ServerURL = app.ServerURL
	app.Profile.LastUserID = id

	if err := SaveProfile(app.ProfilePath, app.Profile); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: profile not saved: %v\n", err)
	}
}

// userID возвращает id из флага или из профиля.
func (app *App) userID(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if app.Profile != nil && app.Profile.LastUserID != "" {
		return app.Profile.LastUserID, nil
	}
	return "", fmt.Errorf("user id is required: pass --id or create a user first")
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// buildVersion и buildDate используются для вывода информации о сборке (команда version).
// В PersistentPreRunE загружается профиль; адрес сервера из профиля
// используется, если --server не передан явно.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{
		ServerURL: defaultServerURL,
	}

	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Accounts CLI — создание и изменение учётных записей",
		Long: `Accounts CLI.

Команды:
  create    Создать пользователя
  update    Изменить имя, email или пароль
  get       Показать пользователя
  health    Проверить доступность сервера
  version   Версия и дата сборки

Примеры:

Создание (пароль будет запрошен без эха):
  accounts create --username ana --email ana@example.com

Смена email:
  accounts update --email new@example.com

Смена пароля:
  accounts update --change-password
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			p, err := config.DefaultPath()
			if err != nil {
				return err
			}
			app.ProfilePath = p

			profile, err := config.Load(app.ProfilePath)
			if err != nil {
				return err
			}
			app.Profile = profile

			if !cmd.Flags().Changed("server") && profile.ServerURL != "" {
				app.ServerURL = profile.ServerURL
			}
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", defaultServerURL, "server base URL")

	cmd.AddCommand(NewCreateCmd(app))
	cmd.AddCommand(NewUpdateCmd(app))
	cmd.AddCommand(NewGetCmd(app))
	cmd.AddCommand(NewHealthCmd(app))
	cmd.AddCommand(NewVersionCmd(buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке выполнения команды сообщение выводится в stderr, после чего процесс
// завершается с кодом 1 (os.Exit(1)).
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
