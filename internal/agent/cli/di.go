package cli

import (
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/agent/api"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/agent/config"
)

// для тестов
var (
	NewAPIClient = api.NewClient
	ReadPassword = readPassword
	SaveProfile  = config.Save
)
