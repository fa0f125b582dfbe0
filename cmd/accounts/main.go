// Package main — точка входа CLI-клиента accounts.
//
// Версия и дата сборки задаются через ldflags:
//
//	go build -ldflags "-X main.buildVersion=1.0.0 -X main.buildDate=$(date +%F)" ./cmd/accounts
package main

import "github.com/IvanChernomyrdin/go-yandex-accounts/internal/agent/cli"

var (
	buildVersion = "dev"
	buildDate    = "unknown"
)

func main() {
	cli.Execute(buildVersion, buildDate)
}
