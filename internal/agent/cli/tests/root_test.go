package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/agent/config"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/models"
)

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	cmd := cli.NewRootCmd("1.0.0", "2026-10-19")

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}

	for _, w := range []string{"create", "update", "get", "health", "version"} {
		require.True(t, names[w], "expected subcommand %q to exist", w)
	}
}

// Адрес сервера берётся из профиля, если --server не передан
func TestNewRootCmd_UsesProfileServer(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	mux := http.NewServeMux()
	mux.HandleFunc("/users/u1", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.User{ID: "u1", Username: "ana"})
	})
	srv := httptest.NewTLSServer(mux)
	defer srv.Close()

	p, err := config.DefaultPath()
	require.NoError(t, err)
	require.NoError(t, config.Save(p, &config.Profile{ServerURL: srv.URL, LastUserID: "u1"}))

	root := cli.NewRootCmd("1.0.0", "2026-10-19")

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"get"})

	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "username=ana")
}

func TestNewRootCmd_BrokenProfile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := config.DefaultPath()
	require.NoError(t, err)
	require.NoError(t, config.Save(p, &config.Profile{}))
	require.NoError(t, os.WriteFile(p, []byte("{broken"), 0o600))

	root := cli.NewRootCmd("1.0.0", "2026-10-19")
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"version"})

	require.Error(t, root.Execute())
}
