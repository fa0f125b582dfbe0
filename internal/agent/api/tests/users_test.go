package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	serr "github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/models"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/utils"
)

func TestClient_CreateUser(t *testing.T) {
	c := newServer(t, "/users", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req models.CreateUserRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, models.CreateUserRequest{Username: "ana", Email: "a@x.com", Password: "secret"}, req)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.User{ID: "u1", Username: "ana", Email: "a@x.com"})
	})

	u, err := c.CreateUser(context.Background(), models.CreateUserRequest{Username: "ana", Email: "a@x.com", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, "u1", u.ID)
}

// nil-поля не попадают в тело запроса
func TestClient_UpdateUser_OmitsNilFields(t *testing.T) {
	c := newServer(t, "/users/u1", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)

		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		require.Equal(t, map[string]any{"email": "b@x.com"}, raw)

		json.NewEncoder(w).Encode(models.User{ID: "u1", Email: "b@x.com"})
	})

	u, err := c.UpdateUser(context.Background(), "u1", models.UpdateUserRequest{Email: utils.StrPtr("b@x.com")})
	require.NoError(t, err)
	require.Equal(t, "b@x.com", u.Email)
}

func TestClient_GetUser_NotFound(t *testing.T) {
	c := newServer(t, "/users/u1", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(models.ErrorResponse{Error: "not found"})
	})

	_, err := c.GetUser(context.Background(), "u1")
	require.ErrorIs(t, err, serr.ErrNotFound)
}

func TestClient_Health(t *testing.T) {
	c := newServer(t, "/healthz", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.HealthResponse{Status: "ok"})
	})

	require.NoError(t, c.Health(context.Background()))
}
