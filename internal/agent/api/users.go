// Методы клиента для эндпоинтов /users: создание, обновление и чтение пользователя.
package api

import (
	"context"
	"net/url"

	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/models"
)

// CreateUser регистрирует пользователя (POST /users).
func (c *Client) CreateUser(ctx context.Context, req models.CreateUserRequest) (models.User, error) {
	var resp models.User
	err := c.PostJSON(ctx, "/users", req, &resp)
	return resp, err
}

// UpdateUser частично обновляет пользователя (PUT /users/{id}).
//
// Незаполненные (nil) поля req не отправляются и на сервере не меняются.
func (c *Client) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.User, error) {
	var resp models.User
	err := c.PutJSON(ctx, "/users/"+url.PathEscape(id), req, &resp)
	return resp, err
}

// GetUser возвращает пользователя (GET /users/{id}).
func (c *Client) GetUser(ctx context.Context, id string) (models.User, error) {
	var resp models.User
	err := c.GetJSON(ctx, "/users/"+url.PathEscape(id), &resp)
	return resp, err
}

// Health проверяет доступность сервера (GET /healthz).
func (c *Client) Health(ctx context.Context) error {
	var resp models.HealthResponse
	return c.GetJSON(ctx, "/healthz", &resp)
}
