package models

import "time"

// User — публичное представление пользователя в HTTP API.
//
// Хэш пароля сюда не попадает ни при каких условиях: поля для него нет.
//
// Используется в ответах:
//
//	POST /users, PUT /users/{id}, GET /users/{id}
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUserRequest — запрос на создание пользователя.
//
// Используется в:
//
//	POST /users
type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest — частичное обновление пользователя.
//
// Используется в:
//
//	PUT /users/{id}
//
// Все поля — указатели: отсутствующее в JSON поле не меняется.
// Смена пароля возможна только вместе с OldPassword, при этом
// NewPassword и ConfirmPassword обязательны и должны совпадать.
type UpdateUserRequest struct {
	Username        *string `json:"username,omitempty"`
	Email           *string `json:"email,omitempty"`
	OldPassword     *string `json:"oldPassword,omitempty"`
	NewPassword     *string `json:"newPassword,omitempty"`
	ConfirmPassword *string `json:"confirmPassword,omitempty"`
}

// ErrorResponse стандартный формат ошибки API.
//
// Fields заполняется только для ошибок валидации: поле -> причина.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// HealthResponse — ответ GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}
