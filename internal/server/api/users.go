// HTTP-хендлеры создания, обновления и чтения пользователя
package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	smodels "github.com/IvanChernomyrdin/go-yandex-accounts/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/models"
)

// CreateUser регистрирует пользователя.
//
// Ответы:
//   - 201 Created: пользователь создан, тело — публичное представление;
//   - 400 Bad Request: неверный JSON или невалидные поля (fields);
//   - 409 Conflict: email уже занят;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Create user
// @Description  Registers a new user. The password is stored as a salted hash and never returned.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body models.CreateUserRequest true "Create user request"
// @Success      201 {object} models.User
// @Failure      400 {object} models.ErrorResponse "Invalid input or bad JSON"
// @Failure      409 {object} models.ErrorResponse "Email already registered"
// @Failure      413 {object} models.ErrorResponse "Payload too large"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /users [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, decodeStatus(err), err)
		return
	}

	v, err := h.Svc.Users.Create(r.Context(), service.CreateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.writeUserError(w, "create user failed", err)
		return
	}

	writeJSON(w, http.StatusCreated, toUserResponse(v))
}

// UpdateUser частично обновляет пользователя.
//
// Смена пароля требует oldPassword, newPassword и confirmPassword.
//
// Ответы:
//   - 200 OK: обновлённое представление пользователя;
//   - 400 Bad Request: неверный JSON, id или невалидные поля;
//   - 401 Unauthorized: текущий пароль не совпал;
//   - 404 Not Found: пользователя нет;
//   - 409 Conflict: новый email занят;
//   - 500 Internal Server Error: прочие ошибки.
//
// @Summary      Update user
// @Description  Partially updates username and email. Password change requires the current password.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id path string true "User ID (UUID)"
// @Param        request body models.UpdateUserRequest true "Update user request"
// @Success      200 {object} models.User
// @Failure      400 {object} models.ErrorResponse "Invalid input or bad JSON"
// @Failure      401 {object} models.ErrorResponse "Current password does not match"
// @Failure      404 {object} models.ErrorResponse "User not found"
// @Failure      409 {object} models.ErrorResponse "Email already registered"
// @Failure      413 {object} models.ErrorResponse "Payload too large"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /users/{id} [put]
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	var req models.UpdateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, decodeStatus(err), err)
		return
	}

	v, err := h.Svc.Users.Update(r.Context(), id, service.UpdateUserInput{
		Username:        req.Username,
		Email:           req.Email,
		OldPassword:     req.OldPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.writeUserError(w, "update user failed", err, "user_id", id.String())
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(v))
}

// GetUser возвращает пользователя без хэша пароля.
//
// @Summary      Get user
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID (UUID)"
// @Success      200 {object} models.User
// @Failure      400 {object} models.ErrorResponse "Invalid id"
// @Failure      404 {object} models.ErrorResponse "User not found"
// @Failure      500 {object} models.ErrorResponse "Internal server error"
// @Router       /users/{id} [get]
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, http.StatusBadRequest, serr.ErrInvalidInput)
		return
	}

	v, err := h.Svc.Users.Get(r.Context(), id)
	if err != nil {
		h.writeUserError(w, "get user failed", err, "user_id", id.String())
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(v))
}

// writeUserError маппит доменную ошибку в статус.
// Внутренние ошибки логируются, клиенту уходит только "internal error".
func (h *Handler) writeUserError(w http.ResponseWriter, msg string, err error, kv ...any) {
	switch {
	case errors.Is(err, serr.ErrInvalidInput):
		WriteError(w, http.StatusBadRequest, err)
	case errors.Is(err, serr.ErrCredentialMismatch):
		WriteError(w, http.StatusUnauthorized, serr.ErrCredentialMismatch)
	case errors.Is(err, serr.ErrNotFound):
		WriteError(w, http.StatusNotFound, serr.ErrNotFound)
	case errors.Is(err, serr.ErrAlreadyExists):
		WriteError(w, http.StatusConflict, serr.ErrAlreadyExists)
	default:
		h.Log.Logger.Sugar().Errorw(msg, append([]any{"error", err}, kv...)...)
		WriteError(w, http.StatusInternalServerError, serr.ErrInternal)
	}
}

func toUserResponse(v smodels.UserView) models.User {
	return models.User{
		ID:        v.ID.String(),
		Username:  v.Username,
		Email:     v.Email,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
