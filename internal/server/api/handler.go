// Package api реализует HTTP-слой сервера учётных записей.
//
// Пакет отвечает за:
//   - обработку входящих запросов и формирование ответов (JSON, статусы);
//   - маппинг доменных ошибок (service/repository) в HTTP-коды и сообщения.
//
// Маршруты регистрируются в internal/server/net/http.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/server/service"
	serr "github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/logger"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/models"
)

// Каждый метод если будет возвращать ответ то будет это делать в JSON
const (
	JsonContentType string = "application/json"
	ContentType     string = "Content-Type"
)

// ErrorResponse стандартный формат ошибки API.
type ErrorResponse = models.ErrorResponse

// Handler агрегирует зависимости HTTP-слоя и предоставляет методы-хендлеры.
//
// Handler содержит:
//   - Svc: сервисный слой (бизнес-логика);
//   - Log: логгер для записи событий и ошибок.
type Handler struct {
	Svc *service.Services
	Log *logger.HTTPLogger
}

// NewHandler создаёт экземпляр Handler с переданными зависимостями.
func NewHandler(svc *service.Services, log *logger.HTTPLogger) *Handler {
	return &Handler{
		Svc: svc,
		Log: log,
	}
}

// Вспомогательная функция вывода ошибки.
// Для ValidationError в ответ попадают поля с причинами.
func WriteError(w http.ResponseWriter, status int, err error) {
	resp := ErrorResponse{Error: err.Error()}

	var verr *serr.ValidationError
	if errors.As(err, &verr) {
		resp.Error = serr.ErrInvalidInput.Error()
		resp.Fields = verr.Fields
	}

	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(ContentType, JsonContentType)
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON читает тело запроса.
// Тело больше лимита (http.MaxBytesReader) — ErrPayloadTooLarge, прочее — ErrBadJSON.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return serr.ErrPayloadTooLarge
		}
		return serr.ErrBadJSON
	}
	return nil
}

// decodeStatus: статус для ошибки decodeJSON.
func decodeStatus(err error) int {
	if errors.Is(err, serr.ErrPayloadTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}
