// Package errors содержит общие доменные ошибки приложения
// и утилиты для error wrapping.
//
// Эти ошибки используются в service и repository слоях
// и маппятся на HTTP-статусы в api слое.
package errors

import (
	"errors"
	"sort"
	"strings"
)

var (
	// Входные данные невалидны (пустые поля, неправильный формат и т.п.)
	ErrInvalidInput = errors.New("invalid input")
	// Текущий пароль не совпал с сохранённым хэшем
	ErrCredentialMismatch = errors.New("current password does not match")
	// Получена непредвиденная ошибка (в том числе ошибка хранилища)
	ErrInternal = errors.New("internal error")
	// Полученные JSON данные с ошибками
	ErrBadJSON = errors.New("bad json")
	// Ресурс уже существует (например email уже занят)
	ErrAlreadyExists = errors.New("already exists")
	// Ресурс не найден
	ErrNotFound = errors.New("not found")
	// Тело запроса больше server.max_body_bytes
	ErrPayloadTooLarge = errors.New("payload too large")
	// База недоступна (health-check)
	ErrUnavailable = errors.New("service unavailable")
)

// ValidationError — ошибка валидации входных данных с разбивкой по полям.
//
// Fields: имя поля (как в JSON) -> причина.
// errors.Is(err, ErrInvalidInput) для ValidationError возвращает true.
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError создаёт пустую ошибку валидации.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add добавляет причину для поля. Первая причина по полю не перезаписывается.
func (e *ValidationError) Add(field, reason string) {
	if _, ok := e.Fields[field]; ok {
		return
	}
	e.Fields[field] = reason
}

// Empty сообщает, что ни одно поле не провалило проверку.
func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	if e.Empty() {
		return ErrInvalidInput.Error()
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
