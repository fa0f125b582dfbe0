// Серверная модель пользователя
package models

import (
	"time"

	"github.com/google/uuid"
)

// User — строка таблицы users целиком, включая хэш пароля.
// Наружу сервисного слоя не отдаётся, для ответов есть UserView.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// View возвращает безопасную проекцию без хэша пароля.
func (u User) View() UserView {
	return UserView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// UserView — проекция пользователя без секретных полей.
type UserView struct {
	ID        uuid.UUID
	Username  string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser — кандидат на вставку. ID и время проставляет база.
type NewUser struct {
	Username     string
	Email        string
	PasswordHash string
}

// UserPatch — частичное обновление: nil означает "не трогать".
type UserPatch struct {
	Username     *string
	Email        *string
	PasswordHash *string
}

func (p UserPatch) IsEmpty() bool {
	return p.Username == nil && p.Email == nil && p.PasswordHash == nil
}
