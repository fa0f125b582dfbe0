// Package repository реализует доступ к PostgreSQL.
// Отвечает исключительно за сохранение и извлечение данных без бизнес-логики.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"

	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/errors"
)

// pgUniqueViolation — SQLSTATE unique_violation
const pgUniqueViolation = "23505"

const userViewColumns = `id, username, email, created_at, updated_at`

type UsersRepository struct {
	db           *sql.DB
	queryTimeout time.Duration
}

// NewUsersRepository создаёт репозиторий пользователей.
// queryTimeout > 0 ограничивает каждый запрос по времени.
func NewUsersRepository(db *sql.DB, queryTimeout time.Duration) *UsersRepository {
	return &UsersRepository{db: db, queryTimeout: queryTimeout}
}

func (r *UsersRepository) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

// Insert добавляет пользователя и возвращает его без хэша пароля.
//
// Ошибки:
//   - ErrAlreadyExists — email уже занят (unique index users_email_key)
//   - ErrInternal — прочие ошибки базы
func (r *UsersRepository) Insert(ctx context.Context, u models.NewUser) (models.UserView, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var v models.UserView
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING `+userViewColumns,
		u.Username, u.Email, u.PasswordHash,
	).Scan(&v.ID, &v.Username, &v.Email, &v.CreatedAt, &v.UpdatedAt)

	if err != nil {
		return models.UserView{}, mapWriteError(err)
	}
	return v, nil
}

// FindByEmail возвращает пользователя вместе с хэшем пароля.
// Если пользователя нет — ErrNotFound.
func (r *UsersRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return r.findOne(ctx, `SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE email=$1`, email)
}

// FindByID возвращает пользователя вместе с хэшем пароля.
// Если пользователя нет — ErrNotFound.
func (r *UsersRepository) FindByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	return r.findOne(ctx, `SELECT id, username, email, password_hash, created_at, updated_at FROM users WHERE id=$1`, id)
}

func (r *UsersRepository) findOne(ctx context.Context, query string, arg any) (models.User, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, serr.ErrNotFound
		}
		return models.User{}, serr.ErrInternal
	}
	return u, nil
}

// Update применяет частичное обновление одним UPDATE.
//
// В SET попадают только заданные в patch колонки, поэтому username, email
// и password_hash меняются атомарно. Пустой patch ничего не пишет и
// возвращает текущее состояние строки.
//
// Ошибки:
//   - ErrNotFound — пользователя с таким id нет
//   - ErrAlreadyExists — новый email занят другим пользователем
//   - ErrInternal — прочие ошибки базы
func (r *UsersRepository) Update(ctx context.Context, id uuid.UUID, patch models.UserPatch) (models.UserView, error) {
	if patch.IsEmpty() {
		u, err := r.FindByID(ctx, id)
		if err != nil {
			return models.UserView{}, err
		}
		return u.View(), nil
	}

	query, args := buildUpdate(id, patch)

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	var v models.UserView
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&v.ID, &v.Username, &v.Email, &v.CreatedAt, &v.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.UserView{}, serr.ErrNotFound
		}
		return models.UserView{}, mapWriteError(err)
	}
	return v, nil
}

// buildUpdate собирает UPDATE только по заданным полям.
func buildUpdate(id uuid.UUID, patch models.UserPatch) (string, []any) {
	sets := make([]string, 0, 4)
	args := make([]any, 0, 4)

	add := func(column string, v *string) {
		if v == nil {
			return
		}
		args = append(args, *v)
		sets = append(sets, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	add("username", patch.Username)
	add("email", patch.Email)
	add("password_hash", patch.PasswordHash)

	sets = append(sets, "updated_at=now()")
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE users SET %s WHERE id=$%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), userViewColumns,
	)
	return query, args
}

// Ping проверяет доступность базы (для health-check).
func (r *UsersRepository) Ping(ctx context.Context) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	if err := r.db.PingContext(ctx); err != nil {
		return serr.ErrInternal
	}
	return nil
}

// mapWriteError переводит ошибку драйвера в доменную.
// Текст ошибки базы наружу не уходит.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return serr.ErrAlreadyExists
	}
	return serr.ErrInternal
}
