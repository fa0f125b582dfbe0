package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/server/models"
	serr "github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/errors"
)

// UsersService реализует создание и обновление учётных записей.
//
// Ответственность:
//   - валидация входных данных
//   - предварительная проверка уникальности email
//   - хэширование паролей и проверка текущего пароля при смене
//   - частичное обновление профиля
//
// Сервис не хранит состояния между запросами; уникальность email
// гарантирует только unique index в базе, проверка здесь — подсказка
// для быстрого ответа.
type UsersService struct {
	users    UsersRepo
	hasher   crypto.PasswordHasher
	validate *Validator
}

// NewUsersService создаёт UsersService с зависимостями.
func NewUsersService(users UsersRepo, hasher crypto.PasswordHasher) *UsersService {
	return &UsersService{
		users:    users,
		hasher:   hasher,
		validate: NewValidator(),
	}
}

// Create регистрирует нового пользователя.
//
// Возвращает:
//   - UserView созданного пользователя (без хэша пароля)
//   - *ValidationError (errors.Is ErrInvalidInput) при некорректных данных
//   - ErrAlreadyExists если email уже зарегистрирован (на проверке или при вставке)
//   - ErrInternal при ошибке хранилища
func (s *UsersService) Create(ctx context.Context, in CreateUserInput) (models.UserView, error) {
	in, err := s.validate.Create(in)
	if err != nil {
		return models.UserView{}, err
	}

	_, err = s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		return models.UserView{}, serr.ErrAlreadyExists
	case !errors.Is(err, serr.ErrNotFound):
		return models.UserView{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return models.UserView{}, hashError(err)
	}

	// параллельный create с тем же email мог успеть раньше:
	// тогда Insert вернёт ErrAlreadyExists от unique index
	return s.users.Insert(ctx, models.NewUser{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	})
}

// Update частично обновляет пользователя.
//
// Ветка смены пароля (передан oldPassword):
//   - текущий пароль проверяется по сохранённому хэшу;
//   - при несовпадении — ErrCredentialMismatch, ничего не пишется;
//   - иначе username/email/хэш нового пароля пишутся одним обновлением.
//
// Ветка профиля (oldPassword не передан): меняются только username/email.
// Пустой запрос ничего не пишет и возвращает текущее состояние.
//
// Ошибки: *ValidationError, ErrNotFound, ErrCredentialMismatch,
// ErrAlreadyExists (новый email занят), ErrInternal.
func (s *UsersService) Update(ctx context.Context, id uuid.UUID, in UpdateUserInput) (models.UserView, error) {
	in, err := s.validate.Update(in)
	if err != nil {
		return models.UserView{}, err
	}

	current, err := s.users.FindByID(ctx, id)
	if err != nil {
		return models.UserView{}, err
	}

	patch := models.UserPatch{
		Username: in.Username,
		Email:    in.Email,
	}

	if in.ChangesPassword() {
		if !s.hasher.Verify(*in.OldPassword, current.PasswordHash) {
			return models.UserView{}, serr.ErrCredentialMismatch
		}
		hash, err := s.hasher.Hash(*in.NewPassword)
		if err != nil {
			return models.UserView{}, hashError(err)
		}
		patch.PasswordHash = &hash
	}

	if patch.Email != nil {
		if *patch.Email == current.Email {
			patch.Email = nil
		} else if err := s.ensureEmailFree(ctx, *patch.Email, id); err != nil {
			return models.UserView{}, err
		}
	}

	if patch.IsEmpty() {
		return current.View(), nil
	}

	return s.users.Update(ctx, id, patch)
}

// Get возвращает пользователя без хэша пароля.
func (s *UsersService) Get(ctx context.Context, id uuid.UUID) (models.UserView, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return models.UserView{}, err
	}
	return u.View(), nil
}

// ensureEmailFree — предварительная проверка, что email не занят другим пользователем.
func (s *UsersService) ensureEmailFree(ctx context.Context, email string, self uuid.UUID) error {
	other, err := s.users.FindByEmail(ctx, email)
	switch {
	case err == nil && other.ID != self:
		return serr.ErrAlreadyExists
	case err == nil, errors.Is(err, serr.ErrNotFound):
		return nil
	default:
		return err
	}
}

// hashError: невалидный пароль остаётся ошибкой ввода, остальное — внутренняя ошибка.
func hashError(err error) error {
	if errors.Is(err, serr.ErrInvalidInput) {
		return err
	}
	return fmt.Errorf("hash password: %w", serr.ErrInternal)
}
