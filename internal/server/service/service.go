// Package service содержит бизнес-логику приложения (accounts).
// Это прослойка между HTTP-обработчиками (api) и хранилищем данных (repository).
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/server/config"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/server/models"
)

//go:generate mockgen -source=service.go -destination=mocks/mock_repos.go -package=mocks

// Repositories — набор интерфейсов, которые сервисный слой ожидает от слоя repository.
type Repositories struct {
	Users  UsersRepo
	Health HealthRepo
}

// Services — агрегатор всех сервисов приложения.
type Services struct {
	Users  *UsersService
	Health *HealthService
}

// NewServices собирает все сервисы приложения.
// cfg нужен для выбора хэшера паролей и его параметров.
func NewServices(repos Repositories, cfg *config.Config) (*Services, error) {
	hasher, err := NewPasswordHasher(cfg.Password)
	if err != nil {
		return nil, err
	}
	return &Services{
		Users:  NewUsersService(repos.Users, hasher),
		Health: NewHealthService(repos.Health),
	}, nil
}

// NewPasswordHasher выбирает реализацию по password.hasher.
func NewPasswordHasher(cfg config.PasswordConfig) (crypto.PasswordHasher, error) {
	switch strings.ToLower(cfg.Hasher) {
	case "", "bcrypt":
		return crypto.NewBcryptHasher(cfg.Bcrypt.Cost), nil
	case "argon2id":
		return crypto.NewArgon2Hasher(crypto.Argon2Params{
			Time:      cfg.Argon2.Time,
			MemoryKiB: cfg.Argon2.MemoryKiB,
			Threads:   cfg.Argon2.Threads,
			KeyLen:    cfg.Argon2.KeyLen,
			SaltLen:   cfg.Argon2.SaltLen,
		}), nil
	default:
		return nil, fmt.Errorf("unknown password hasher %q", cfg.Hasher)
	}
}

// HealthRepo — минимально нужное для health-check.
type HealthRepo interface {
	Ping(ctx context.Context) error
}

// UsersRepo — репозиторий пользователей.
//
// Отсутствие записи — ErrNotFound, занятый email — ErrAlreadyExists,
// всё остальное — ErrInternal.
type UsersRepo interface {
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (models.User, error)
	Insert(ctx context.Context, u models.NewUser) (models.UserView, error)
	Update(ctx context.Context, id uuid.UUID, patch models.UserPatch) (models.UserView, error)
}

// HealthService отвечает на вопрос "жива ли база".
type HealthService struct {
	repo HealthRepo
}

func NewHealthService(repo HealthRepo) *HealthService {
	return &HealthService{repo: repo}
}

func (s *HealthService) Check(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
