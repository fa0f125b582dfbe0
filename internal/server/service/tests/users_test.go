package tests

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/server/crypto"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/server/models"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/server/service"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/utils"
)

// в тестах минимальная стоимость bcrypt, иначе тесты идут секунды
func newUsersService(t *testing.T) (*service.UsersService, *mocks.MockUsersRepo, crypto.PasswordHasher) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockUsersRepo(ctrl)
	hasher := crypto.NewBcryptHasher(bcrypt.MinCost)

	return service.NewUsersService(repo, hasher), repo, hasher
}

func storedUser(t *testing.T, hasher crypto.PasswordHasher, password string) models.User {
	t.Helper()

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	now := time.Now()
	return models.User{
		ID:           uuid.New(),
		Username:     "ana",
		Email:        "a@x.com",
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Успех: хэш в базу, хэш проверяется исходным паролем
func TestUsersService_Create_OK(t *testing.T) {
	ctx := context.Background()
	svc, repo, hasher := newUsersService(t)

	id := uuid.New()

	repo.EXPECT().FindByEmail(ctx, "a@x.com").Return(models.User{}, serr.ErrNotFound)
	repo.EXPECT().
		Insert(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.NewUser) (models.UserView, error) {
			require.Equal(t, "ana", u.Username)
			require.Equal(t, "a@x.com", u.Email)
			require.NotEqual(t, "secret1", u.PasswordHash)
			require.True(t, hasher.Verify("secret1", u.PasswordHash))
			return models.UserView{ID: id, Username: u.Username, Email: u.Email}, nil
		})

	v, err := svc.Create(ctx, service.CreateUserInput{Username: "ana", Email: "a@x.com", Password: "secret1"})
	require.NoError(t, err)
	require.Equal(t, id, v.ID)
	require.Equal(t, "ana", v.Username)
}

// Email нормализуется до проверки и вставки
func TestUsersService_Create_NormalizesEmail(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newUsersService(t)

	repo.EXPECT().FindByEmail(ctx, "a@x.com").Return(models.User{}, serr.ErrNotFound)
	repo.EXPECT().
		Insert(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.NewUser) (models.UserView, error) {
			require.Equal(t, "a@x.com", u.Email)
			require.Equal(t, "ana", u.Username)
			return models.UserView{ID: uuid.New(), Username: u.Username, Email: u.Email}, nil
		})

	_, err := svc.Create(ctx, service.CreateUserInput{Username: " ana ", Email: "  A@X.com ", Password: "secret1"})
	require.NoError(t, err)
}

// Email уже занят: до хэширования и вставки не доходим
func TestUsersService_Create_DuplicateAtPrecheck(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newUsersService(t)

	repo.EXPECT().FindByEmail(ctx, "a@x.com").Return(models.User{ID: uuid.New(), Email: "a@x.com"}, nil)

	_, err := svc.Create(ctx, service.CreateUserInput{Username: "ana", Email: "a@x.com", Password: "secret1"})
	require.ErrorIs(t, err, serr.ErrAlreadyExists)
}

// Гонка: проверка прошла, вставку отбил unique index
func TestUsersService_Create_DuplicateAtInsert(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newUsersService(t)

	repo.EXPECT().FindByEmail(ctx, "a@x.com").Return(models.User{}, serr.ErrNotFound)
	repo.EXPECT().Insert(ctx, gomock.Any()).Return(models.UserView{}, serr.ErrAlreadyExists)

	_, err := svc.Create(ctx, service.CreateUserInput{Username: "ana", Email: "a@x.com", Password: "secret1"})
	require.ErrorIs(t, err, serr.ErrAlreadyExists)
}

// Ошибка хранилища на проверке
func TestUsersService_Create_StoreError(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newUsersService(t)

	repo.EXPECT().FindByEmail(ctx, "a@x.com").Return(models.User{}, serr.ErrInternal)

	_, err := svc.Create(ctx, service.CreateUserInput{Username: "ana", Email: "a@x.com", Password: "secret1"})
	require.ErrorIs(t, err, serr.ErrInternal)
}

// Невалидные данные: репозиторий не вызывается, поля перечислены
func TestUsersService_Create_Invalid(t *testing.T) {
	svc, _, _ := newUsersService(t)

	_, err := svc.Create(context.Background(), service.CreateUserInput{Username: "", Email: "", Password: "123"})
	require.ErrorIs(t, err, serr.ErrInvalidInput)

	var verr *serr.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Contains(t, verr.Fields, "username")
	require.Contains(t, verr.Fields, "email")
	require.Contains(t, verr.Fields, "password")
}

// Смена пароля: новый хэш проверяется новым паролем и не проверяется старым
func TestUsersService_Update_ChangePassword_OK(t *testing.T) {
	ctx := context.Background()
	svc, repo, hasher := newUsersService(t)

	cur := storedUser(t, hasher, "old-secret")

	repo.EXPECT().FindByID(ctx, cur.ID).Return(cur, nil)
	repo.EXPECT().
		Update(ctx, cur.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, p models.UserPatch) (models.UserView, error) {
			require.Nil(t, p.Username)
			require.Nil(t, p.Email)
			require.NotNil(t, p.PasswordHash)
			require.True(t, hasher.Verify("new-secret", *p.PasswordHash))
			require.False(t, hasher.Verify("old-secret", *p.PasswordHash))
			return cur.View(), nil
		})

	_, err := svc.Update(ctx, cur.ID, service.UpdateUserInput{
		OldPassword:     utils.StrPtr("old-secret"),
		NewPassword:     utils.StrPtr("new-secret"),
		ConfirmPassword: utils.StrPtr("new-secret"),
	})
	require.NoError(t, err)
}

// Пароль и профиль меняются одним обновлением
func TestUsersService_Update_ChangePasswordAndProfile(t *testing.T) {
	ctx := context.Background()
	svc, repo, hasher := newUsersService(t)

	cur := storedUser(t, hasher, "old-secret")

	repo.EXPECT().FindByID(ctx, cur.ID).Return(cur, nil)
	repo.EXPECT().FindByEmail(ctx, "b@x.com").Return(models.User{}, serr.ErrNotFound)
	repo.EXPECT().
		Update(ctx, cur.ID, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ uuid.UUID, p models.UserPatch) (models.UserView, error) {
			require.Equal(t, "bob", *p.Username)
			require.Equal(t, "b@x.com", *p.Email)
			require.NotNil(t, p.PasswordHash)
			return models.UserView{ID: cur.ID, Username: "bob", Email: "b@x.com"}, nil
		}).
		Times(1)

	v, err := svc.Update(ctx, cur.ID, service.UpdateUserInput{
		Username:        utils.StrPtr("bob"),
		Email:           utils.StrPtr("b@x.com"),
		OldPassword:     utils.StrPtr("old-secret"),
		NewPassword:     utils.StrPtr("new-secret"),
		ConfirmPassword: utils.StrPtr("new-secret"),
	})
	require.NoError(t, err)
	require.Equal(t, "bob", v.Username)
	require.Equal(t, "b@x.com", v.Email)
}

// Неверный текущий пароль: ничего не пишем
func TestUsersService_Update_WrongOldPassword(t *testing.T) {
	ctx := context.Background()
	svc, repo, hasher := newUsersService(t)

	cur := storedUser(t, hasher, "old-secret")

	repo.EXPECT().FindByID(ctx, cur.ID).Return(cur, nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Update(ctx, cur.ID, service.UpdateUserInput{
		Username:        utils.StrPtr("bob"),
		OldPassword:     utils.StrPtr("wrong-secret"),
		NewPassword:     utils.StrPtr("new-secret"),
		ConfirmPassword: utils.StrPtr("new-secret"),
	})
	require.ErrorIs(t, err, serr.ErrCredentialMismatch)
}

// confirmPassword не совпадает: до хранилища не доходим
func TestUsersService_Update_ConfirmMismatch(t *testing.T) {
	svc, _, _ := newUsersService(t)

	_, err := svc.Update(context.Background(), uuid.New(), service.UpdateUserInput{
		OldPassword:     utils.StrPtr("old-secret"),
		NewPassword:     utils.StrPtr("new-secret"),
		ConfirmPassword: utils.StrPtr("new-secreT"),
	})
	require.ErrorIs(t, err, serr.ErrInvalidInput)

	var verr *serr.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Contains(t, verr.Fields, "confirmPassword")
}

// Ветка профиля: только username
func TestUsersService_Update_ProfileOnly(t *testing.T) {
	ctx := context.Background()
	svc, repo, hasher := newUsersService(t)

	cur := storedUser(t, hasher, "old-secret")

	repo.EXPECT().FindByID(ctx, cur.ID).Return(cur, nil)
	repo.EXPECT().
		Update(ctx, cur.ID, models.UserPatch{Username: utils.StrPtr("bob")}).
		Return(models.UserView{ID: cur.ID, Username: "bob", Email: cur.Email}, nil)

	v, err := svc.Update(ctx, cur.ID, service.UpdateUserInput{Username: utils.StrPtr("bob")})
	require.NoError(t, err)
	require.Equal(t, "bob", v.Username)
}

// Схема создания проверяет только наличие полей и длину пароля
func TestUsersService_Create_FreeFormFields(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newUsersService(t)

	long := strings.Repeat("u", 65)

	repo.EXPECT().FindByEmail(ctx, "ana").Return(models.User{}, serr.ErrNotFound)
	repo.EXPECT().
		Insert(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, u models.NewUser) (models.UserView, error) {
			return models.UserView{ID: uuid.New(), Username: u.Username, Email: u.Email}, nil
		})

	v, err := svc.Create(ctx, service.CreateUserInput{Username: long, Email: "ana", Password: "secret"})
	require.NoError(t, err)
	require.Equal(t, long, v.Username)
	require.Equal(t, "ana", v.Email)
}

// Пустой username в обновлении допустим
func TestUsersService_Update_EmptyUsername(t *testing.T) {
	ctx := context.Background()
	svc, repo, hasher := newUsersService(t)

	cur := storedUser(t, hasher, "old-secret")

	repo.EXPECT().FindByID(ctx, cur.ID).Return(cur, nil)
	repo.EXPECT().
		Update(ctx, cur.ID, models.UserPatch{Username: utils.StrPtr("")}).
		Return(models.UserView{ID: cur.ID, Username: "", Email: cur.Email}, nil)

	v, err := svc.Update(ctx, cur.ID, service.UpdateUserInput{Username: utils.StrPtr("")})
	require.NoError(t, err)
	require.Empty(t, v.Username)
}

// Новый email занят другим пользователем
func TestUsersService_Update_EmailTaken(t *testing.T) {
	ctx := context.Background()
	svc, repo, hasher := newUsersService(t)

	cur := storedUser(t, hasher, "old-secret")

	repo.EXPECT().FindByID(ctx, cur.ID).Return(cur, nil)
	repo.EXPECT().FindByEmail(ctx, "b@x.com").Return(models.User{ID: uuid.New(), Email: "b@x.com"}, nil)

	_, err := svc.Update(ctx, cur.ID, service.UpdateUserInput{Email: utils.StrPtr("B@x.com")})
	require.ErrorIs(t, err, serr.ErrAlreadyExists)
}

// Тот же email, что и сейчас: не пишем и не проверяем
func TestUsersService_Update_SameEmailIsNoop(t *testing.T) {
	ctx := context.Background()
	svc, repo, hasher := newUsersService(t)

	cur := storedUser(t, hasher, "old-secret")

	repo.EXPECT().FindByID(ctx, cur.ID).Return(cur, nil)

	v, err := svc.Update(ctx, cur.ID, service.UpdateUserInput{Email: utils.StrPtr("A@X.COM")})
	require.NoError(t, err)
	require.Equal(t, cur.View(), v)
}

// Пустой запрос: текущее состояние без записи
func TestUsersService_Update_EmptyPatch(t *testing.T) {
	ctx := context.Background()
	svc, repo, hasher := newUsersService(t)

	cur := storedUser(t, hasher, "old-secret")

	repo.EXPECT().FindByID(ctx, cur.ID).Return(cur, nil)

	v, err := svc.Update(ctx, cur.ID, service.UpdateUserInput{})
	require.NoError(t, err)
	require.Equal(t, cur.View(), v)
}

func TestUsersService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newUsersService(t)

	id := uuid.New()
	repo.EXPECT().FindByID(ctx, id).Return(models.User{}, serr.ErrNotFound)

	_, err := svc.Update(ctx, id, service.UpdateUserInput{Username: utils.StrPtr("bob")})
	require.ErrorIs(t, err, serr.ErrNotFound)
}

// Хэш, созданный argon2id, тоже принимается при смене пароля
func TestUsersService_Update_LegacyArgon2Hash(t *testing.T) {
	ctx := context.Background()
	svc, repo, hasher := newUsersService(t)

	legacy, err := crypto.HashPassword("old-secret", crypto.Argon2Params{
		Time: 1, MemoryKiB: 8 * 1024, Threads: 1, KeyLen: 32, SaltLen: 16,
	})
	require.NoError(t, err)

	cur := storedUser(t, hasher, "unused")
	cur.PasswordHash = legacy

	repo.EXPECT().FindByID(ctx, cur.ID).Return(cur, nil)
	repo.EXPECT().Update(ctx, cur.ID, gomock.Any()).Return(cur.View(), nil)

	_, err = svc.Update(ctx, cur.ID, service.UpdateUserInput{
		OldPassword:     utils.StrPtr("old-secret"),
		NewPassword:     utils.StrPtr("new-secret"),
		ConfirmPassword: utils.StrPtr("new-secret"),
	})
	require.NoError(t, err)
}

func TestUsersService_Get(t *testing.T) {
	ctx := context.Background()
	svc, repo, hasher := newUsersService(t)

	cur := storedUser(t, hasher, "old-secret")
	repo.EXPECT().FindByID(ctx, cur.ID).Return(cur, nil)

	v, err := svc.Get(ctx, cur.ID)
	require.NoError(t, err)
	require.Equal(t, cur.View(), v)
}

func TestHealthService_Check(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockHealthRepo(ctrl)
	svc := service.NewHealthService(repo)

	repo.EXPECT().Ping(gomock.Any()).Return(nil)
	require.NoError(t, svc.Check(context.Background()))

	repo.EXPECT().Ping(gomock.Any()).Return(serr.ErrInternal)
	require.ErrorIs(t, svc.Check(context.Background()), serr.ErrInternal)
}
