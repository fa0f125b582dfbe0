// Хэширование паролей
package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"

	serr "github.com/IvanChernomyrdin/go-yandex-accounts/internal/shared/errors"
)

// DefaultCost — work factor bcrypt по умолчанию (2^12 раундов).
const DefaultCost = 12

const argon2Prefix = "argon2id$"

// PasswordHasher — одностороннее хэширование паролей и их проверка.
//
// Verify никогда не возвращает ошибку: битый или незнакомый формат хэша
// неотличим снаружи от неверного пароля.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) bool
}

// BcryptHasher хэширует bcrypt с заданной стоимостью.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher создаёт BcryptHasher. cost <= 0 означает DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Cost — фактический work factor.
func (h *BcryptHasher) Cost() int {
	return h.cost
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	return HashWithCost(password, h.cost)
}

func (h *BcryptHasher) Verify(password, encoded string) bool {
	return Verify(password, encoded)
}

// HashWithCost хэширует пароль bcrypt с work factor cost.
//
// Стоимость растёт экспоненциально: cost+1 вдвое дороже cost.
// cost <= 0 -> DefaultCost, cost ниже bcrypt.MinCost поднимается до MinCost.
// Пустой пароль и пароль длиннее 72 байт -> ErrInvalidInput.
func HashWithCost(password string, cost int) (string, error) {
	if password == "" {
		return "", fmt.Errorf("empty password: %w", serr.ErrInvalidInput)
	}
	if cost <= 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("password too long: %w", serr.ErrInvalidInput)
		}
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hash), nil
}

type Argon2Params struct {
	Time      uint32
	MemoryKiB uint32
	Threads   uint8
	KeyLen    uint32
	SaltLen   uint32
}

// Argon2Hasher хэширует argon2id. Work factor — Time (число проходов).
type Argon2Hasher struct {
	params Argon2Params
}

func NewArgon2Hasher(p Argon2Params) *Argon2Hasher {
	return &Argon2Hasher{params: p}
}

func (h *Argon2Hasher) Hash(password string) (string, error) {
	return HashPassword(password, h.params)
}

func (h *Argon2Hasher) Verify(password, encoded string) bool {
	return Verify(password, encoded)
}

// HashPassword возвращает строку формата:
// argon2id$v=19$m=65536,t=3,p=2$<salt_b64>$<hash_b64>
func HashPassword(password string, p Argon2Params) (string, error) {
	if password == "" {
		return "", fmt.Errorf("empty password: %w", serr.ErrInvalidInput)
	}

	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, p.Time, p.MemoryKiB, p.Threads, p.KeyLen)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	encoded := fmt.Sprintf(
		"argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		p.MemoryKiB, p.Time, p.Threads,
		b64Salt, b64Hash,
	)
	return encoded, nil
}

// Verify проверяет пароль против хэша любого поддерживаемого формата.
//
// Формат определяется по префиксу: "$2" — bcrypt, "argon2id$" — argon2id.
// Так строки, записанные до смены password.hasher, продолжают проверяться.
func Verify(password, encoded string) bool {
	switch {
	case strings.HasPrefix(encoded, "$2"):
		return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
	case strings.HasPrefix(encoded, argon2Prefix):
		ok, err := VerifyPassword(password, encoded)
		return err == nil && ok
	default:
		return false
	}
}

// VerifyPassword проверяет пароль против argon2id-хэша.
// Ошибка возвращается только для битого формата.
func VerifyPassword(password, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 5 || parts[0] != "argon2id" {
		return false, errors.New("invalid hash format")
	}

	// parts[0] = argon2id
	// parts[1] = v=19
	// parts[2] = m=...,t=...,p=...
	// parts[3] = salt
	// parts[4] = hash

	var memory uint32
	var time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[2], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false, errors.New("invalid params format")
	}
	if time == 0 || threads == 0 {
		return false, errors.New("invalid params")
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[3])
	if err != nil {
		return false, errors.New("invalid salt")
	}

	wantHash, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(wantHash) == 0 {
		return false, errors.New("invalid hash")
	}

	got := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(wantHash)))
	return subtle.ConstantTimeCompare(got, wantHash) == 1, nil
}
