// Package config содержит функции для работы с локальной конфигурацией CLI-клиента.
//
// Профиль хранит адрес сервера и id последнего созданного пользователя
// и размещается в домашней директории пользователя в файле:
//
//	~/.accounts/profile.json
//
// Пароли в профиль не пишутся.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Profile — значения по умолчанию для команд CLI.
type Profile struct {
	ServerURL  string `json:"server_url,omitempty"`
	LastUserID string `json:"last_user_id,omitempty"`
}

// DefaultPath возвращает путь к файлу профиля в домашней директории пользователя.
//
// Формат пути:
//
//	<home>/.accounts/profile.json
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".accounts", "profile.json"), nil
}

// Load загружает профиль из указанного файла.
//
// Если файл не существует, возвращает пустой профиль без ошибки.
// Если файл существует, но содержит некорректный JSON, возвращает ошибку.
func Load(path string) (*Profile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// дефолтный профиль, если файла нет
			return &Profile{}, nil
		}
		return nil, err
	}
	var p Profile
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Save сохраняет профиль в JSON.
//
// Директория создаётся с правами 0700, файл пишется с правами 0600.
func Save(path string, p *Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
