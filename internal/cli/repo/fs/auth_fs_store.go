package fs

import (
	"Scribz/internal/cli/repo"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// AuthFSStore — файловое хранилище токена и контекста пользователя для CLI.
// Токен лежит в Path, email последнего входа — в Path + ".email".
type AuthFSStore struct {
	Path string
}

var (
	_ repo.TokenStore       = AuthFSStore{}
	_ repo.UserContextStore = AuthFSStore{}
)

func (s AuthFSStore) emailPath() string {
	return s.Path + ".email"
}

// Save сохраняет auth‑токен в файл.
func (s AuthFSStore) Save(token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	return writePrivate(s.Path, token)
}

// Load читает auth‑токен из файла.
func (s AuthFSStore) Load() (string, error) {
	return readTrimmed(s.Path)
}

// SaveEmail сохраняет email пользователя в файл.
func (s AuthFSStore) SaveEmail(email string) error {
	if email == "" {
		return errors.New("empty email")
	}
	return writePrivate(s.emailPath(), email)
}

// LoadEmail читает email пользователя из файла.
func (s AuthFSStore) LoadEmail() (string, error) {
	return readTrimmed(s.emailPath())
}

// Clear удаляет токен и email; отсутствие файлов не ошибка.
func (s AuthFSStore) Clear() error {
	for _, p := range []string{s.Path, s.emailPath()} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}

func writePrivate(path, value string) error {
	if path == "" {
		return errors.New("token file path is not configured")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(value), 0o600)
}

// readTrimmed читает файл и обрезает завершающие переводы строки/пробелы.
func readTrimmed(path string) (string, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", repo.ErrNoToken
	}
	if err != nil {
		return "", err
	}
	v := strings.TrimSpace(string(b))
	if v == "" {
		return "", repo.ErrNoToken
	}
	return v, nil
}
