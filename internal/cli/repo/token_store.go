package repo

// TokenStore описывает абстракцию хранилища auth-токена на клиенте.
type TokenStore interface {
	Save(token string) error
	// Load returns ErrNoToken when nothing is stored.
	Load() (string, error)
	// Clear удаляет токен и контекст пользователя (logout).
	Clear() error
}
