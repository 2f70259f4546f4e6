package repo

import "errors"

// ErrNoToken — клиент не авторизован.
var ErrNoToken = errors.New("not logged in")

// UserContextStore абстракция для хранения контекста пользователя (email последнего входа).
type UserContextStore interface {
	SaveEmail(email string) error
	LoadEmail() (string, error)
}
