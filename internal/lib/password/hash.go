// Package password реализует солёное одностороннее хеширование паролей.
//
// Hash создаёт bcrypt‑хеш для хранения, Compare проверяет введённый пароль.
// Открытый пароль нигде не сохраняется.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Границы длины пароля при регистрации. MaxLength считается в байтах:
// bcrypt не принимает пароли длиннее 72 байт.
const (
	MinLength = 6
	MaxLength = 72
)

// ErrMismatch возвращается, если пароль не соответствует хешу.
var ErrMismatch = errors.New("password does not match")

// Hash принимает пароль пользователя и возвращает его bcrypt‑хеш.
func Hash(password string) (string, error) {
	const op = "password.Hash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// Compare сравнивает bcrypt‑хеш с введённым паролем.
//
// Возвращает nil при совпадении, ErrMismatch при несовпадении и
// обёрнутую ошибку, если хеш повреждён.
func Compare(hash, password string) error {
	const op = "password.Compare"
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
