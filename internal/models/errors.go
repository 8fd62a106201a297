package models

import "errors"

// Виды ошибок. Конкретные ошибки оборачивают свой вид, HTTP‑слой
// сопоставляет статус по виду через errors.Is.
var (
	// ErrValidation — некорректные входные данные, исправимые пользователем (400).
	ErrValidation = errors.New("validation error")
	// ErrAuth — неверные учётные данные или отсутствующая сессия (401).
	ErrAuth = errors.New("unauthorized")
	// ErrUpstreamUnavailable — недоступен генератор или федеративный провайдер (503).
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrNotFound — запись не найдена в хранилище.
	ErrNotFound = errors.New("not found")
	// ErrMalformedRecord — запись из хранилища не прошла проверку формы.
	ErrMalformedRecord = errors.New("malformed record")
	// ErrDuplicateEmail — аккаунт с таким email уже существует (409).
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrDuplicateUserID — идентификатор пользователя уже занят другим аккаунтом.
	ErrDuplicateUserID = errors.New("user id already taken")
)

// Конкретные ошибки. Текст ошибки безопасно показывать пользователю.
var (
	ErrInvalidEmail       = kindError(ErrValidation, "invalid email format")
	ErrWeakPassword       = kindError(ErrValidation, "password must be at least 6 characters")
	ErrPasswordTooLong    = kindError(ErrValidation, "password must be at most 72 bytes")
	ErrInputTooShort      = kindError(ErrValidation, "please provide more detailed information about your interests")
	ErrInvalidSessionID   = kindError(ErrValidation, "invalid session id")
	ErrIncompleteMentor   = kindError(ErrValidation, "mentor request is missing required fields")
	ErrInvalidCredentials = kindError(ErrAuth, "invalid email or password")
)

type kindErr struct {
	kind error
	msg  string
}

func kindError(kind error, msg string) error {
	return &kindErr{kind: kind, msg: msg}
}

func (e *kindErr) Error() string { return e.msg }

func (e *kindErr) Unwrap() error { return e.kind }

// PublicMessage возвращает текст ошибки, который можно показать пользователю,
// или пустую строку, если ошибка не относится к известным видам.
func PublicMessage(err error) string {
	var ke *kindErr
	if errors.As(err, &ke) {
		return ke.msg
	}
	for _, kind := range []error{ErrValidation, ErrAuth, ErrUpstreamUnavailable, ErrDuplicateEmail} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return ""
}
