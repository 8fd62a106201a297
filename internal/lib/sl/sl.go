// Package sl содержит вспомогательные функции для работы с логгером slog.
// Основная цель — единообразно формировать поля лога для ошибок и
// не допускать попадания секретов (токенов сессий) в логи.
package sl

import "log/slog"

const tokenPrefixLen = 6

// Err возвращает slog.Attr с ключом "error" и текстом ошибки.
//
// Пример:
//
//	log.Error("failed to issue session", sl.Err(err))
func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "<nil>")
	}
	return slog.String("error", err.Error())
}

// Token возвращает slog.Attr с замаскированным токеном сессии:
// в лог попадают только первые символы.
func Token(token string) slog.Attr {
	if len(token) <= tokenPrefixLen {
		return slog.String("token", "***")
	}
	return slog.String("token", token[:tokenPrefixLen]+"***")
}
