// Package models содержит доменные структуры Questly: учётные записи, сессии,
// карьерные траектории, историю анализов и заявки на наставника.
// Структуры используются в бизнес‑логике, хранилищах и HTTP‑обработчиках.
package models

import (
	"fmt"
	"net/url"
	"time"
)

// User представляет учётную запись пользователя.
//
// Учётная запись либо парольная (PasswordHash заполнен), либо федеративная
// (PasswordHash пуст, вход только через внешнего провайдера).
type User struct {
	ID           string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (уникальная, регистр сохраняется)
	Name         string    // Отображаемое имя
	PasswordHash string    // bcrypt‑хэш пароля, пусто для федеративных аккаунтов
	Picture      string    // Ссылка на аватар (для федеративных аккаунтов)
	CreatedAt    time.Time // Дата создания
}

// HasPassword сообщает, можно ли войти в аккаунт по паролю.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Profile возвращает публичный профиль пользователя.
func (u *User) Profile() Profile {
	return Profile{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Picture: pictureOrAvatar(u.Picture, u.Name),
	}
}

// Profile — публичное представление пользователя в ответах API.
type Profile struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// AvatarURL строит детерминированную ссылку на аватар по имени пользователя.
func AvatarURL(name string) string {
	return fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=10b981&color=fff", url.QueryEscape(name))
}

func pictureOrAvatar(picture, name string) string {
	if picture != "" {
		return picture
	}
	return AvatarURL(name)
}
