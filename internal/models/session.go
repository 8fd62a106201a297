package models

import "time"

// Session — серверная сессия, выданная после входа, регистрации или федеративного обмена.
//
// Сессия действительна, пока now < ExpiresAt. Истёкшая сессия никогда не
// разрешается в пользователя, даже если запись ещё лежит в хранилище.
type Session struct {
	Token     string    // Непрозрачный токен сессии
	UserID    string    // Ссылка на владельца
	Email     string    // Email владельца на момент выдачи
	Name      string    // Имя владельца на момент выдачи
	Picture   string    // Аватар владельца (может быть пустым)
	CreatedAt time.Time // Время выдачи
	ExpiresAt time.Time // Время истечения
}

// Active сообщает, действительна ли сессия в момент now.
func (s *Session) Active(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// Identity возвращает личность владельца сессии.
func (s *Session) Identity() Identity {
	return Identity{
		UserID:  s.UserID,
		Email:   s.Email,
		Name:    s.Name,
		Picture: s.Picture,
	}
}

// Identity — аутентифицированная личность, которой принадлежит запрос.
type Identity struct {
	UserID  string
	Email   string
	Name    string
	Picture string
}

// Profile возвращает публичный профиль личности.
func (i Identity) Profile() Profile {
	return Profile{
		ID:      i.UserID,
		Email:   i.Email,
		Name:    i.Name,
		Picture: pictureOrAvatar(i.Picture, i.Name),
	}
}
