package models

import "time"

// User представляет локальную учетную запись магазина
type User struct {
	ID        string    `json:"id"`         // UUID пользователя
	Username  string    `json:"username"`   // уникальный username
	Password  string    `json:"password"`   // пароль открытым текстом (совместимость с историческим форматом хранения)
	Email     string    `json:"email"`      // email, детерминированно выводится из username
	CreatedAt time.Time `json:"created_at"` // время регистрации
	IsBanned  bool      `json:"is_banned"`  // флаг блокировки
}

// Session представляет публичную проекцию пользователя для текущей сессии.
// Хранится отдельно от реестра пользователей и переживает перезапуск процесса.
type Session struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
