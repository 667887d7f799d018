package account

import "errors"

var (
	// ErrUserExists имя уже занято другой учетной записью
	ErrUserExists = errors.New("username already taken")
	// ErrUserNotFound учетная запись с таким именем не существует
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials имя или пароль не подошли.
	// Намеренно не различает эти два случая.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserBanned учетная запись заблокирована, вход запрещен
	ErrUserBanned = errors.New("user is banned")
	// ErrNotAuthenticated операция требует активной сессии
	ErrNotAuthenticated = errors.New("not authenticated")
)
