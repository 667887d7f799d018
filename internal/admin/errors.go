package admin

import "errors"

var (
	// ErrAccessDenied секрет не совпал на одном из шагов проверки
	ErrAccessDenied = errors.New("access denied")
	// ErrTokenInvalid токен отсутствует, подделан или истек
	ErrTokenInvalid = errors.New("admin token invalid")
)
