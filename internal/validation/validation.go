// Package validation содержит проверки пользовательского ввода,
// общие для каталога и учетных записей.
package validation

import (
	"fmt"
	"strings"
)

const (
	// MinPasswordLen минимальная длина пароля
	MinPasswordLen = 6

	// RatingMin и RatingMax допустимый диапазон рейтинга
	// для административных операций
	RatingMin = 1.0
	RatingMax = 5.0
)

// Error описывает ошибку валидации с перечнем нарушенных полей.
// Операция, вернувшая Error, не применяет изменения частично.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
}

// NewError создает ошибку валидации для перечисленных полей.
func NewError(fields ...string) *Error {
	return &Error{Fields: fields}
}

// ValidatePassword проверяет минимальные требования к паролю.
// Минимум MinPasswordLen символов.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return NewError("password")
	}
	return nil
}

// ValidateUsername проверяет, что username не пустой.
func ValidateUsername(username string) error {
	if strings.TrimSpace(username) == "" {
		return NewError("username")
	}
	return nil
}

// ValidateRating проверяет, что рейтинг попадает в диапазон [1,5].
func ValidateRating(value float64) error {
	if value < RatingMin || value > RatingMax {
		return NewError("rating")
	}
	return nil
}
