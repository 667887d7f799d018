// Package account управляет локальным реестром пользователей и текущей
// сессией. Реестр и сессия персистятся целиком при каждой мутации,
// состояние в памяти меняется только после успешной записи.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/iudanet/nexstore/internal/models"
	"github.com/iudanet/nexstore/internal/storage"
	"github.com/iudanet/nexstore/internal/validation"
)

// emailDomain домен, из которого детерминированно выводится email
const emailDomain = "nexorastore.com"

// Service локальный менеджер учетных записей и сессии.
type Service struct {
	logger   *slog.Logger
	users    storage.UserStorage
	sessions storage.SessionStorage

	mu       sync.Mutex
	registry []models.User
	current  *models.Session
}

// NewService создает менеджер поверх хранилищ реестра и сессии.
func NewService(logger *slog.Logger, users storage.UserStorage, sessions storage.SessionStorage) *Service {
	return &Service{
		logger:   logger,
		users:    users,
		sessions: sessions,
	}
}

// Initialize загружает реестр и восстанавливает сохраненную сессию.
// Отсутствующий реестр означает пустой. Поврежденный реестр
// сбрасывается: локальное хранилище чинится, а не фатально падает.
// Восстановленная сессия принимается как есть, бан проверяется
// только при входе.
func (s *Service) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	registry, err := s.users.LoadUsers(ctx)
	switch {
	case err == nil:
		s.registry = registry
	case errors.Is(err, storage.ErrUsersNotFound):
		s.registry = []models.User{}
	case errors.Is(err, storage.ErrDataCorrupt):
		s.logger.Warn("user registry corrupt, resetting")
		s.registry = []models.User{}
		if err := s.users.SaveUsers(ctx, s.registry); err != nil {
			return fmt.Errorf("reset user registry: %w", err)
		}
	default:
		return fmt.Errorf("load user registry: %w", err)
	}

	session, err := s.sessions.GetSession(ctx)
	switch {
	case err == nil:
		s.current = session
		s.logger.Debug("session restored", "username", session.Username)
	case errors.Is(err, storage.ErrSessionNotFound):
		s.current = nil
	default:
		return fmt.Errorf("restore session: %w", err)
	}

	return nil
}

// Register создает учетную запись и сразу открывает сессию.
func (s *Service) Register(ctx context.Context, username, password, confirm string) (*models.Session, error) {
	username = strings.TrimSpace(username)

	var fields []string
	if err := validation.ValidateUsername(username); err != nil {
		fields = append(fields, "username")
	}
	if err := validation.ValidatePassword(password); err != nil {
		fields = append(fields, "password")
	}
	if confirm != password {
		fields = append(fields, "confirm")
	}
	if len(fields) > 0 {
		return nil, validation.NewError(fields...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findUser(username) != nil {
		return nil, ErrUserExists
	}

	user := models.User{
		ID:        uuid.NewString(),
		Username:  username,
		Password:  password,
		Email:     username + "@" + emailDomain,
		CreatedAt: time.Now(),
		IsBanned:  false,
	}

	registry := append(append([]models.User{}, s.registry...), user)
	if err := s.users.SaveUsers(ctx, registry); err != nil {
		return nil, fmt.Errorf("save user registry: %w", err)
	}
	s.registry = registry

	session, err := s.openSession(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "username", username)
	return session, nil
}

// Login проверяет учетные данные и открывает сессию.
// Бан проверяется только здесь, уже после совпадения пароля.
func (s *Service) Login(ctx context.Context, username, password string) (*models.Session, error) {
	username = strings.TrimSpace(username)

	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.findUser(username)
	if user == nil || user.Password != password {
		return nil, ErrInvalidCredentials
	}
	if user.IsBanned {
		return nil, ErrUserBanned
	}

	session, err := s.openSession(ctx, *user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", "username", username)
	return session, nil
}

// Logout закрывает текущую сессию. Выход без сессии не ошибка.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessions.DeleteSession(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.current = nil
	return nil
}

// Current возвращает активную сессию либо ErrNotAuthenticated.
func (s *Service) Current() (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return nil, ErrNotAuthenticated
	}
	session := *s.current
	return &session, nil
}

// ResetPassword устанавливает новый пароль пользователю текущей
// сессии. Саму сессию не трогает.
func (s *Service) ResetPassword(ctx context.Context, password, confirm string) error {
	var fields []string
	if err := validation.ValidatePassword(password); err != nil {
		fields = append(fields, "password")
	}
	if confirm != password {
		fields = append(fields, "confirm")
	}
	if len(fields) > 0 {
		return validation.NewError(fields...)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil {
		return ErrNotAuthenticated
	}
	return s.updateUser(ctx, s.current.Username, func(u *models.User) {
		u.Password = password
	})
}

// Ban блокирует учетную запись. Запись не удаляется, активная сессия
// пользователя продолжает жить до следующего входа. Отсутствующее имя
// молча игнорируется.
func (s *Service) Ban(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.updateUser(ctx, username, func(u *models.User) {
		u.IsBanned = true
	})
	if errors.Is(err, ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	s.logger.Info("user banned", "username", username)
	return nil
}

// Unban снимает блокировку с учетной записи. Отсутствующее имя молча
// игнорируется, как и в Ban.
func (s *Service) Unban(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.updateUser(ctx, username, func(u *models.User) {
		u.IsBanned = false
	})
	if errors.Is(err, ErrUserNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	s.logger.Info("user unbanned", "username", username)
	return nil
}

// Users возвращает копию реестра для административного списка.
func (s *Service) Users() []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.User, len(s.registry))
	copy(out, s.registry)
	return out
}

// findUser ищет пользователя по имени. Вызывается под s.mu.
func (s *Service) findUser(username string) *models.User {
	for i := range s.registry {
		if s.registry[i].Username == username {
			return &s.registry[i]
		}
	}
	return nil
}

// updateUser применяет мутацию к пользователю и персистит реестр.
// Вызывается под s.mu.
func (s *Service) updateUser(ctx context.Context, username string, mutate func(*models.User)) error {
	idx := -1
	for i := range s.registry {
		if s.registry[i].Username == username {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrUserNotFound
	}

	registry := make([]models.User, len(s.registry))
	copy(registry, s.registry)
	mutate(&registry[idx])

	if err := s.users.SaveUsers(ctx, registry); err != nil {
		return fmt.Errorf("save user registry: %w", err)
	}
	s.registry = registry
	return nil
}

// openSession персистит и устанавливает сессию. Вызывается под s.mu.
func (s *Service) openSession(ctx context.Context, user models.User) (*models.Session, error) {
	session := &models.Session{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
	if err := s.sessions.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.current = session
	out := *session
	return &out, nil
}
