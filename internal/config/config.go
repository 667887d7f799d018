// Package config загружает конфигурацию приложения из YAML-файла.
// Отсутствующий файл не ошибка: приложение стартует на значениях по
// умолчанию, чтобы первый запуск не требовал никакой подготовки.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultDBPath путь к файлу базы данных по умолчанию
	DefaultDBPath = "nexstore.db"

	// DefaultBackend бэкенд хранения по умолчанию
	DefaultBackend = "bolt"

	// DefaultLogLevel уровень логирования по умолчанию
	DefaultLogLevel = "info"

	// DefaultTokenTTL срок жизни административного токена
	DefaultTokenTTL = 15 * time.Minute

	// Секреты по умолчанию повторяют исторические значения первой
	// версии магазина. Хеши считаются при загрузке, чтобы в коде не
	// лежали захардкоженные bcrypt-строки.
	defaultPrimaryPIN     = "1234"
	defaultSecurityPIN    = "5678"
	defaultSecurityAnswer = "blue"

	defaultTokenSecret = "nexstore-dev-secret"
)

// Duration оборачивает time.Duration для разбора YAML-строк вида "15m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std возвращает значение как time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config корневая конфигурация приложения.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Admin   AdminConfig   `yaml:"admin"`
}

// StorageConfig настройки хранилища.
type StorageConfig struct {
	// Backend выбирает реализацию: "bolt" или "sqlite"
	Backend string `yaml:"backend"`
	// Path путь к файлу базы данных
	Path string `yaml:"path"`
}

// LogConfig настройки логирования.
type LogConfig struct {
	Level string `yaml:"level"`
}

// AdminConfig секреты административного доступа.
// Все три секрета хранятся как bcrypt-хеши.
type AdminConfig struct {
	PrimaryPINHash     string   `yaml:"primary_pin_hash"`
	SecurityPINHash    string   `yaml:"security_pin_hash"`
	SecurityAnswerHash string   `yaml:"security_answer_hash"`
	TokenSecret        string   `yaml:"token_secret"`
	TokenTTL           Duration `yaml:"token_ttl"`
}

// Load читает и разбирает конфигурацию по данному пути.
// Несуществующий путь дает конфигурацию по умолчанию.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := &Config{}
			if err := cfg.applyDefaults(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults заполняет незаданные значения.
func (c *Config) applyDefaults() error {
	if c.Storage.Backend == "" {
		c.Storage.Backend = DefaultBackend
	}
	if c.Storage.Path == "" {
		c.Storage.Path = DefaultDBPath
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	for hash, secret := range map[*string]string{
		&c.Admin.PrimaryPINHash:     defaultPrimaryPIN,
		&c.Admin.SecurityPINHash:    defaultSecurityPIN,
		&c.Admin.SecurityAnswerHash: defaultSecurityAnswer,
	} {
		if *hash != "" {
			continue
		}
		h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hashing default admin secret: %w", err)
		}
		*hash = string(h)
	}
	if c.Admin.TokenSecret == "" {
		c.Admin.TokenSecret = defaultTokenSecret
	}
	if c.Admin.TokenTTL == 0 {
		c.Admin.TokenTTL = Duration(DefaultTokenTTL)
	}
	return nil
}

// validate проверяет значения, для которых нет осмысленного дефолта.
func (c *Config) validate() error {
	switch c.Storage.Backend {
	case "bolt", "sqlite":
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return nil
}
