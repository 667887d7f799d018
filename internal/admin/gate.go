// Package admin реализует трехшаговую проверку доступа к
// административным операциям каталога. Успешное прохождение всех трех
// шагов выдает короткоживущий подписанный токен; каждое
// административное действие принимает токен явно и проверяет его
// перед вызовом мутации. Амбиентного флага "isAdmin" нет.
package admin

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// tokenIssuer значение iss в выдаваемых токенах
const tokenIssuer = "nexstore"

// scopeAdmin единственный scope, который выдает gate
const scopeAdmin = "catalog:admin"

// Secrets bcrypt-хеши трех секретов проверки.
// Открытые значения в конфигурации не хранятся.
type Secrets struct {
	PrimaryPINHash     string
	SecurityPINHash    string
	SecurityAnswerHash string
}

// Claims содержимое административного токена
type Claims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Gate проверяет секреты и управляет жизненным циклом токена.
type Gate struct {
	logger      *slog.Logger
	secrets     Secrets
	tokenSecret []byte
	tokenTTL    time.Duration
}

// NewGate создает gate с данными секретами и параметрами токена.
func NewGate(logger *slog.Logger, secrets Secrets, tokenSecret string, tokenTTL time.Duration) *Gate {
	return &Gate{
		logger:      logger,
		secrets:     secrets,
		tokenSecret: []byte(tokenSecret),
		tokenTTL:    tokenTTL,
	}
}

// CheckPrimaryPIN первый шаг проверки.
func (g *Gate) CheckPrimaryPIN(pin string) error {
	return compare(g.secrets.PrimaryPINHash, pin)
}

// CheckSecurityPIN второй шаг проверки.
func (g *Gate) CheckSecurityPIN(pin string) error {
	return compare(g.secrets.SecurityPINHash, pin)
}

// CheckSecurityAnswer третий шаг проверки. Ответ сравнивается после
// обрезки пробелов, регистр значим.
func (g *Gate) CheckSecurityAnswer(answer string) error {
	return compare(g.secrets.SecurityAnswerHash, strings.TrimSpace(answer))
}

// Unlock проходит все три шага и при успехе выдает токен.
// Шаги проверяются по порядку, первый несовпавший прерывает проверку.
func (g *Gate) Unlock(primaryPIN, securityPIN, securityAnswer string) (string, error) {
	if err := g.CheckPrimaryPIN(primaryPIN); err != nil {
		return "", err
	}
	if err := g.CheckSecurityPIN(securityPIN); err != nil {
		return "", err
	}
	if err := g.CheckSecurityAnswer(securityAnswer); err != nil {
		return "", err
	}
	return g.issueToken()
}

// IssueToken выдает токен после уже пройденной проверки.
// Используется интерактивной консолью, которая ведет шаги сама.
func (g *Gate) IssueToken() (string, error) {
	return g.issueToken()
}

// Verify проверяет подпись, срок действия и scope токена.
func (g *Gate) Verify(tokenString string) error {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Проверяем что используется правильный алгоритм подписи
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return g.tokenSecret, nil
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Scope != scopeAdmin {
		return ErrTokenInvalid
	}
	return nil
}

func (g *Gate) issueToken() (string, error) {
	now := time.Now()
	claims := Claims{
		Scope: scopeAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(g.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(g.tokenSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	g.logger.Info("admin access granted", "ttl", g.tokenTTL)
	return tokenString, nil
}

// compare сверяет bcrypt-хеш с секретом, любое несовпадение
// сворачивается в ErrAccessDenied
func compare(hash, secret string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)); err != nil {
		return ErrAccessDenied
	}
	return nil
}

// HashSecret считает bcrypt-хеш секрета для конфигурации.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hash), nil
}
