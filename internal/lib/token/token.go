// Package token mints and verifies the bearer tokens that carry the acting
// user identity between requests.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Manager signs and parses HS256 JWTs with a shared secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

// Mint returns a signed token identifying userID, valid for the configured
// TTL starting at now.
func (m *Manager) Mint(userID string, now time.Time) (string, error) {
	tok := jwt.New(jwt.SigningMethodHS256)

	claims := tok.Claims.(jwt.MapClaims)
	claims["uid"] = userID
	claims["iat"] = now.Unix()
	claims["exp"] = now.Add(m.ttl).Unix()

	return tok.SignedString(m.secret)
}

// Verify parses a token string and returns the user id it identifies.
func (m *Manager) Verify(tokenString string) (string, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrInvalidToken
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return "", ErrInvalidToken
	}
	uid, _ := claims["uid"].(string)
	if uid == "" {
		return "", ErrInvalidToken
	}
	return uid, nil
}
