// internal/pkg/auth/jwt.go
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/your-org/storefront-backend/internal/config"
)

const sessionTokenType = "session"

// SessionClaims represents the claims of a browsing session token
type SessionClaims struct {
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// SessionManager issues and validates signed browsing session tokens
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewSessionManager creates a new session token manager
func NewSessionManager(cfg *config.Config) *SessionManager {
	return &SessionManager{
		secret: []byte(cfg.Session.Secret),
		ttl:    cfg.Session.TTL,
		issuer: cfg.App.Name,
	}
}

// TTL returns the lifetime of issued sessions
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// NewSession starts a session and returns its id and signed token
func (m *SessionManager) NewSession() (string, string, error) {
	sessionID := uuid.New().String()
	now := time.Now().UTC()

	claims := &SessionClaims{
		TokenType: sessionTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    m.issuer,
			Subject:   sessionID,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return sessionID, token, nil
}

// ValidateSession validates a session token and returns its session id
func (m *SessionManager) ValidateSession(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse session token: %w", err)
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid session token claims")
	}

	if claims.TokenType != sessionTokenType {
		return "", fmt.Errorf("invalid token type: expected %s, got %s", sessionTokenType, claims.TokenType)
	}

	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", fmt.Errorf("invalid session id: %w", err)
	}

	return claims.Subject, nil
}
