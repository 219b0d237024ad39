// Package auth issues and verifies the service's own access tokens.
// Tokens are HS256-signed with a shared secret; the subject claim carries
// the user id that downstream handlers trust as the principal.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"tilboard/internal/domain"
)

// TokenProvider issues and verifies access tokens
type TokenProvider interface {
	// Issue creates a signed token for the user
	Issue(userID string) (string, error)

	// Verify validates a token and returns the user id it was issued for
	Verify(tokenString string) (string, error)
}

// JWTProvider implements TokenProvider with HS256 signing
type JWTProvider struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTProvider creates a token provider with the given signing secret and
// token lifetime
func NewJWTProvider(secret string, ttl time.Duration) (*JWTProvider, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret cannot be empty")
	}
	return &JWTProvider{
		secret: []byte(secret),
		ttl:    ttl,
	}, nil
}

// Issue creates a signed token for the user
func (p *JWTProvider) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(p.ttl).Unix(),
	})

	signed, err := token.SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify validates a token and returns the user id it was issued for
func (p *JWTProvider) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Reject anything but HMAC to prevent algorithm confusion
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrUnauthorized
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", domain.ErrUnauthorized
	}

	return sub, nil
}
