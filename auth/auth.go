// auth.go - Issues and verifies JWT bearer tokens

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library
)

var ErrInvalidToken = errors.New("invalid token")

// Tokens signs HS256 tokens carrying the caller's user id in the "user_id" claim.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: ttl}
}

func (t *Tokens) Issue(userID uint) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(t.ttl).Unix(),
	})
	return token.SignedString(t.secret)
}

// Parse validates signature and expiry and returns the user id claim.
func (t *Tokens) Parse(tokenStr string) (uint, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	// JWT numbers decode as float64
	raw, ok := claims["user_id"].(float64)
	if !ok || raw <= 0 {
		return 0, ErrInvalidToken
	}
	return uint(raw), nil
}
