package token

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const TTL = 5 * time.Hour

var (
	ErrInvalid      = errors.New("invalid or expired token")
	ErrMissingEmail = errors.New("identity claim requires an email")
)

// IdentityClaim is the identity asserted by an issued token. Email is
// mandatory; the remaining fields are carried through as-is when present.
type IdentityClaim struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Photo string `json:"photo,omitempty"`
}

type claims struct {
	IdentityClaim
	jwt.RegisteredClaims
}

func secret() ([]byte, error) {
	s := os.Getenv("ACCESS_TOKEN_SECRET")
	if s == "" {
		return nil, errors.New("ACCESS_TOKEN_SECRET environment variable not set")
	}
	return []byte(s), nil
}

// Issue signs the claim with the server secret and a 5-hour expiry.
func Issue(claim IdentityClaim) (string, error) {
	if claim.Email == "" {
		return "", ErrMissingEmail
	}
	key, err := secret()
	if err != nil {
		return "", err
	}
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		IdentityClaim: claim,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	})
	return t.SignedString(key)
}

// Verify parses and validates a token string and returns the identity it
// asserts. Any signature, expiry or format problem comes back as ErrInvalid.
func Verify(tokenString string) (IdentityClaim, error) {
	var c claims
	t, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret()
	})
	if err != nil || !t.Valid {
		return IdentityClaim{}, ErrInvalid
	}
	if c.Email == "" {
		return IdentityClaim{}, ErrInvalid
	}
	return c.IdentityClaim, nil
}
