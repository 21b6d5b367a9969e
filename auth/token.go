package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const adminRole = "admin"

var ErrInvalidToken = errors.New("invalid or expired token")

// Issuer mints and checks admin session tokens. An Issuer without a secret
// cannot sign; see Verifying.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Verifying reports whether tokens are signed and checked. Without a secret
// the gate falls back to cookie presence.
func (i *Issuer) Verifying() bool { return len(i.secret) > 0 }

func (i *Issuer) TTL() time.Duration { return i.ttl }

// Issue returns a signed HS256 token for one admin session. Without a secret
// it returns an opaque random token.
func (i *Issuer) Issue() (string, time.Time, error) {
	expires := i.now().Add(i.ttl)
	if !i.Verifying() {
		return generateRandomString(32), expires, nil
	}

	claims := jwt.MapClaims{
		"sub":  "admin_" + generateRandomString(8),
		"role": adminRole,
		"iat":  i.now().Unix(),
		"exp":  expires.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign admin token: %w", err)
	}
	return signed, expires, nil
}

// Verify checks signature, expiry and role.
func (i *Issuer) Verify(tokenString string) error {
	if tokenString == "" {
		return ErrInvalidToken
	}
	if !i.Verifying() {
		return nil
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["role"] != adminRole {
		return ErrInvalidToken
	}
	return nil
}

// CheckPassword compares in constant time. An empty configured password
// never matches.
func CheckPassword(configured, given string) bool {
	if configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(configured), []byte(given)) == 1
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_admin"
	}
	return hex.EncodeToString(bytes)
}
