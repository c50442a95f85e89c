// Package capability mints short-lived HS256 tokens that let a visitor read a stealth page's message.
package capability

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"love-unlock/internal/domain/page"
)

// ScopeReveal is the only scope issued today.
const ScopeReveal = "reveal"

var (
	ErrInvalidToken = errors.New("invalid capability token")
	ErrWrongPage    = errors.New("capability token issued for another page")
)

type claims struct {
	Code  string `json:"code"`
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies reveal grants with a shared secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var _ page.CapabilityIssuer = (*Issuer)(nil)

func NewIssuer(secret string, ttl time.Duration) (*Issuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("capability secret is required")
	}
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

func (i *Issuer) Issue(code string) (page.Capability, error) {
	now := i.now()
	expires := now.Add(i.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Code:  code,
		Scope: ScopeReveal,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return page.Capability{}, fmt.Errorf("sign capability: %w", err)
	}
	return page.Capability{Token: signed, ExpiresAt: expires.UTC().Truncate(time.Second)}, nil
}

func (i *Issuer) Verify(tokenString string, code string) error {
	if tokenString == "" {
		return ErrInvalidToken
	}
	c := &claims{}
	token, err := jwt.ParseWithClaims(tokenString, c, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !token.Valid {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Scope != ScopeReveal {
		return ErrInvalidToken
	}
	if !strings.EqualFold(c.Code, code) {
		return ErrWrongPage
	}
	return nil
}
