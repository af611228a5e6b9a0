package mockapi

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jrsteele09/go-barber-client/internal/errors"
	"github.com/jrsteele09/go-barber-client/users"
)

// Claims carried by the fake API's bearer tokens.
type Claims struct {
	Role  string `json:"role"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type tokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.Mutex
	revoked map[string]struct{} // jti
}

func newTokenIssuer(secret string, ttl time.Duration) *tokenIssuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &tokenIssuer{
		secret:  []byte(secret),
		ttl:     ttl,
		now:     time.Now,
		revoked: make(map[string]struct{}),
	}
}

func (t *tokenIssuer) issue(account *users.Account) (string, error) {
	now := t.now()
	claims := Claims{
		Role:  string(account.Role),
		Email: account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.ID,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("[tokenIssuer issue] %w", err)
	}
	return signed, nil
}

func (t *tokenIssuer) parse(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || !token.Valid {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "[tokenIssuer parse] %v", err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if _, revoked := t.revoked[claims.ID]; revoked {
		return nil, errors.Wrapf(errors.ErrInvalidToken, "[tokenIssuer parse] revoked")
	}
	return claims, nil
}

func (t *tokenIssuer) revoke(jti string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.revoked[jti] = struct{}{}
}
