package core

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Anti-forgery actions. Each names both the token action and, for the switch
// links, the query parameter carrying the token.
const (
	NonceModeSwitch    = "erp_mode_nonce"
	NonceCompanySwitch = "erp_comp_swt_nonce"
	NonceRemoveMenu    = "erp-remove-menu-nonce"
	NonceCompanyEdit   = "erp-new-company"
)

// nonceAudience keeps nonces from validating as any other token signed with
// the same secret.
const nonceAudience = "erp-nonce"

type nonceClaims struct {
	Action string `json:"act"`
	UserID int    `json:"uid"`
	jwt.RegisteredClaims
}

// NonceManager mints and verifies anti-forgery tokens bound to an actor and an action.
type NonceManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewNonceManager(secret string, ttl time.Duration) *NonceManager {
	return &NonceManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Mint returns a token for action valid for the manager's lifetime.
func (m *NonceManager) Mint(userID int, action string) (string, error) {
	now := m.now()
	claims := &nonceClaims{
		Action: action,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Audience:  jwt.ClaimStrings{nonceAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("mint nonce %s: %w", action, err)
	}
	return signed, nil
}

// Verify checks that token was minted by this manager for userID and action and has not expired.
// Every failure returns an error wrapping ErrInvalidNonce.
func (m *NonceManager) Verify(token string, userID int, action string) error {
	if token == "" {
		return fmt.Errorf("%w: empty", ErrInvalidNonce)
	}
	claims := &nonceClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
		jwt.WithAudience(nonceAudience),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return fmt.Errorf("%w: expired", ErrInvalidNonce)
		}
		return fmt.Errorf("%w: %v", ErrInvalidNonce, err)
	}
	if !parsed.Valid {
		return fmt.Errorf("%w: not valid", ErrInvalidNonce)
	}
	if claims.Action != action || claims.UserID != userID {
		return fmt.Errorf("%w: bound to another action or user", ErrInvalidNonce)
	}
	return nil
}
