package jwt

import (
	"errors"
	"fmt"
	"time"

	libjwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Xaan1506/NSTrack-Backend/internal/config"
	"github.com/Xaan1506/NSTrack-Backend/internal/dto"
)

const UserTokenType = "USER"

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrMissingSubject = errors.New("token has no subject")
)

// TokenManager issues and validates stateless user tokens. A token is valid
// while now < issued_at + TTL, at second precision.
type TokenManager struct {
	secret []byte
	method libjwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret string, algorithm string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("jwt secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("jwt ttl must be positive")
	}

	method, ok := libjwt.GetSigningMethod(algorithm).(*libjwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}

	return &TokenManager{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func NewTokenManagerFromConfig(cfg *config.Config) (*TokenManager, error) {
	return NewTokenManager(cfg.JwtSecret, cfg.JwtAlgorithm, cfg.AccessTokenTTL())
}

// WithClock returns a copy of m that reads the current time from now.
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	cp := *m
	cp.now = now
	return &cp
}

func (m *TokenManager) Issue(subjectID string, issuedAt time.Time) (string, error) {
	claims := dto.UserJwtPayload{
		Type: UserTokenType,
		RegisteredClaims: libjwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: libjwt.NewNumericDate(issuedAt.Add(m.ttl)),
			IssuedAt:  libjwt.NewNumericDate(issuedAt),
			ID:        uuid.NewString(),
		},
	}

	token := libjwt.NewWithClaims(m.method, claims)
	signedToken, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign user token: %w", err)
	}

	return signedToken, nil
}

// IssueNow issues a token stamped with the manager's clock.
func (m *TokenManager) IssueNow(subjectID string) (string, error) {
	return m.Issue(subjectID, m.now())
}

// Validate returns the subject of a well-formed, correctly signed, unexpired
// user token.
func (m *TokenManager) Validate(signedToken string) (string, error) {
	claims := &dto.UserJwtPayload{}
	token, err := libjwt.ParseWithClaims(
		signedToken,
		claims,
		func(token *libjwt.Token) (any, error) {
			return m.secret, nil
		},
		libjwt.WithValidMethods([]string{m.method.Alg()}),
		libjwt.WithTimeFunc(m.now),
		libjwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Type != UserTokenType {
		return "", ErrInvalidToken
	}

	if claims.Subject == "" {
		return "", ErrMissingSubject
	}

	return claims.Subject, nil
}
