package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrTokenEncodeFailed = errors.New("failed to encode token")
	ErrTokenDecodeFailed = errors.New("failed to decode token")
)

// Claims is everything an access token carries: sub, iat and exp.
type Claims struct {
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenIssuerOption func(*TokenIssuer)

func WithTokenIssuerClock(now func() time.Time) TokenIssuerOption {
	return func(i *TokenIssuer) {
		if now != nil {
			i.now = now
		}
	}
}

func WithTokenIssuerLogger(logger *zap.Logger) TokenIssuerOption {
	return func(i *TokenIssuer) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// TokenIssuer mints and verifies HS256 access tokens. It keeps no state.
type TokenIssuer struct {
	signingKey []byte
	now        func() time.Time
	logger     *zap.Logger
}

func NewTokenIssuer(signingKey []byte, opts ...TokenIssuerOption) *TokenIssuer {
	i := &TokenIssuer{
		signingKey: signingKey,
		now:        time.Now,
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

func (i *TokenIssuer) Generate(userID uuid.UUID, ttl time.Duration) (string, error) {
	now := i.now()

	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.signingKey)
	if err != nil {
		i.logger.Error("failed to sign access token", zap.Error(err))
		return "", ErrTokenEncodeFailed
	}

	return signed, nil
}

// Decode verifies the signature and expiry of token. Forged, malformed and
// expired tokens all fail with the same core.ErrInvalidToken.
func (i *TokenIssuer) Decode(token string) (Claims, error) {
	var registered jwt.RegisteredClaims

	parsed, err := jwt.ParseWithClaims(
		token,
		&registered,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return i.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil || !parsed.Valid {
		i.logger.Debug("rejected access token", zap.Error(err), zap.Bool("expired", errors.Is(err, jwt.ErrTokenExpired)))
		return Claims{}, core.ErrInvalidToken
	}

	userID, err := uuid.Parse(registered.Subject)
	if err != nil {
		i.logger.Debug("rejected access token", zap.Error(fmt.Errorf("%w: subject: %s", ErrTokenDecodeFailed, err.Error())))
		return Claims{}, core.ErrInvalidToken
	}

	claims := Claims{
		UserID:    userID,
		ExpiresAt: registered.ExpiresAt.Time,
	}

	if registered.IssuedAt != nil {
		claims.IssuedAt = registered.IssuedAt.Time
	}

	return claims, nil
}
