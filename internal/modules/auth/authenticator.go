package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/auth/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type PasswordHasher interface {
	HashPassword(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, passwordHash string, password string) (bool, error)
}

type AccessTokenIssuer interface {
	Generate(userID uuid.UUID, ttl time.Duration) (string, error)
	Decode(token string) (domain.Claims, error)
}

type NewUser struct {
	Username string
	Email    string
	Password string
}

// Authenticator owns the credential flows: login, registration, password
// change and logout.
//
// Access tokens are stateless; Logout revokes refresh tokens only and an
// already issued access token stays valid until it expires.
type Authenticator struct {
	users          UserRepository
	hasher         PasswordHasher
	issuer         AccessTokenIssuer
	refreshTokens  *RefreshTokenStore
	accessTokenTTL time.Duration
	now            func() time.Time
	logger         *zap.Logger
}

func NewAuthenticator(
	users UserRepository,
	hasher PasswordHasher,
	issuer AccessTokenIssuer,
	refreshTokens *RefreshTokenStore,
	accessTokenTTL time.Duration,
	logger *zap.Logger,
) *Authenticator {
	return &Authenticator{
		users:          users,
		hasher:         hasher,
		issuer:         issuer,
		refreshTokens:  refreshTokens,
		accessTokenTTL: accessTokenTTL,
		now:            time.Now,
		logger:         logger,
	}
}

// Authenticate returns an access token for the user owning email. Unknown
// e-mail and wrong password are both core.ErrInvalidCredentials.
func (a *Authenticator) Authenticate(ctx context.Context, email string, password string) (string, domain.User, error) {
	user, err := a.users.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, core.ErrNotFound):
		a.logger.Debug("authentication rejected", zap.String("reason", "unknown email"))
		return "", domain.User{}, core.ErrInvalidCredentials
	case err != nil:
		return "", domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}

	ok, err := a.hasher.Verify(ctx, user.PasswordHash, password)
	if err != nil {
		return "", domain.User{}, err
	}

	if !ok {
		a.logger.Debug("authentication rejected", zap.String("reason", "password mismatch"), zap.Stringer("user_id", user.ID))
		return "", domain.User{}, core.ErrInvalidCredentials
	}

	accessToken, err := a.issuer.Generate(user.ID, a.accessTokenTTL)
	if err != nil {
		return "", domain.User{}, err
	}

	return accessToken, user, nil
}

// Register hashes the password and stores the user. Uniqueness of username
// and e-mail is left to the store, which reports a collision as core.ErrConflict.
func (a *Authenticator) Register(ctx context.Context, newUser NewUser) (domain.User, error) {
	passwordHash, err := a.hasher.HashPassword(ctx, newUser.Password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.NewUser(newUser.Username, newUser.Email, passwordHash, a.now().UTC())

	err = a.users.Create(ctx, user)
	switch {
	case errors.Is(err, core.ErrConflict):
		return domain.User{}, domain.ErrUserAlreadyExists
	case err != nil:
		return domain.User{}, fmt.Errorf("failed to store user: %w", err)
	}

	return user, nil
}

// UpdatePassword replaces the password after re-verifying the current one
// and revokes every refresh token of the user.
func (a *Authenticator) UpdatePassword(ctx context.Context, userID uuid.UUID, currentPassword string, newPassword string) error {
	user, err := a.users.FindByID(ctx, userID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		return core.ErrInvalidCredentials
	case err != nil:
		return fmt.Errorf("failed to load user: %w", err)
	}

	ok, err := a.hasher.Verify(ctx, user.PasswordHash, currentPassword)
	if err != nil {
		return err
	}

	if !ok {
		return core.ErrInvalidCredentials
	}

	passwordHash, err := a.hasher.HashPassword(ctx, newPassword)
	if err != nil {
		return err
	}

	update := UserUpdate{PasswordHash: core.Change(passwordHash)}
	if _, err := a.users.Update(ctx, user.ID, update); err != nil {
		return fmt.Errorf("failed to store new password: %w", err)
	}

	return a.refreshTokens.RevokeAll(ctx, user.ID)
}

const tokenTypeBearer = "Bearer"

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login authenticates the user and starts a new refresh token chain,
// replacing any refresh token the user held before.
func (a *Authenticator) Login(ctx context.Context, email string, password string) (TokenPair, error) {
	accessToken, user, err := a.Authenticate(ctx, email, password)
	if err != nil {
		return TokenPair{}, err
	}

	refreshToken, err := a.refreshTokens.Issue(ctx, user.ID)
	if err != nil {
		return TokenPair{}, err
	}

	return a.tokenPair(accessToken, refreshToken), nil
}

// Refresh consumes refreshToken and returns a new pair. A token can be
// used once; replaying it fails with core.ErrInvalidCredentials.
func (a *Authenticator) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	newRefreshToken, userID, err := a.refreshTokens.Rotate(ctx, refreshToken)
	if err != nil {
		return TokenPair{}, err
	}

	accessToken, err := a.issuer.Generate(userID, a.accessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}

	return a.tokenPair(accessToken, newRefreshToken), nil
}

func (a *Authenticator) tokenPair(accessToken string, refreshToken string) TokenPair {
	return TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    tokenTypeBearer,
		ExpiresIn:    int64(a.accessTokenTTL.Seconds()),
	}
}

func (a *Authenticator) Logout(ctx context.Context, userID uuid.UUID) error {
	return a.refreshTokens.RevokeAll(ctx, userID)
}

// Identify is the single point turning a bearer token into an identity.
func (a *Authenticator) Identify(token string) (core.ContextSession, error) {
	claims, err := a.issuer.Decode(token)
	if err != nil {
		return core.ContextSession{}, err
	}

	return core.ContextSession{UserID: claims.UserID, ExpiresAt: claims.ExpiresAt}, nil
}
