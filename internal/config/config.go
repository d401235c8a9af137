package config

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/env"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	PortEnv        = "PORT"
	DatabaseUrlEnv = "DATABASE_URL"
	RootPathEnv    = "ROOT_PATH"
	AppEnvEnv      = "APP_ENV"

	JWTSecretEnv           = "JWT_SECRET"
	AccessTokenTTLEnv      = "ACCESS_TOKEN_TTL"
	RefreshTokenTTLEnv     = "REFRESH_TOKEN_TTL"
	PasswordHashCostEnv    = "PASSWORD_HASH_COST"
	PasswordHashWorkersEnv = "PASSWORD_HASH_WORKERS"

	EmailServerHostEnv     = "EMAIL_SERVER_HOST"
	EmailServerUsernameEnv = "EMAIL_SERVER_USERNAME"
	EmailServerPasswordEnv = "EMAIL_SERVER_PASSWORD"
	EmailServerSenderEnv   = "EMAIL_SERVER_SENDER"
)

const (
	DefaultAccessTokenTTL      = 15 * time.Minute
	DefaultRefreshTokenTTL     = 7 * 24 * time.Hour
	DefaultPasswordHashWorkers = 4

	minJWTSecretLength = 32
)

type EmailConfiguration struct {
	Host     *url.URL
	Username string
	Password string
	Sender   string
}

func (c EmailConfiguration) Enabled() bool {
	return c.Host != nil
}

type AuthConfiguration struct {
	JWTSecret           []byte
	AccessTokenTTL      time.Duration
	RefreshTokenTTL     time.Duration
	PasswordHashCost    int
	PasswordHashWorkers int
}

type Config struct {
	Logger *zap.Logger

	Port           int
	DatabaseURL    string
	MigrationsPath string

	Auth  AuthConfiguration
	Email EmailConfiguration
}

func Load() (Config, error) {
	appEnv := env.GetStringOrDefault(AppEnvEnv, "production")

	logger, err := newLogger(appEnv)
	if err != nil {
		return Config{}, err
	}

	port, err := env.GetIntOrDefault(PortEnv, 8080)
	if err != nil {
		return Config{}, err
	}

	dbURL, err := env.GetString(DatabaseUrlEnv)
	if err != nil {
		return Config{}, err
	}

	rootPath := env.GetStringOrDefault(RootPathEnv, ".")

	authConfig, err := loadAuth()
	if err != nil {
		return Config{}, err
	}

	emailConfig, err := loadEmail()
	if err != nil {
		return Config{}, err
	}

	return Config{
		Logger:         logger,
		Port:           port,
		DatabaseURL:    dbURL,
		MigrationsPath: path.Join(rootPath, "db", "migrations"),
		Auth:           authConfig,
		Email:          emailConfig,
	}, nil
}

func newLogger(appEnv string) (*zap.Logger, error) {
	if appEnv == "dev" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadAuth() (AuthConfiguration, error) {
	secret, err := env.GetString(JWTSecretEnv)
	if err != nil {
		return AuthConfiguration{}, err
	}

	if len(secret) < minJWTSecretLength {
		return AuthConfiguration{}, fmt.Errorf("%s must be at least %d bytes long", JWTSecretEnv, minJWTSecretLength)
	}

	accessTTL, err := env.GetDurationOrDefault(AccessTokenTTLEnv, DefaultAccessTokenTTL)
	if err != nil {
		return AuthConfiguration{}, err
	}

	refreshTTL, err := env.GetDurationOrDefault(RefreshTokenTTLEnv, DefaultRefreshTokenTTL)
	if err != nil {
		return AuthConfiguration{}, err
	}

	cost, err := env.GetIntOrDefault(PasswordHashCostEnv, bcrypt.DefaultCost)
	if err != nil {
		return AuthConfiguration{}, err
	}

	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return AuthConfiguration{}, fmt.Errorf("%s must be between %d and %d", PasswordHashCostEnv, bcrypt.MinCost, bcrypt.MaxCost)
	}

	workers, err := env.GetIntOrDefault(PasswordHashWorkersEnv, DefaultPasswordHashWorkers)
	if err != nil {
		return AuthConfiguration{}, err
	}

	if workers < 1 {
		return AuthConfiguration{}, fmt.Errorf("%s must be positive", PasswordHashWorkersEnv)
	}

	return AuthConfiguration{
		JWTSecret:           []byte(secret),
		AccessTokenTTL:      accessTTL,
		RefreshTokenTTL:     refreshTTL,
		PasswordHashCost:    cost,
		PasswordHashWorkers: workers,
	}, nil
}

// loadEmail treats a missing EMAIL_SERVER_HOST as "notifications disabled".
func loadEmail() (EmailConfiguration, error) {
	host, err := env.GetURL(EmailServerHostEnv)
	if err != nil {
		if errors.Is(err, env.ErrNotFound) {
			return EmailConfiguration{}, nil
		}
		return EmailConfiguration{}, err
	}

	sender, err := env.GetString(EmailServerSenderEnv)
	if err != nil {
		return EmailConfiguration{}, err
	}

	if sender == "" {
		return EmailConfiguration{}, fmt.Errorf("%s must be set when %s is set", EmailServerSenderEnv, EmailServerHostEnv)
	}

	return EmailConfiguration{
		Host:     host,
		Username: env.GetStringOrDefault(EmailServerUsernameEnv, ""),
		Password: env.GetStringOrDefault(EmailServerPasswordEnv, ""),
		Sender:   sender,
	}, nil
}
