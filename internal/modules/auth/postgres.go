package auth

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/auth/domain"
	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

const userColumns = `id, username, email, password_hash, created_at, updated_at`

var _ UserRepository = (*PostgresUserRepository)(nil)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db}
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
		SELECT
			` + userColumns + `
		FROM
			auth.user
		WHERE
			email = $1;`

	user, err := tql.QueryFirst[domain.User](ctx, r.db, query, email)
	return user, core.DBError(err, "failed to find user by email")
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const query = `
		SELECT
			` + userColumns + `
		FROM
			auth.user
		WHERE
			id = $1;`

	user, err := tql.QueryFirst[domain.User](ctx, r.db, query, id)
	return user, core.DBError(err, "failed to find user by id")
}

func (r *PostgresUserRepository) Create(ctx context.Context, user domain.User) error {
	const stmt = `
		INSERT INTO
			auth.user (id, username, email, password_hash, created_at, updated_at)
		VALUES
			(:id, :username, :email, :password_hash, :created_at, :updated_at);`

	_, err := tql.Exec(ctx, r.db, stmt, user)
	return core.DBError(err, "failed to create user")
}

func (r *PostgresUserRepository) Update(ctx context.Context, id uuid.UUID, update UserUpdate) (domain.User, error) {
	const stmt = `
		UPDATE
			auth.user
		SET
			username = CASE WHEN :username_set THEN :username ELSE username END,
			email = CASE WHEN :email_set THEN :email ELSE email END,
			password_hash = CASE WHEN :password_hash_set THEN :password_hash ELSE password_hash END,
			updated_at = :updated_at
		WHERE
			id = :id;`

	username, usernameSet := update.Username.Value()
	email, emailSet := update.Email.Value()
	passwordHash, passwordHashSet := update.PasswordHash.Value()

	params := map[string]any{
		"id":                id,
		"username":          username,
		"username_set":      usernameSet,
		"email":             email,
		"email_set":         emailSet,
		"password_hash":     passwordHash,
		"password_hash_set": passwordHashSet,
		"updated_at":        time.Now().UTC(),
	}

	result, err := tql.Exec(ctx, r.db, stmt, params)
	if err != nil {
		return domain.User{}, core.DBError(err, "failed to update user")
	}

	if affected, err := core.RowsAffected(result); err != nil || affected == 0 {
		return domain.User{}, core.DBError(sql.ErrNoRows, "failed to update user")
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresUserRepository) Search(ctx context.Context, username string, opts core.QueryOptions) ([]domain.User, error) {
	query := fmt.Sprintf(`
		SELECT
			`+userColumns+`
		FROM
			auth.user
		WHERE
			username ILIKE $1
		ORDER BY
			username %s
		LIMIT $2 OFFSET $3;`, opts.SQLOrder())

	users, err := tql.Query[domain.User](ctx, r.db, query, likePrefix(username), opts.Limit, opts.Offset)
	return users, core.DBError(err, "failed to search users")
}

func likePrefix(s string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
	return escaped + "%"
}

var _ RefreshTokenRepository = (*PostgresRefreshTokenRepository)(nil)

type PostgresRefreshTokenRepository struct {
	db *sql.DB
}

func NewPostgresRefreshTokenRepository(db *sql.DB) *PostgresRefreshTokenRepository {
	return &PostgresRefreshTokenRepository{db}
}

func (r *PostgresRefreshTokenRepository) Create(ctx context.Context, token domain.RefreshToken) error {
	const stmt = `
		INSERT INTO
			auth.refresh_token (id, user_id, token, expires_at, created_at)
		VALUES
			(:id, :user_id, :token, :expires_at, :created_at);`

	_, err := tql.Exec(ctx, r.db, stmt, token)
	return core.DBError(err, "failed to create refresh token")
}

func (r *PostgresRefreshTokenRepository) FindByToken(ctx context.Context, token string) (domain.RefreshToken, error) {
	const query = `
		SELECT
			id, user_id, token, expires_at, created_at
		FROM
			auth.refresh_token
		WHERE
			token = $1;`

	refreshToken, err := tql.QueryFirst[domain.RefreshToken](ctx, r.db, query, token)
	return refreshToken, core.DBError(err, "failed to find refresh token")
}

func (r *PostgresRefreshTokenRepository) DeleteByToken(ctx context.Context, token string) (bool, error) {
	const stmt = `
		DELETE FROM
			auth.refresh_token
		WHERE
			token = $1;`

	result, err := tql.Exec(ctx, r.db, stmt, token)
	if err != nil {
		return false, core.DBError(err, "failed to delete refresh token")
	}

	affected, err := core.RowsAffected(result)
	if err != nil {
		return false, core.DBError(err, "failed to delete refresh token")
	}

	return affected > 0, nil
}

func (r *PostgresRefreshTokenRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	const stmt = `
		DELETE FROM
			auth.refresh_token
		WHERE
			user_id = $1;`

	_, err := tql.Exec(ctx, r.db, stmt, userID)
	return core.DBError(err, "failed to delete refresh tokens of user")
}
