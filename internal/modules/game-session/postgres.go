package gamesession

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/game-session/domain"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

const (
	sessionColumns = `id, table_id, title, description, scheduled_for, status, created_at, updated_at`
	intentColumns  = `id, user_id, session_id, intent_status, created_at, updated_at`
	checkinColumns = `id, session_intent_id, attendance, notes, created_at, updated_at`
)

var _ SessionRepository = (*PostgresSessionRepository)(nil)

type PostgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{db}
}

func (r *PostgresSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Session, error) {
	const query = `
		SELECT
			` + sessionColumns + `
		FROM
			game_session
		WHERE
			id = $1;`

	session, err := tql.QueryFirst[domain.Session](ctx, r.db, query, id)
	return session, core.DBError(err, "failed to find session")
}

func (r *PostgresSessionRepository) Create(ctx context.Context, session domain.Session) error {
	const stmt = `
		INSERT INTO
			game_session (id, table_id, title, description, scheduled_for, status, created_at, updated_at)
		VALUES
			(:id, :table_id, :title, :description, :scheduled_for, :status, :created_at, :updated_at);`

	_, err := tql.Exec(ctx, r.db, stmt, session)
	return core.DBError(err, "failed to create session")
}

func (r *PostgresSessionRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	expected domain.SessionStatus,
	update domain.SessionUpdate,
) (domain.Session, error) {
	const stmt = `
		UPDATE
			game_session
		SET
			title = CASE WHEN :title_set THEN :title ELSE title END,
			description = CASE WHEN :description_set THEN :description ELSE description END,
			scheduled_for = CASE WHEN :scheduled_for_set THEN :scheduled_for ELSE scheduled_for END,
			status = CASE WHEN :status_set THEN :status ELSE status END,
			updated_at = :updated_at
		WHERE
			id = :id AND status = :expected_status;`

	title, titleSet := update.Title.Value()
	description, descriptionSet := update.Description.Value()
	scheduledFor, scheduledForSet := update.ScheduledFor.Value()
	status, statusSet := update.Status.Value()

	params := map[string]any{
		"id":                id,
		"expected_status":   string(expected),
		"title":             title,
		"title_set":         titleSet,
		"description":       description,
		"description_set":   descriptionSet,
		"scheduled_for":     scheduledFor,
		"scheduled_for_set": scheduledForSet,
		"status":            string(status),
		"status_set":        statusSet,
		"updated_at":        time.Now().UTC(),
	}

	result, err := tql.Exec(ctx, r.db, stmt, params)
	if err != nil {
		return domain.Session{}, core.DBError(err, "failed to update session")
	}

	if affected, err := core.RowsAffected(result); err != nil || affected == 0 {
		return domain.Session{}, core.DBError(sql.ErrNoRows, "failed to update session")
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const stmt = `
		DELETE FROM
			game_session
		WHERE
			id = $1;`

	_, err := tql.Exec(ctx, r.db, stmt, id)
	return core.DBError(err, "failed to delete session")
}

func (r *PostgresSessionRepository) FindByTableID(
	ctx context.Context,
	tableID uuid.UUID,
	opts core.QueryOptions,
) ([]domain.Session, error) {
	query := fmt.Sprintf(`
		SELECT
			`+sessionColumns+`
		FROM
			game_session
		WHERE
			table_id = $1
		ORDER BY
			scheduled_for %[1]s NULLS LAST, created_at %[1]s
		LIMIT $2 OFFSET $3;`, opts.SQLOrder())

	sessions, err := tql.Query[domain.Session](ctx, r.db, query, tableID, opts.Limit, opts.Offset)
	return sessions, core.DBError(err, "failed to find sessions of table")
}

var _ SessionIntentRepository = (*PostgresSessionIntentRepository)(nil)

type PostgresSessionIntentRepository struct {
	db *sql.DB
}

func NewPostgresSessionIntentRepository(db *sql.DB) *PostgresSessionIntentRepository {
	return &PostgresSessionIntentRepository{db}
}

func (r *PostgresSessionIntentRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.SessionIntent, error) {
	const query = `
		SELECT
			` + intentColumns + `
		FROM
			session_intent
		WHERE
			id = $1;`

	intent, err := tql.QueryFirst[domain.SessionIntent](ctx, r.db, query, id)
	return intent, core.DBError(err, "failed to find session intent")
}

func (r *PostgresSessionIntentRepository) FindByUserAndSession(
	ctx context.Context,
	userID uuid.UUID,
	sessionID uuid.UUID,
) (domain.SessionIntent, error) {
	const query = `
		SELECT
			` + intentColumns + `
		FROM
			session_intent
		WHERE
			user_id = $1 AND session_id = $2;`

	intent, err := tql.QueryFirst[domain.SessionIntent](ctx, r.db, query, userID, sessionID)
	return intent, core.DBError(err, "failed to find session intent of user")
}

func (r *PostgresSessionIntentRepository) FindBySessionID(
	ctx context.Context,
	sessionID uuid.UUID,
	opts core.QueryOptions,
) ([]domain.SessionIntent, error) {
	query := fmt.Sprintf(`
		SELECT
			`+intentColumns+`
		FROM
			session_intent
		WHERE
			session_id = $1
		ORDER BY
			created_at %s
		LIMIT $2 OFFSET $3;`, opts.SQLOrder())

	intents, err := tql.Query[domain.SessionIntent](ctx, r.db, query, sessionID, opts.Limit, opts.Offset)
	return intents, core.DBError(err, "failed to find session intents")
}

func (r *PostgresSessionIntentRepository) Create(ctx context.Context, intent domain.SessionIntent) error {
	const stmt = `
		INSERT INTO
			session_intent (id, user_id, session_id, intent_status, created_at, updated_at)
		VALUES
			(:id, :user_id, :session_id, :intent_status, :created_at, :updated_at);`

	_, err := tql.Exec(ctx, r.db, stmt, intent)
	return core.DBError(err, "failed to create session intent")
}

func (r *PostgresSessionIntentRepository) Update(ctx context.Context, intent domain.SessionIntent) error {
	const stmt = `
		UPDATE
			session_intent
		SET
			intent_status = :intent_status,
			updated_at = :updated_at
		WHERE
			id = :id;`

	result, err := tql.Exec(ctx, r.db, stmt, intent)
	if err != nil {
		return core.DBError(err, "failed to update session intent")
	}

	if affected, err := core.RowsAffected(result); err != nil || affected == 0 {
		return core.DBError(sql.ErrNoRows, "failed to update session intent")
	}

	return nil
}

func (r *PostgresSessionIntentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const stmt = `
		DELETE FROM
			session_intent
		WHERE
			id = $1;`

	_, err := tql.Exec(ctx, r.db, stmt, id)
	return core.DBError(err, "failed to delete session intent")
}

var _ SessionCheckinRepository = (*PostgresSessionCheckinRepository)(nil)

type PostgresSessionCheckinRepository struct {
	db *sql.DB
}

func NewPostgresSessionCheckinRepository(db *sql.DB) *PostgresSessionCheckinRepository {
	return &PostgresSessionCheckinRepository{db}
}

func (r *PostgresSessionCheckinRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.SessionCheckin, error) {
	const query = `
		SELECT
			` + checkinColumns + `
		FROM
			session_checkin
		WHERE
			id = $1;`

	checkin, err := tql.QueryFirst[domain.SessionCheckin](ctx, r.db, query, id)
	return checkin, core.DBError(err, "failed to find session checkin")
}

func (r *PostgresSessionCheckinRepository) FindBySessionIntentID(
	ctx context.Context,
	intentID uuid.UUID,
) (domain.SessionCheckin, error) {
	const query = `
		SELECT
			` + checkinColumns + `
		FROM
			session_checkin
		WHERE
			session_intent_id = $1;`

	checkin, err := tql.QueryFirst[domain.SessionCheckin](ctx, r.db, query, intentID)
	return checkin, core.DBError(err, "failed to find session checkin of intent")
}

func (r *PostgresSessionCheckinRepository) FindByAttendance(
	ctx context.Context,
	userID uuid.UUID,
	attendance bool,
	opts core.QueryOptions,
) ([]domain.SessionCheckin, error) {
	query := fmt.Sprintf(`
		SELECT
			c.id, c.session_intent_id, c.attendance, c.notes, c.created_at, c.updated_at
		FROM
			session_checkin c
		JOIN
			session_intent i ON i.id = c.session_intent_id
		WHERE
			i.user_id = $1 AND c.attendance = $2
		ORDER BY
			c.created_at %s
		LIMIT $3 OFFSET $4;`, opts.SQLOrder())

	checkins, err := tql.Query[domain.SessionCheckin](ctx, r.db, query, userID, attendance, opts.Limit, opts.Offset)
	return checkins, core.DBError(err, "failed to find session checkins by attendance")
}

func (r *PostgresSessionCheckinRepository) Create(ctx context.Context, checkin domain.SessionCheckin) error {
	const stmt = `
		INSERT INTO
			session_checkin (id, session_intent_id, attendance, notes, created_at, updated_at)
		VALUES
			(:id, :session_intent_id, :attendance, :notes, :created_at, :updated_at);`

	_, err := tql.Exec(ctx, r.db, stmt, checkin)
	return core.DBError(err, "failed to create session checkin")
}

func (r *PostgresSessionCheckinRepository) Update(
	ctx context.Context,
	id uuid.UUID,
	update domain.SessionCheckinUpdate,
) (domain.SessionCheckin, error) {
	const stmt = `
		UPDATE
			session_checkin
		SET
			attendance = CASE WHEN :attendance_set THEN :attendance ELSE attendance END,
			notes = CASE WHEN :notes_set THEN :notes ELSE notes END,
			updated_at = :updated_at
		WHERE
			id = :id;`

	attendance, attendanceSet := update.Attendance.Value()
	notes, notesSet := update.Notes.Value()

	params := map[string]any{
		"id":             id,
		"attendance":     attendance,
		"attendance_set": attendanceSet,
		"notes":          notes,
		"notes_set":      notesSet,
		"updated_at":     time.Now().UTC(),
	}

	result, err := tql.Exec(ctx, r.db, stmt, params)
	if err != nil {
		return domain.SessionCheckin{}, core.DBError(err, "failed to update session checkin")
	}

	if affected, err := core.RowsAffected(result); err != nil || affected == 0 {
		return domain.SessionCheckin{}, core.DBError(sql.ErrNoRows, "failed to update session checkin")
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresSessionCheckinRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const stmt = `
		DELETE FROM
			session_checkin
		WHERE
			id = $1;`

	_, err := tql.Exec(ctx, r.db, stmt, id)
	return core.DBError(err, "failed to delete session checkin")
}
