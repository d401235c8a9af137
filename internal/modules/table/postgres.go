package table

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"
	"github.com/eskrenkovic/table-scheduler/internal/modules/table/domain"

	"github.com/eskrenkovic/tql"
	"github.com/google/uuid"
)

const (
	tableColumns        = `id, gm_id, title, description, player_slots, game_system_id, status, created_at, updated_at`
	tableRequestColumns = `id, user_id, table_id, message, status, created_at, updated_at`
)

var _ TableRepository = (*PostgresTableRepository)(nil)

type PostgresTableRepository struct {
	db *sql.DB
}

func NewPostgresTableRepository(db *sql.DB) *PostgresTableRepository {
	return &PostgresTableRepository{db}
}

func (r *PostgresTableRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.Table, error) {
	const query = `
		SELECT
			` + tableColumns + `
		FROM
			game_table
		WHERE
			id = $1;`

	table, err := tql.QueryFirst[domain.Table](ctx, r.db, query, id)
	return table, core.DBError(err, "failed to find table")
}

func (r *PostgresTableRepository) Create(ctx context.Context, table domain.Table) error {
	const stmt = `
		INSERT INTO
			game_table (id, gm_id, title, description, player_slots, game_system_id, status, created_at, updated_at)
		VALUES
			(:id, :gm_id, :title, :description, :player_slots, :game_system_id, :status, :created_at, :updated_at);`

	_, err := tql.Exec(ctx, r.db, stmt, table)
	return core.DBError(err, "failed to create table")
}

func (r *PostgresTableRepository) Update(ctx context.Context, id uuid.UUID, update domain.TableUpdate) (domain.Table, error) {
	const stmt = `
		UPDATE
			game_table
		SET
			title = CASE WHEN :title_set THEN :title ELSE title END,
			description = CASE WHEN :description_set THEN :description ELSE description END,
			player_slots = CASE WHEN :player_slots_set THEN :player_slots ELSE player_slots END,
			game_system_id = CASE WHEN :game_system_id_set THEN :game_system_id ELSE game_system_id END,
			status = CASE WHEN :status_set THEN :status ELSE status END,
			updated_at = :updated_at
		WHERE
			id = :id;`

	title, titleSet := update.Title.Value()
	description, descriptionSet := update.Description.Value()
	playerSlots, playerSlotsSet := update.PlayerSlots.Value()
	gameSystemID, gameSystemIDSet := update.GameSystemID.Value()
	status, statusSet := update.Status.Value()

	params := map[string]any{
		"id":                 id,
		"title":              title,
		"title_set":          titleSet,
		"description":        description,
		"description_set":    descriptionSet,
		"player_slots":       playerSlots,
		"player_slots_set":   playerSlotsSet,
		"game_system_id":     gameSystemID,
		"game_system_id_set": gameSystemIDSet,
		"status":             string(status),
		"status_set":         statusSet,
		"updated_at":         time.Now().UTC(),
	}

	result, err := tql.Exec(ctx, r.db, stmt, params)
	if err != nil {
		return domain.Table{}, core.DBError(err, "failed to update table")
	}

	if affected, err := core.RowsAffected(result); err != nil || affected == 0 {
		return domain.Table{}, core.DBError(sql.ErrNoRows, "failed to update table")
	}

	return r.FindByID(ctx, id)
}

func (r *PostgresTableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const stmt = `
		DELETE FROM
			game_table
		WHERE
			id = $1;`

	_, err := tql.Exec(ctx, r.db, stmt, id)
	return core.DBError(err, "failed to delete table")
}

func (r *PostgresTableRepository) FindByUserID(ctx context.Context, userID uuid.UUID, opts core.QueryOptions) ([]domain.Table, error) {
	query := fmt.Sprintf(`
		SELECT
			`+tableColumns+`
		FROM
			game_table
		WHERE
			gm_id = $1
		ORDER BY
			created_at %s
		LIMIT $2 OFFSET $3;`, opts.SQLOrder())

	tables, err := tql.Query[domain.Table](ctx, r.db, query, userID, opts.Limit, opts.Offset)
	return tables, core.DBError(err, "failed to find tables of user")
}

var _ TableRequestRepository = (*PostgresTableRequestRepository)(nil)

type PostgresTableRequestRepository struct {
	db *sql.DB
}

func NewPostgresTableRequestRepository(db *sql.DB) *PostgresTableRequestRepository {
	return &PostgresTableRequestRepository{db}
}

func (r *PostgresTableRequestRepository) Create(ctx context.Context, request domain.TableRequest) error {
	const stmt = `
		INSERT INTO
			table_request (id, user_id, table_id, message, status, created_at, updated_at)
		VALUES
			(:id, :user_id, :table_id, :message, :status, :created_at, :updated_at);`

	_, err := tql.Exec(ctx, r.db, stmt, request)
	return core.DBError(err, "failed to create table request")
}

func (r *PostgresTableRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (domain.TableRequest, error) {
	const query = `
		SELECT
			` + tableRequestColumns + `
		FROM
			table_request
		WHERE
			id = $1;`

	request, err := tql.QueryFirst[domain.TableRequest](ctx, r.db, query, id)
	return request, core.DBError(err, "failed to find table request")
}

func (r *PostgresTableRequestRepository) FindByUserAndTable(
	ctx context.Context,
	userID uuid.UUID,
	tableID uuid.UUID,
) ([]domain.TableRequest, error) {
	const query = `
		SELECT
			` + tableRequestColumns + `
		FROM
			table_request
		WHERE
			user_id = $1 AND table_id = $2
		ORDER BY
			created_at DESC;`

	requests, err := tql.Query[domain.TableRequest](ctx, r.db, query, userID, tableID)
	return requests, core.DBError(err, "failed to find table requests of user")
}

func (r *PostgresTableRequestRepository) FindByTableID(
	ctx context.Context,
	tableID uuid.UUID,
	opts core.QueryOptions,
) ([]domain.TableRequest, error) {
	query := fmt.Sprintf(`
		SELECT
			`+tableRequestColumns+`
		FROM
			table_request
		WHERE
			table_id = $1
		ORDER BY
			created_at %s
		LIMIT $2 OFFSET $3;`, opts.SQLOrder())

	requests, err := tql.Query[domain.TableRequest](ctx, r.db, query, tableID, opts.Limit, opts.Offset)
	return requests, core.DBError(err, "failed to find table requests of table")
}

func (r *PostgresTableRequestRepository) Update(
	ctx context.Context,
	request domain.TableRequest,
	expected domain.TableRequestStatus,
) (bool, error) {
	const stmt = `
		UPDATE
			table_request
		SET
			message = :message,
			status = :status,
			updated_at = :updated_at
		WHERE
			id = :id AND status = :expected_status;`

	params := map[string]any{
		"id":              request.ID,
		"message":         request.Message,
		"status":          string(request.Status),
		"updated_at":      request.UpdatedAt,
		"expected_status": string(expected),
	}

	result, err := tql.Exec(ctx, r.db, stmt, params)
	if err != nil {
		return false, core.DBError(err, "failed to update table request")
	}

	affected, err := core.RowsAffected(result)
	if err != nil {
		return false, core.DBError(err, "failed to update table request")
	}

	return affected > 0, nil
}

func (r *PostgresTableRequestRepository) Delete(
	ctx context.Context,
	id uuid.UUID,
	expected domain.TableRequestStatus,
) (bool, error) {
	const stmt = `
		DELETE FROM
			table_request
		WHERE
			id = $1 AND status = $2;`

	result, err := tql.Exec(ctx, r.db, stmt, id, string(expected))
	if err != nil {
		return false, core.DBError(err, "failed to delete table request")
	}

	affected, err := core.RowsAffected(result)
	if err != nil {
		return false, core.DBError(err, "failed to delete table request")
	}

	return affected > 0, nil
}
