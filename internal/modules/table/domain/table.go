package domain

import (
	"fmt"
	"time"

	"github.com/eskrenkovic/table-scheduler/internal/modules/core"

	"github.com/google/uuid"
)

var (
	ErrTableNotFound          = fmt.Errorf("table not found: %w", core.ErrNotFound)
	ErrUserNotTableGameMaster = fmt.Errorf("user is not the table game master: %w", core.ErrForbidden)
)

type TableStatus string

const (
	TableStatusActive   TableStatus = "active"
	TableStatusInactive TableStatus = "inactive"
)

func (s TableStatus) Valid() bool {
	return s == TableStatusActive || s == TableStatusInactive
}

// Table is owned by its game master. GMID never changes after creation and
// anchors every authorization decision below the table.
type Table struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	GMID         uuid.UUID   `db:"gm_id" json:"gm_id"`
	Title        string      `db:"title" json:"title"`
	Description  string      `db:"description" json:"description"`
	PlayerSlots  int         `db:"player_slots" json:"player_slots"`
	GameSystemID uuid.UUID   `db:"game_system_id" json:"game_system_id"`
	Status       TableStatus `db:"status" json:"status"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

type NewTable struct {
	GMID         uuid.UUID
	Title        string
	Description  string
	PlayerSlots  int
	GameSystemID uuid.UUID
}

func CreateTable(t NewTable, now time.Time) Table {
	return Table{
		ID:           uuid.New(),
		GMID:         t.GMID,
		Title:        t.Title,
		Description:  t.Description,
		PlayerSlots:  t.PlayerSlots,
		GameSystemID: t.GameSystemID,
		Status:       TableStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// TableUpdate is a partial update; gm_id is deliberately not part of it.
type TableUpdate struct {
	Title        core.Update[string]
	Description  core.Update[string]
	PlayerSlots  core.Update[int]
	GameSystemID core.Update[uuid.UUID]
	Status       core.Update[TableStatus]
}
