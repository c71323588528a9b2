package data

import (
	"context"
	"database/sql"
	"fmt"
)

// GameSchemaSQL creates the SQLite tables read by the portal subsystem.
const GameSchemaSQL = `
CREATE TABLE IF NOT EXISTS open_portal_inland_reagents (
	id                    INTEGER PRIMARY KEY,
	open_portal_effect_id INTEGER NOT NULL,
	item_id               INTEGER NOT NULL,
	amount                INTEGER NOT NULL,
	priority              INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS open_portal_outland_reagents (
	id                    INTEGER PRIMARY KEY,
	open_portal_effect_id INTEGER NOT NULL,
	item_id               INTEGER NOT NULL,
	amount                INTEGER NOT NULL,
	priority              INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS doodad_func_fake_uses (
	id            INTEGER PRIMARY KEY,
	skill_id      INTEGER NOT NULL DEFAULT 0,
	fake_skill_id INTEGER NOT NULL DEFAULT 0,
	target_parent INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS doodad_funcs (
	doodad_template_id INTEGER NOT NULL,
	func_id            INTEGER NOT NULL,
	PRIMARY KEY (doodad_template_id, func_id)
);
CREATE TABLE IF NOT EXISTS skill_effects (
	skill_id  INTEGER NOT NULL,
	effect_id INTEGER NOT NULL,
	PRIMARY KEY (skill_id, effect_id)
);
`

// CreateGameSchema applies GameSchemaSQL to a writable SQLite handle.
func CreateGameSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, GameSchemaSQL); err != nil {
		return fmt.Errorf("creating game schema: %w", err)
	}
	return nil
}

// InitGameDB creates (or upgrades) a SQLite game database at path.
func InitGameDB(ctx context.Context, path string) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer db.Close()

	return CreateGameSchema(ctx, db)
}
