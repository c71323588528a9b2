package data

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/samber/oops"
)

// FakeUseDef — row of doodad_func_fake_uses.
type FakeUseDef struct {
	ID           uint32
	SkillID      uint32
	FakeSkillID  uint32
	TargetParent bool
}

// LoadFakeUseDefs reads all fake-use doodad funcs.
func LoadFakeUseDefs(ctx context.Context, db *sql.DB) ([]FakeUseDef, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, skill_id, fake_skill_id, target_parent FROM doodad_func_fake_uses ORDER BY id`)
	if err != nil {
		return nil, oops.Code("fake_use_query").Wrap(errors.Join(ErrReagentSource, err))
	}
	defer rows.Close()

	defs := make([]FakeUseDef, 0, 64)
	for rows.Next() {
		var d FakeUseDef
		if err := rows.Scan(&d.ID, &d.SkillID, &d.FakeSkillID, &d.TargetParent); err != nil {
			return nil, oops.Code("fake_use_scan").Wrap(errors.Join(ErrReagentSource, err))
		}
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("fake_use_query").Wrap(errors.Join(ErrReagentSource, err))
	}

	slog.Info("loaded doodad fake-use funcs", "count", len(defs))
	return defs, nil
}

// LoadDoodadFuncs reads doodad_funcs into templateID → func ids (ascending).
func LoadDoodadFuncs(ctx context.Context, db *sql.DB) (map[uint32][]uint32, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT doodad_template_id, func_id FROM doodad_funcs ORDER BY doodad_template_id, func_id`)
	if err != nil {
		return nil, oops.Code("doodad_funcs_query").Wrap(errors.Join(ErrReagentSource, err))
	}
	defer rows.Close()

	out := make(map[uint32][]uint32)
	for rows.Next() {
		var templateID, funcID uint32
		if err := rows.Scan(&templateID, &funcID); err != nil {
			return nil, oops.Code("doodad_funcs_scan").Wrap(errors.Join(ErrReagentSource, err))
		}
		out[templateID] = append(out[templateID], funcID)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("doodad_funcs_query").Wrap(errors.Join(ErrReagentSource, err))
	}

	slog.Info("loaded doodad funcs", "templates", len(out))
	return out, nil
}
