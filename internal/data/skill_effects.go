package data

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"slices"

	"github.com/samber/oops"
)

// LoadSkillEffects reads skill_effects into skillID → effect ids (ascending).
func LoadSkillEffects(ctx context.Context, db *sql.DB) (map[uint32][]uint32, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT skill_id, effect_id FROM skill_effects ORDER BY skill_id, effect_id`)
	if err != nil {
		return nil, oops.Code("skill_effects_query").Wrap(errors.Join(ErrReagentSource, err))
	}
	defer rows.Close()

	out := make(map[uint32][]uint32)
	n := 0
	for rows.Next() {
		var skillID, effectID uint32
		if err := rows.Scan(&skillID, &effectID); err != nil {
			return nil, oops.Code("skill_effects_scan").Wrap(errors.Join(ErrReagentSource, err))
		}
		out[skillID] = append(out[skillID], effectID)
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("skill_effects_query").Wrap(errors.Join(ErrReagentSource, err))
	}

	slog.Info("loaded skill effects", "skills", len(out), "rows", n)
	return out, nil
}

// EffectIDs returns the distinct open-portal effect ids referenced by both classes.
func (t *ReagentTable) EffectIDs() []uint32 {
	seen := make(map[uint32]struct{})
	var ids []uint32
	for _, list := range [][]ReagentCost{t.inland, t.outland} {
		for _, c := range list {
			if _, ok := seen[c.EffectID]; ok {
				continue
			}
			seen[c.EffectID] = struct{}{}
			ids = append(ids, c.EffectID)
		}
	}
	slices.Sort(ids)
	return ids
}
