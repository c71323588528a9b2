package doodad

import (
	"log/slog"

	"github.com/udisondev/portalgate/internal/constants"
	"github.com/udisondev/portalgate/internal/game/skill"
	"github.com/udisondev/portalgate/internal/gameserver/serverpackets"
	"github.com/udisondev/portalgate/internal/model"
)

// FakeUse casts an optional skill from the doodad and decides whether the
// doodad's pending phase change goes through.
//
// A FakeSkillID equal to the triggering skill lets the phase change proceed;
// every other outcome cancels it.
type FakeUse struct {
	SkillID      uint32
	FakeSkillID  uint32
	TargetParent bool // target the doodad instead of the caster
}

// Use implements Func.
func (f *FakeUse) Use(env Env, caster model.Actor, owner *model.Doodad, skillID uint32) {
	if f.SkillID != 0 {
		target := skill.UnitTarget(caster.ObjectID())
		if f.TargetParent {
			target = skill.DoodadTarget(owner.ObjectID())
		}
		err := env.Skills.Cast(skill.Cast{
			SkillID: f.SkillID,
			Caster:  caster,
			Source:  skill.DoodadSource(owner.ObjectID()),
			Target:  target,
		})
		if err != nil {
			slog.Warn("doodad fake use: cast failed",
				"doodad", owner.ObjectID(),
				"template", owner.TemplateID(),
				"skillID", f.SkillID,
				"error", err)
		}
	}

	if f.FakeSkillID != 0 {
		if player, ok := caster.(*model.Player); ok && f.FakeSkillID == constants.FakeSkillTransferTelescope {
			env.Notifier.BroadcastAround(owner, &serverpackets.TransferTelescopeToggled{
				Enabled: true,
				Range:   constants.TransferTelescopeRange,
			}, true)
			env.Telescope.Start(player)
		}

		if f.FakeSkillID == skillID {
			owner.SetCancelPhasing(false)
			return
		}
	}

	owner.SetCancelPhasing(true)
}
