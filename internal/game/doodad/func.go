// Package doodad implements doodad func rules evaluated when a unit
// interacts with a doodad.
package doodad

import (
	"github.com/udisondev/portalgate/internal/game/skill"
	"github.com/udisondev/portalgate/internal/gameserver/serverpackets"
	"github.com/udisondev/portalgate/internal/model"
)

// SkillCaster executes skill casts.
type SkillCaster interface {
	Cast(c skill.Cast) error
}

// TelescopeStarter opens the transfer-telescope view for a player.
type TelescopeStarter interface {
	Start(p *model.Player)
}

// Broadcaster sends a packet to everyone around a source object.
type Broadcaster interface {
	BroadcastAround(source model.Actor, pkt serverpackets.Packet, includeSelf bool)
}

// Env — collaborators available to doodad funcs.
type Env struct {
	Skills    SkillCaster
	Telescope TelescopeStarter
	Notifier  Broadcaster
}

// Func is one configured doodad function.
type Func interface {
	// Use runs the func for caster interacting with owner. skillID is the
	// skill that triggered the evaluation.
	Use(env Env, caster model.Actor, owner *model.Doodad, skillID uint32)
}
