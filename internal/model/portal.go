package model

import (
	"sync"

	"github.com/udisondev/portalgate/internal/constants"
)

// Portal — живой объект портала (вход или выход), принадлежащий игроку.
type Portal struct {
	*WorldObject

	role          constants.PortalRole
	templateID    uint32
	modelID       uint32
	level         int32
	ownerObjectID uint32
	factionID     uint32
	hp            int32
	mp            int32

	mu               sync.RWMutex
	teleportPosition Location
	linked           bool
}

// PortalParams — параметры создания портала.
type PortalParams struct {
	Role          constants.PortalRole
	Template      *NpcTemplate
	Name          string
	Location      Location
	OwnerObjectID uint32
	FactionID     uint32
	HP, MP        int32
}

// NewPortal creates a portal unit. Level and model come from the template,
// faction from the owner, HP/MP from params.
func NewPortal(objectID uint32, p PortalParams) *Portal {
	portal := &Portal{
		WorldObject:   NewWorldObject(objectID, p.Name, p.Location),
		role:          p.Role,
		ownerObjectID: p.OwnerObjectID,
		factionID:     p.FactionID,
		hp:            p.HP,
		mp:            p.MP,
	}
	if p.Template != nil {
		portal.templateID = p.Template.TemplateID()
		portal.modelID = p.Template.ModelID()
		portal.level = p.Template.Level()
	}
	return portal
}

// Role returns entrance or exit.
func (p *Portal) Role() constants.PortalRole { return p.role }

// TemplateID returns NPC template ID.
func (p *Portal) TemplateID() uint32 { return p.templateID }

// ModelID returns client model ID.
func (p *Portal) ModelID() uint32 { return p.modelID }

// Level returns unit level.
func (p *Portal) Level() int32 { return p.level }

// OwnerObjectID returns object ID of the player who opened the portal.
func (p *Portal) OwnerObjectID() uint32 { return p.ownerObjectID }

// FactionID returns faction inherited from the owner.
func (p *Portal) FactionID() uint32 { return p.factionID }

// HP returns current HP.
func (p *Portal) HP() int32 { return p.hp }

// MP returns current MP.
func (p *Portal) MP() int32 { return p.mp }

// SetTeleportPosition links the portal to a destination.
func (p *Portal) SetTeleportPosition(loc Location) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.teleportPosition = loc
	p.linked = true
}

// TeleportPosition returns the linked destination; ok is false for unlinked portals.
func (p *Portal) TeleportPosition() (loc Location, ok bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.teleportPosition, p.linked
}
