package portal

import (
	"github.com/udisondev/portalgate/internal/constants"
	"github.com/udisondev/portalgate/internal/model"
)

// SpawnDescriptor is everything needed to put one half of a pair into the world.
type SpawnDescriptor struct {
	ObjectID      uint32
	Role          constants.PortalRole
	Template      *model.NpcTemplate
	Name          string
	Location      model.Location
	OwnerObjectID uint32
	FactionID     uint32
	HP, MP        int32
}

// describe builds the descriptor for one role. Faction comes from the owner;
// HP/MP are the nominal portal values, not the template's.
func (m *Manager) describe(owner *model.Player, role constants.PortalRole, loc model.Location, name string) SpawnDescriptor {
	return SpawnDescriptor{
		ObjectID:      m.ids.NextNpcID(),
		Role:          role,
		Template:      m.templates.Get(constants.PortalTemplateID(role)),
		Name:          name,
		Location:      loc,
		OwnerObjectID: owner.ObjectID(),
		FactionID:     owner.FactionID(),
		HP:            constants.PortalNominalHP,
		MP:            constants.PortalNominalMP,
	}
}

// Build creates the portal unit.
func (d SpawnDescriptor) Build() *model.Portal {
	return model.NewPortal(d.ObjectID, model.PortalParams{
		Role:          d.Role,
		Template:      d.Template,
		Name:          d.Name,
		Location:      d.Location,
		OwnerObjectID: d.OwnerObjectID,
		FactionID:     d.FactionID,
		HP:            d.HP,
		MP:            d.MP,
	})
}
