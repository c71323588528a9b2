package portal

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/udisondev/portalgate/internal/constants"
	"github.com/udisondev/portalgate/internal/data"
	"github.com/udisondev/portalgate/internal/game/skill"
	"github.com/udisondev/portalgate/internal/gameserver/serverpackets"
	"github.com/udisondev/portalgate/internal/model"
)

// Topology maps a zone to its continent.
type Topology interface {
	ContinentOf(zoneID uint32) uint32
}

// Templates resolves NPC templates.
type Templates interface {
	Get(templateID uint32) *model.NpcTemplate
}

// IDAllocator hands out unique NPC object ids.
type IDAllocator interface {
	NextNpcID() uint32
}

// World is the live object registry portals are published to.
type World interface {
	AddPortalPair(exit, entrance *model.Portal) error
	GetPortal(objectID uint32) (*model.Portal, bool)
	RemovePortalsOwnedBy(ownerObjectID uint32) []*model.Portal
}

// Notifier delivers server packets. Fire-and-forget.
type Notifier interface {
	SendPacket(objectID uint32, pkt serverpackets.Packet)
	BroadcastAround(source model.Actor, pkt serverpackets.Packet, includeSelf bool)
}

// Deps are the collaborators of a Manager.
type Deps struct {
	Catalog   *data.PortalCatalog
	Reagents  *data.ReagentTable
	Topology  Topology
	Templates Templates
	World     World
	IDs       IDAllocator
	Notifier  Notifier

	// BookLimit caps entries per book in BookPortal; 0 means unlimited.
	BookLimit int
}

// Manager opens, uses and deletes player portals.
//
// Callers serialize calls per player (see model.Player.Lock); the manager
// itself keeps no per-player state.
type Manager struct {
	catalog   *data.PortalCatalog
	reagents  *data.ReagentTable
	topology  Topology
	templates Templates
	world     World
	ids       IDAllocator
	notifier  Notifier
	bookLimit int
}

// NewManager validates collaborators and returns a ready manager.
// Both portal role templates must be present.
func NewManager(d Deps) (*Manager, error) {
	switch {
	case d.Catalog == nil:
		return nil, fmt.Errorf("portal manager: catalog is nil")
	case d.Reagents == nil:
		return nil, fmt.Errorf("portal manager: reagent table is nil")
	case d.Topology == nil, d.Templates == nil, d.World == nil, d.IDs == nil, d.Notifier == nil:
		return nil, fmt.Errorf("portal manager: missing collaborator")
	}
	for _, role := range []constants.PortalRole{constants.PortalEntrance, constants.PortalExit} {
		id := constants.PortalTemplateID(role)
		if d.Templates.Get(id) == nil {
			return nil, fmt.Errorf("portal manager: %s template %d not found", role, id)
		}
	}

	return &Manager{
		catalog:   d.Catalog,
		reagents:  d.Reagents,
		topology:  d.Topology,
		templates: d.Templates,
		world:     d.World,
		ids:       d.IDs,
		notifier:  d.Notifier,
		bookLimit: d.BookLimit,
	}, nil
}

// Classify returns inland when source and target zones share a continent.
func (m *Manager) Classify(fromZoneID, toZoneID uint32) data.ReagentClass {
	if m.topology.ContinentOf(fromZoneID) == m.topology.ContinentOf(toZoneID) {
		return data.ReagentInland
	}
	return data.ReagentOutland
}

// Destination resolves where the exit of a booked portal spawns.
// District portals from the catalog win over the coordinates stored in the book.
func (m *Manager) Destination(b model.BookedPortal) model.Location {
	if def, ok := m.catalog.BySubZone(b.SubZoneID); ok && b.SubZoneID != 0 {
		return def.Location()
	}
	booked := data.PortalDefinition{ZoneID: b.ZoneID, X: b.X, Y: b.Y, Z: b.Z, ZRot: b.ZRot}
	return booked.Location()
}

// OpenPortal pays reagents and spawns a portal pair for a booked portal.
// Returns false without side effects when the booking is unknown or nothing
// in the reagent table can be paid.
func (m *Manager) OpenPortal(owner *model.Player, interactionID uint32) bool {
	booking, ok := owner.Portals().GetPortalInfo(interactionID)
	if !ok {
		slog.Debug("open portal: unknown booking",
			"owner", owner.Name(),
			"interactionID", interactionID)
		openRejected.WithLabelValues(rejectUnknownBooking).Inc()
		return false
	}

	class := m.Classify(owner.Location().ZoneID, booking.ZoneID)
	cost, ok := m.reagents.TryAfford(class, func(itemID uint32, amount int32) bool {
		return m.payReagent(owner, itemID, amount)
	})
	if !ok {
		// TODO: there is no client packet for "not enough reagents" yet; the
		// client only sees that nothing spawned.
		slog.Debug("open portal: reagents not affordable",
			"owner", owner.Name(),
			"class", class)
		openRejected.WithLabelValues(rejectReagents).Inc()
		return false
	}

	// exit first: the entrance links to its resolved position
	exit := m.describe(owner, constants.PortalExit, m.Destination(booking), booking.Name).Build()
	entrance := m.describe(owner, constants.PortalEntrance, owner.Location(), booking.Name).Build()
	entrance.SetTeleportPosition(exit.Location())

	if err := m.world.AddPortalPair(exit, entrance); err != nil {
		// reagents are already spent; ids are unique so this is a bug, not a race
		slog.Error("open portal: publishing pair",
			"owner", owner.Name(),
			"error", err)
		openRejected.WithLabelValues(rejectSpawn).Inc()
		return false
	}

	openTotal.WithLabelValues(class.String()).Inc()
	slog.Debug("portal opened",
		"owner", owner.Name(),
		"booking", booking.ID,
		"class", class,
		"reagent", cost.ID,
		"entrance", entrance.ObjectID(),
		"exit", exit.ObjectID())
	return true
}

// payReagent atomically checks and removes items, then reports the removal
// to the owner.
func (m *Manager) payReagent(owner *model.Player, itemID uint32, amount int32) bool {
	removed, ok := owner.Inventory().Consume(itemID, amount)
	if !ok {
		return false
	}

	reagentConsumed.WithLabelValues(strconv.FormatUint(uint64(itemID), 10)).Add(float64(amount))
	m.notifier.SendPacket(owner.ObjectID(),
		serverpackets.NewItemTaskSuccess(constants.ItemTaskSkillReagents, removed))
	return true
}

// UsePortal teleports the character to the destination linked to a portal.
// Unknown objects, non-portals and unlinked portals are ignored: the portal
// may have despawned after the client sent the request.
func (m *Manager) UsePortal(character *model.Player, objectID uint32) bool {
	portal, ok := m.world.GetPortal(objectID)
	if !ok {
		slog.Debug("use portal: no such portal", "character", character.Name(), "objectID", objectID)
		return false
	}
	dest, ok := portal.TeleportPosition()
	if !ok {
		slog.Debug("use portal: portal has no destination", "objectID", objectID, "role", portal.Role())
		return false
	}

	character.SetDisabledSetPosition(true)
	m.notifier.BroadcastAround(character, &serverpackets.TeleportUnit{
		X:    dest.X,
		Y:    dest.Y,
		Z:    dest.Z,
		RotZ: dest.RotationZ,
	}, true)

	teleportTotal.Inc()
	return true
}

// DeletePortal removes a booked portal. bookKind == constants.BookKindPublic
// addresses the public book, any other value the private one.
func (m *Manager) DeletePortal(owner *model.Player, bookKind byte, id uint32) bool {
	if _, ok := owner.Portals().GetPortalInfo(id); !ok {
		return false
	}
	return owner.Portals().Remove(id, constants.IsPrivateBook(bookKind))
}

// BookPortal records a portal in the owner's book, honouring the book limit.
func (m *Manager) BookPortal(owner *model.Player, p model.BookedPortal, isPrivate bool) bool {
	if m.bookLimit > 0 {
		n := len(owner.Portals().Public())
		if isPrivate {
			n = len(owner.Portals().Private())
		}
		if _, exists := owner.Portals().GetPortalInfo(p.ID); !exists && n >= m.bookLimit {
			slog.Debug("book portal: book full", "owner", owner.Name(), "limit", m.bookLimit)
			return false
		}
	}
	owner.Portals().Add(p, isPrivate)
	bookedTotal.WithLabelValues(bookLabel(isPrivate)).Inc()
	return true
}

// BookCurrentPosition records the owner's current position under a fresh ID
// in the book selected by bookKind.
func (m *Manager) BookCurrentPosition(owner *model.Player, bookKind byte, subZoneID uint32, name string) (model.BookedPortal, bool) {
	loc := owner.Location()
	p := model.BookedPortal{
		ID:        owner.Portals().NextID(),
		Name:      name,
		ZoneID:    loc.ZoneID,
		SubZoneID: subZoneID,
		X:         loc.X,
		Y:         loc.Y,
		Z:         loc.Z,
		ZRot:      float32(int32(loc.RotationZ) * 256), // back to catalog units
	}
	if !m.BookPortal(owner, p, constants.IsPrivateBook(bookKind)) {
		return model.BookedPortal{}, false
	}
	return p, true
}

// RemovePortalPair despawns every portal the owner has open.
func (m *Manager) RemovePortalPair(ownerObjectID uint32) int {
	removed := m.world.RemovePortalsOwnedBy(ownerObjectID)
	if len(removed) > 0 {
		slog.Debug("portals despawned", "owner", ownerObjectID, "count", len(removed))
	}
	return len(removed)
}

// OpenPortalEffect is the skill effect handler for open-portal effects.
// The cast's InteractionID is the booked portal id.
func (m *Manager) OpenPortalEffect() skill.EffectHandler {
	return func(c skill.Cast) error {
		owner, ok := c.Caster.(*model.Player)
		if !ok {
			return fmt.Errorf("open portal: caster %T is not a player", c.Caster)
		}
		m.OpenPortal(owner, c.InteractionID)
		return nil
	}
}
