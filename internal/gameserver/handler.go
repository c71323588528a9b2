package gameserver

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/udisondev/portalgate/internal/constants"
	"github.com/udisondev/portalgate/internal/game/doodad"
	"github.com/udisondev/portalgate/internal/game/portal"
	"github.com/udisondev/portalgate/internal/gameserver/clientpackets"
	"github.com/udisondev/portalgate/internal/model"
)

// BookStore persists portal books.
type BookStore interface {
	LoadInto(ctx context.Context, charID int64, book *model.PortalBook) (int, error)
	Add(ctx context.Context, charID int64, p model.BookedPortal, isPrivate bool) error
	Delete(ctx context.Context, charID int64, portalID uint32, isPrivate bool) (bool, error)
}

// World is the part of the object registry the handler touches.
type World interface {
	AddPlayer(p *model.Player) error
	RemoveObject(objectID uint32) bool
	GetDoodad(objectID uint32) (*model.Doodad, bool)
}

// HandlerDeps are the collaborators of a Handler.
type HandlerDeps struct {
	Clients   *ClientManager
	World     World
	Portals   *portal.Manager
	Doodads   *doodad.Registry
	DoodadEnv doodad.Env
	Telescope *doodad.Telescope
	Books     BookStore // nil: books are not persisted
}

// Handler dispatches client requests of in-game sessions.
type Handler struct {
	clients   *ClientManager
	world     World
	portals   *portal.Manager
	doodads   *doodad.Registry
	doodadEnv doodad.Env
	telescope *doodad.Telescope
	books     BookStore
}

// NewHandler creates a request handler.
func NewHandler(d HandlerDeps) *Handler {
	return &Handler{
		clients:   d.Clients,
		world:     d.World,
		portals:   d.Portals,
		doodads:   d.Doodads,
		doodadEnv: d.DoodadEnv,
		telescope: d.Telescope,
		books:     d.Books,
	}
}

// EnterWorld loads the player's portal book, publishes the player and
// registers its session.
func (h *Handler) EnterWorld(ctx context.Context, player *model.Player, conn Conn) (*Session, error) {
	if h.books != nil {
		n, err := h.books.LoadInto(ctx, player.CharacterID(), player.Portals())
		if err != nil {
			return nil, fmt.Errorf("loading portal book of %s: %w", player.Name(), err)
		}
		slog.Debug("portal book loaded", "character", player.Name(), "entries", n)
	}
	if err := h.world.AddPlayer(player); err != nil {
		return nil, fmt.Errorf("adding %s to world: %w", player.Name(), err)
	}
	return h.clients.Register(player, conn), nil
}

// LeaveWorld despawns the player's portals and drops its session.
func (h *Handler) LeaveWorld(player *model.Player) {
	player.Lock()
	defer player.Unlock()

	if h.telescope != nil {
		h.telescope.Stop(player.ObjectID())
	}
	h.portals.RemovePortalPair(player.ObjectID())
	h.clients.Unregister(player.ObjectID())
	h.world.RemoveObject(player.ObjectID())
}

// HandlePacket routes one client packet (2-byte LE opcode + body).
// Requests of one player are serialized with the player's lock.
func (h *Handler) HandlePacket(ctx context.Context, s *Session, data []byte) error {
	if len(data) < 2 {
		return fmt.Errorf("packet too short: %d bytes", len(data))
	}

	opcode := binary.LittleEndian.Uint16(data)
	body := data[2:]
	player := s.Player()

	player.Lock()
	defer player.Unlock()

	var (
		ok  bool
		err error
	)
	switch opcode {
	case clientpackets.OpcodeRequestOpenPortal:
		ok, err = h.handleOpenPortal(player, body)
	case clientpackets.OpcodeRequestUsePortal:
		ok, err = h.handleUsePortal(player, body)
	case clientpackets.OpcodeRequestDeletePortal:
		ok, err = h.handleDeletePortal(ctx, player, body)
	case clientpackets.OpcodeRequestBookPortal:
		ok, err = h.handleBookPortal(ctx, player, body)
	case clientpackets.OpcodeRequestDoodadInteraction:
		ok, err = h.handleDoodadInteraction(player, body)
	case clientpackets.OpcodeRequestStopTelescope:
		ok, err = h.handleStopTelescope(player)
	default:
		slog.Warn("unknown packet opcode",
			"opcode", opcodeLabel(opcode),
			"character", player.Name())
		requestsHandled.WithLabelValues(opcodeLabel(opcode), "unknown").Inc()
		return nil
	}

	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case !ok:
		outcome = "rejected"
	}
	requestsHandled.WithLabelValues(opcodeLabel(opcode), outcome).Inc()
	return err
}

func (h *Handler) handleOpenPortal(player *model.Player, body []byte) (bool, error) {
	pkt, err := clientpackets.ParseRequestOpenPortal(body)
	if err != nil {
		return false, fmt.Errorf("parsing RequestOpenPortal: %w", err)
	}
	return h.portals.OpenPortal(player, pkt.InteractionID), nil
}

func (h *Handler) handleUsePortal(player *model.Player, body []byte) (bool, error) {
	pkt, err := clientpackets.ParseRequestUsePortal(body)
	if err != nil {
		return false, fmt.Errorf("parsing RequestUsePortal: %w", err)
	}
	return h.portals.UsePortal(player, pkt.ObjectID), nil
}

// handleDeletePortal removes the entry from the in-memory book first; the
// database row follows only when that succeeded.
func (h *Handler) handleDeletePortal(ctx context.Context, player *model.Player, body []byte) (bool, error) {
	pkt, err := clientpackets.ParseRequestDeletePortal(body)
	if err != nil {
		return false, fmt.Errorf("parsing RequestDeletePortal: %w", err)
	}
	if !h.portals.DeletePortal(player, pkt.Kind, pkt.ID) {
		return false, nil
	}
	if h.books == nil {
		return true, nil
	}

	if _, err := h.books.Delete(ctx, player.CharacterID(), pkt.ID, constants.IsPrivateBook(pkt.Kind)); err != nil {
		return true, fmt.Errorf("deleting portal %d of %s: %w", pkt.ID, player.Name(), err)
	}
	return true, nil
}

// handleBookPortal records the player's position. When the row cannot be
// stored the in-memory entry is dropped again, so book and table agree.
func (h *Handler) handleBookPortal(ctx context.Context, player *model.Player, body []byte) (bool, error) {
	pkt, err := clientpackets.ParseRequestBookPortal(body)
	if err != nil {
		return false, fmt.Errorf("parsing RequestBookPortal: %w", err)
	}
	p, ok := h.portals.BookCurrentPosition(player, pkt.Kind, pkt.SubZoneID, pkt.Name)
	if !ok {
		return false, nil
	}
	if h.books == nil {
		return true, nil
	}

	isPrivate := constants.IsPrivateBook(pkt.Kind)
	if err := h.books.Add(ctx, player.CharacterID(), p, isPrivate); err != nil {
		player.Portals().Remove(p.ID, isPrivate)
		return false, fmt.Errorf("booking portal %d of %s: %w", p.ID, player.Name(), err)
	}
	slog.Debug("portal booked", "character", player.Name(), "id", p.ID, "private", isPrivate)
	return true, nil
}

func (h *Handler) handleDoodadInteraction(player *model.Player, body []byte) (bool, error) {
	pkt, err := clientpackets.ParseRequestDoodadInteraction(body)
	if err != nil {
		return false, fmt.Errorf("parsing RequestDoodadInteraction: %w", err)
	}
	owner, ok := h.world.GetDoodad(pkt.ObjectID)
	if !ok {
		slog.Debug("doodad interaction: no such doodad",
			"character", player.Name(),
			"objectID", pkt.ObjectID)
		return false, nil
	}
	return h.doodads.Interact(h.doodadEnv, player, owner, pkt.SkillID) > 0, nil
}

func (h *Handler) handleStopTelescope(player *model.Player) (bool, error) {
	if h.telescope == nil {
		return false, nil
	}
	d, ok := h.telescope.Stop(player.ObjectID())
	if ok {
		slog.Debug("transfer telescope closed", "character", player.Name(), "duration", d)
	}
	return ok, nil
}
