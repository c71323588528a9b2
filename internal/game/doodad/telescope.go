package doodad

import (
	"log/slog"
	"sync"
	"time"

	"github.com/udisondev/portalgate/internal/gameserver/serverpackets"
	"github.com/udisondev/portalgate/internal/model"
)

// Sender delivers a packet to one player.
type Sender interface {
	SendPacket(objectID uint32, pkt serverpackets.Packet)
}

type telescopeView struct {
	started time.Time
	timer   *time.Timer // nil when views are not timed
}

// Telescope tracks players looking through a transfer telescope.
//
// A view ends on Stop (client request or leaving the world) or, when maxView
// is positive, once it has been open for maxView.
type Telescope struct {
	mu      sync.Mutex
	viewers map[uint32]*telescopeView // objectID → view
	sender  Sender
	maxView time.Duration
	now     func() time.Time
}

// NewTelescope creates a telescope tracker. maxView <= 0 leaves the end of a
// view to the client.
func NewTelescope(sender Sender, maxView time.Duration) *Telescope {
	return &Telescope{
		viewers: make(map[uint32]*telescopeView),
		sender:  sender,
		maxView: maxView,
		now:     time.Now,
	}
}

// Start implements TelescopeStarter. Starting twice keeps the first start time
// and the first deadline.
func (t *Telescope) Start(p *model.Player) {
	t.mu.Lock()
	defer t.mu.Unlock()
	objectID := p.ObjectID()
	if _, ok := t.viewers[objectID]; ok {
		return
	}

	v := &telescopeView{started: t.now()}
	if t.maxView > 0 {
		v.timer = time.AfterFunc(t.maxView, func() { t.expire(objectID, v) })
	}
	t.viewers[objectID] = v
	slog.Debug("transfer telescope started", "player", p.Name(), "max_view", t.maxView)
}

// Stop closes the view and tells the client. Returns how long it was open.
func (t *Telescope) Stop(objectID uint32) (time.Duration, bool) {
	t.mu.Lock()
	v, ok := t.viewers[objectID]
	delete(t.viewers, objectID)
	t.mu.Unlock()

	if !ok {
		return 0, false
	}
	if v.timer != nil {
		v.timer.Stop()
	}
	t.sender.SendPacket(objectID, &serverpackets.TransferTelescopeToggled{Enabled: false})
	return t.now().Sub(v.started), true
}

// expire ends v if it is still the player's current view.
func (t *Telescope) expire(objectID uint32, v *telescopeView) {
	t.mu.Lock()
	if t.viewers[objectID] != v {
		t.mu.Unlock()
		return
	}
	delete(t.viewers, objectID)
	t.mu.Unlock()

	t.sender.SendPacket(objectID, &serverpackets.TransferTelescopeToggled{Enabled: false})
	slog.Debug("transfer telescope expired", "objectID", objectID, "open", t.now().Sub(v.started))
}

// Active reports whether the player is looking through a telescope.
func (t *Telescope) Active(objectID uint32) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.viewers[objectID]
	return ok
}
