package skill

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrUnknownSkill is returned by Cast for a skill with no effects bound.
var ErrUnknownSkill = errors.New("unknown skill")

// EffectHandler applies one effect of a cast.
type EffectHandler func(c Cast) error

// Manager executes casts by running the handlers of every effect bound to
// the skill. Effect handlers are injected by the subsystems that own them
// (portal, doodad), so this package never imports them.
type Manager struct {
	mu      sync.RWMutex
	skills  map[uint32][]uint32 // skillID → effect ids, in apply order
	effects map[uint32]EffectHandler
}

// NewManager creates a manager from a skillID → effect ids binding.
func NewManager(skillEffects map[uint32][]uint32) *Manager {
	m := &Manager{
		skills:  make(map[uint32][]uint32, len(skillEffects)),
		effects: make(map[uint32]EffectHandler),
	}
	for id, effects := range skillEffects {
		m.skills[id] = append([]uint32(nil), effects...)
	}
	return m
}

// Bind appends effects to a skill.
func (m *Manager) Bind(skillID uint32, effectIDs ...uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.skills[skillID] = append(m.skills[skillID], effectIDs...)
}

// RegisterEffect installs the handler for an effect id, replacing any previous one.
func (m *Manager) RegisterEffect(effectID uint32, h EffectHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.effects[effectID] = h
}

// HasSkill reports whether the skill has any effect bound.
func (m *Manager) HasSkill(skillID uint32) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.skills[skillID]) > 0
}

// Cast runs every bound effect in order. Effects without a handler are
// skipped. The first handler error stops the cast.
func (m *Manager) Cast(c Cast) error {
	m.mu.RLock()
	effectIDs := m.skills[c.SkillID]
	handlers := make([]EffectHandler, len(effectIDs))
	for i, id := range effectIDs {
		handlers[i] = m.effects[id]
	}
	m.mu.RUnlock()

	if len(effectIDs) == 0 {
		return fmt.Errorf("casting %d: %w", c.SkillID, ErrUnknownSkill)
	}

	for i, h := range handlers {
		if h == nil {
			slog.Debug("skill effect has no handler", "skillID", c.SkillID, "effectID", effectIDs[i])
			continue
		}
		if err := h(c); err != nil {
			return fmt.Errorf("applying effect %d of skill %d: %w", effectIDs[i], c.SkillID, err)
		}
	}

	slog.Debug("skill cast", "cast", c.String())
	return nil
}
