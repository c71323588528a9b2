package data

import (
	"log/slog"

	"github.com/udisondev/portalgate/internal/model"
)

// npcTemplateDef — NPC template literal (generated from npcs table).
type npcTemplateDef struct {
	id        uint32
	name      string
	modelID   uint32
	level     int32
	maxHP     int32
	maxMP     int32
	factionID uint32
}

var npcTemplateDefs = []npcTemplateDef{
	{id: 3891, name: "Portal Entrance", modelID: 5227, level: 1, maxHP: 2165, maxMP: 1011, factionID: 1},
	{id: 6949, name: "Portal Exit", modelID: 7862, level: 1, maxHP: 2165, maxMP: 1011, factionID: 1},
}

// NpcTemplates — registry of spawnable NPC templates.
type NpcTemplates struct {
	byID map[uint32]*model.NpcTemplate
}

// LoadNpcTemplates builds the registry from Go literals.
func LoadNpcTemplates() *NpcTemplates {
	t := NewNpcTemplates()
	for _, d := range npcTemplateDefs {
		t.Add(model.NewNpcTemplate(d.id, d.name, d.modelID, d.level, d.maxHP, d.maxMP, d.factionID))
	}
	slog.Info("loaded NPC templates", "count", len(t.byID))
	return t
}

// NewNpcTemplates returns an empty registry.
func NewNpcTemplates() *NpcTemplates {
	return &NpcTemplates{byID: make(map[uint32]*model.NpcTemplate, 8)}
}

// Add registers a template (startup and tests only).
func (t *NpcTemplates) Add(tmpl *model.NpcTemplate) {
	t.byID[tmpl.TemplateID()] = tmpl
}

// Get returns template by ID, nil if unknown.
func (t *NpcTemplates) Get(templateID uint32) *model.NpcTemplate {
	return t.byID[templateID]
}
