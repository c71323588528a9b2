package model

// NpcTemplate represents NPC stats used when spawning units.
type NpcTemplate struct {
	templateID uint32
	name       string
	modelID    uint32
	level      int32
	maxHP      int32
	maxMP      int32
	factionID  uint32
}

// NewNpcTemplate creates a new NPC template
func NewNpcTemplate(templateID uint32, name string, modelID uint32, level, maxHP, maxMP int32, factionID uint32) *NpcTemplate {
	return &NpcTemplate{
		templateID: templateID,
		name:       name,
		modelID:    modelID,
		level:      level,
		maxHP:      maxHP,
		maxMP:      maxMP,
		factionID:  factionID,
	}
}

// TemplateID returns template ID
func (t *NpcTemplate) TemplateID() uint32 {
	return t.templateID
}

// Name returns NPC name
func (t *NpcTemplate) Name() string {
	return t.name
}

// ModelID returns client model ID
func (t *NpcTemplate) ModelID() uint32 {
	return t.modelID
}

// Level returns NPC level
func (t *NpcTemplate) Level() int32 {
	return t.level
}

// MaxHP returns max HP
func (t *NpcTemplate) MaxHP() int32 {
	return t.maxHP
}

// MaxMP returns max MP
func (t *NpcTemplate) MaxMP() int32 {
	return t.maxMP
}

// FactionID returns template faction (unused for owned units, they inherit owner faction)
func (t *NpcTemplate) FactionID() uint32 {
	return t.factionID
}
