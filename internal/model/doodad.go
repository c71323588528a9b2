package model

import "sync/atomic"

// Doodad — интерактивный объект мира (телескоп, дверь, станок...).
type Doodad struct {
	*WorldObject

	templateID    uint32
	ownerObjectID uint32

	// cancelPhasing is read by the phase machine after a func has run.
	cancelPhasing atomic.Bool
}

// NewDoodad создаёт doodad.
func NewDoodad(objectID, templateID uint32, name string, loc Location, ownerObjectID uint32) *Doodad {
	return &Doodad{
		WorldObject:   NewWorldObject(objectID, name, loc),
		templateID:    templateID,
		ownerObjectID: ownerObjectID,
	}
}

// TemplateID returns doodad template ID.
func (d *Doodad) TemplateID() uint32 { return d.templateID }

// OwnerObjectID returns object ID of the owner (0 for world doodads).
func (d *Doodad) OwnerObjectID() uint32 { return d.ownerObjectID }

// CancelPhasing reports whether the pending phase transition is cancelled.
func (d *Doodad) CancelPhasing() bool { return d.cancelPhasing.Load() }

// SetCancelPhasing sets the phase-cancel flag.
func (d *Doodad) SetCancelPhasing(v bool) { d.cancelPhasing.Store(v) }
