package skill

import (
	"fmt"

	"github.com/udisondev/portalgate/internal/model"
)

// SourceKind — who the cast originates from, as seen by the client.
type SourceKind byte

const (
	SourceUnit SourceKind = iota
	SourceDoodad
)

// Source describes the origin of a cast.
type Source struct {
	Kind     SourceKind
	ObjectID uint32
}

// UnitSource returns a cast origin on a unit.
func UnitSource(objectID uint32) Source { return Source{Kind: SourceUnit, ObjectID: objectID} }

// DoodadSource returns a cast origin on a doodad.
func DoodadSource(objectID uint32) Source { return Source{Kind: SourceDoodad, ObjectID: objectID} }

// TargetKind — what the cast is aimed at.
type TargetKind byte

const (
	TargetUnit TargetKind = iota
	TargetDoodad
)

// Target describes the target of a cast.
type Target struct {
	Kind     TargetKind
	ObjectID uint32
}

// UnitTarget returns a unit target.
func UnitTarget(objectID uint32) Target { return Target{Kind: TargetUnit, ObjectID: objectID} }

// DoodadTarget returns a doodad target.
func DoodadTarget(objectID uint32) Target { return Target{Kind: TargetDoodad, ObjectID: objectID} }

// Cast is a single skill execution request.
// InteractionID carries the skill object payload; the open-portal effect
// reads the booked portal id from it.
type Cast struct {
	SkillID       uint32
	Caster        model.Actor
	Source        Source
	Target        Target
	InteractionID uint32
}

func (c Cast) String() string {
	name := "<nil>"
	if c.Caster != nil {
		name = c.Caster.Name()
	}
	return fmt.Sprintf("skill=%d caster=%s source=%d/%d target=%d/%d",
		c.SkillID, name, c.Source.Kind, c.Source.ObjectID, c.Target.Kind, c.Target.ObjectID)
}
