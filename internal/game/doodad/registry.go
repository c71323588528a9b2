package doodad

import (
	"log/slog"

	"github.com/udisondev/portalgate/internal/data"
	"github.com/udisondev/portalgate/internal/model"
)

// Registry maps doodad func ids to funcs and doodad templates to their
// func ids. Immutable after construction.
type Registry struct {
	funcs     map[uint32]Func
	templates map[uint32][]uint32
}

// NewRegistry builds a registry from fake-use rows and the
// templateID → func ids binding.
func NewRegistry(fakeUses []data.FakeUseDef, templateFuncs map[uint32][]uint32) *Registry {
	r := &Registry{
		funcs:     make(map[uint32]Func, len(fakeUses)),
		templates: make(map[uint32][]uint32, len(templateFuncs)),
	}
	for templateID, ids := range templateFuncs {
		r.templates[templateID] = append([]uint32(nil), ids...)
	}
	for _, d := range fakeUses {
		r.funcs[d.ID] = &FakeUse{
			SkillID:      d.SkillID,
			FakeSkillID:  d.FakeSkillID,
			TargetParent: d.TargetParent,
		}
	}
	return r
}

// Get returns the func with the given id.
func (r *Registry) Get(funcID uint32) (Func, bool) {
	f, ok := r.funcs[funcID]
	return f, ok
}

// Len returns number of funcs.
func (r *Registry) Len() int {
	return len(r.funcs)
}

// Dispatch runs func funcID. Unknown ids are ignored and reported as false.
func (r *Registry) Dispatch(env Env, funcID uint32, caster model.Actor, owner *model.Doodad, skillID uint32) bool {
	f, ok := r.funcs[funcID]
	if !ok {
		slog.Debug("doodad func not found", "funcID", funcID, "doodad", owner.ObjectID())
		return false
	}
	f.Use(env, caster, owner, skillID)
	return true
}

// Interact runs every func bound to the doodad's template, in func id order.
// Returns how many funcs ran.
func (r *Registry) Interact(env Env, caster model.Actor, owner *model.Doodad, skillID uint32) int {
	ran := 0
	for _, funcID := range r.templates[owner.TemplateID()] {
		if r.Dispatch(env, funcID, caster, owner, skillID) {
			ran++
		}
	}
	return ran
}
