package world

import (
	"sync"
	"testing"

	"github.com/udisondev/portalgate/internal/constants"
)

func TestObjectIDGenerator_Ranges(t *testing.T) {
	gen := NewObjectIDGenerator()

	if id := gen.NextPlayerID(); !constants.IsPlayerObjectID(id) {
		t.Errorf("NextPlayerID() = %#x, not in player range", id)
	}
	if id := gen.NextNpcID(); !constants.IsNpcObjectID(id) {
		t.Errorf("NextNpcID() = %#x, not in NPC range", id)
	}
	if id := gen.NextDoodadID(); !constants.IsDoodadObjectID(id) {
		t.Errorf("NextDoodadID() = %#x, not in doodad range", id)
	}
	if id := gen.NextItemID(); id <= constants.ObjectIDItemStart || id > constants.ObjectIDItemEnd {
		t.Errorf("NextItemID() = %#x, not in item range", id)
	}
}

func TestObjectIDGenerator_Unique(t *testing.T) {
	gen := NewObjectIDGenerator()

	var (
		mu   sync.Mutex
		seen = make(map[uint32]struct{}, 1000)
		wg   sync.WaitGroup
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				id := gen.NextNpcID()
				mu.Lock()
				if _, dup := seen[id]; dup {
					t.Errorf("duplicate id %#x", id)
				}
				seen[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != 1000 {
		t.Errorf("generated %d unique ids, want 1000", len(seen))
	}
}
