package data

import "testing"

func TestZoneTopology(t *testing.T) {
	topo := LoadZoneTopology()

	if got := topo.ContinentOf(104); got != ContinentNuia {
		t.Errorf("ContinentOf(104) = %d, want %d", got, ContinentNuia)
	}
	if got := topo.ContinentOf(129); got != ContinentHaranya {
		t.Errorf("ContinentOf(129) = %d, want %d", got, ContinentHaranya)
	}
	if got := topo.ContinentOf(99999); got != 0 {
		t.Errorf("ContinentOf(unknown) = %d, want 0", got)
	}
}

func TestNewZoneTopology(t *testing.T) {
	topo := NewZoneTopology(map[uint32]uint32{1: 10, 2: 20})

	if topo.ContinentOf(1) != 10 || topo.ContinentOf(2) != 20 {
		t.Errorf("unexpected continents: %d, %d", topo.ContinentOf(1), topo.ContinentOf(2))
	}
}

func TestLoadNpcTemplates(t *testing.T) {
	templates := LoadNpcTemplates()

	for _, id := range []uint32{3891, 6949} {
		if templates.Get(id) == nil {
			t.Errorf("template %d not loaded", id)
		}
	}
	if templates.Get(1) != nil {
		t.Error("Get(1) should be nil")
	}
}
