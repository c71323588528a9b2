package data

import "log/slog"

// zoneDef — zone → continent ("zone group target") literal.
type zoneDef struct {
	id        uint32
	name      string
	continent uint32
}

// Continents.
const (
	ContinentNuia    uint32 = 1
	ContinentHaranya uint32 = 2
	ContinentAuroria uint32 = 3
)

var zoneDefs = []zoneDef{
	{id: 102, name: "Two Crowns", continent: ContinentNuia},
	{id: 103, name: "Gweonid Forest", continent: ContinentNuia},
	{id: 104, name: "Marianople", continent: ContinentNuia},
	{id: 179, name: "Solzreed Peninsula", continent: ContinentNuia},
	{id: 204, name: "Lilyut Hills", continent: ContinentNuia},
	{id: 129, name: "Mahadevi", continent: ContinentHaranya},
	{id: 133, name: "Falcorth Plains", continent: ContinentHaranya},
	{id: 141, name: "Solis Headlands", continent: ContinentHaranya},
	{id: 188, name: "Ynystere", continent: ContinentHaranya},
	{id: 293, name: "Auroria", continent: ContinentAuroria},
}

// ZoneTopology maps zones to continents.
type ZoneTopology struct {
	continents map[uint32]uint32
}

// LoadZoneTopology builds the topology from Go literals.
func LoadZoneTopology() *ZoneTopology {
	t := NewZoneTopology(nil)
	for _, z := range zoneDefs {
		t.continents[z.id] = z.continent
	}
	slog.Info("loaded zone topology", "zones", len(t.continents))
	return t
}

// NewZoneTopology builds a topology from an explicit zone→continent map.
func NewZoneTopology(m map[uint32]uint32) *ZoneTopology {
	t := &ZoneTopology{continents: make(map[uint32]uint32, len(m)+len(zoneDefs))}
	for zone, continent := range m {
		t.continents[zone] = continent
	}
	return t
}

// ContinentOf returns the continent of a zone; unknown zones map to 0.
func (t *ZoneTopology) ContinentOf(zoneID uint32) uint32 {
	return t.continents[zoneID]
}
