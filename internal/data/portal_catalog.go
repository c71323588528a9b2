package data

import (
	"bytes"
	"cmp"
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"os"
	"slices"

	"github.com/samber/oops"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/udisondev/portalgate/internal/model"
)

// Catalog load errors. A server must not start on any of them.
var (
	ErrCatalogEmpty    = errors.New("portal catalog is empty")
	ErrDuplicatePortal = errors.New("duplicate portal definition")
)

//go:embed portal_catalog.schema.json
var portalCatalogSchema string

// PortalDefinition — district portal from SubZonePortalCoords.
type PortalDefinition struct {
	ID        uint32  `json:"id"`
	Name      string  `json:"name"`
	ZoneID    uint32  `json:"zone_id"`
	SubZoneID uint32  `json:"sub_zone_id"`
	X         float32 `json:"x"`
	Y         float32 `json:"y"`
	Z         float32 `json:"z"`
	ZRot      float32 `json:"zrot"` // source units, int16 range
}

// RotationZ returns the rotation converted to engine units.
func (d *PortalDefinition) RotationZ() int8 {
	return ConvertRotation(int16(math.RoundToEven(float64(d.ZRot))))
}

// Location returns the portal position with converted rotation.
func (d *PortalDefinition) Location() model.Location {
	return model.NewLocation(d.X, d.Y, d.Z, d.ZoneID).WithRotation(d.RotationZ())
}

// ConvertRotation maps a source rotation (full turn = 65536) onto the engine's
// signed byte (full turn = 256). Truncates toward zero.
func ConvertRotation(raw int16) int8 {
	return int8(float64(raw) / 65536 * 256)
}

// PortalCatalog — immutable registry of district portals.
// bySubZone is the primary view; idIndex maps portal ID → sub-zone ID and is
// built in the same pass, so every ID resolves through bySubZone.
type PortalCatalog struct {
	bySubZone map[uint32]*PortalDefinition
	idIndex   map[uint32]uint32
}

// BySubZone returns the portal of a sub-zone.
func (c *PortalCatalog) BySubZone(subZoneID uint32) (*PortalDefinition, bool) {
	d, ok := c.bySubZone[subZoneID]
	return d, ok
}

// ByID returns the portal with the given ID.
func (c *PortalCatalog) ByID(id uint32) (*PortalDefinition, bool) {
	subZoneID, ok := c.idIndex[id]
	if !ok {
		return nil, false
	}
	return c.BySubZone(subZoneID)
}

// Len returns number of portals.
func (c *PortalCatalog) Len() int {
	return len(c.bySubZone)
}

// All returns all definitions sorted by ID.
func (c *PortalCatalog) All() []*PortalDefinition {
	out := make([]*PortalDefinition, 0, len(c.bySubZone))
	for _, d := range c.bySubZone {
		out = append(out, d)
	}
	slices.SortFunc(out, func(a, b *PortalDefinition) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// CompileCatalogSchema compiles the catalog JSON schema.
// Empty path selects the built-in schema.
func CompileCatalogSchema(path string) (*jsonschema.Schema, error) {
	if path == "" {
		s, err := jsonschema.CompileString("portal_catalog.schema.json", portalCatalogSchema)
		if err != nil {
			return nil, oops.Code("portal_schema_invalid").Wrapf(err, "compiling built-in portal schema")
		}
		return s, nil
	}
	s, err := jsonschema.Compile(path)
	if err != nil {
		return nil, oops.Code("portal_schema_invalid").With("path", path).Wrapf(err, "compiling portal schema")
	}
	return s, nil
}

// LoadPortalCatalog reads and validates the catalog file.
// Empty schemaPath selects the built-in schema.
func LoadPortalCatalog(path, schemaPath string) (*PortalCatalog, error) {
	schema, err := CompileCatalogSchema(schemaPath)
	if err != nil {
		return nil, err
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, oops.Code("portal_catalog_missing").With("path", path).Wrapf(err, "reading portal catalog")
	}

	catalog, err := ParsePortalCatalog(contents, schema)
	if err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}

	slog.Info("loaded district portals", "count", catalog.Len(), "path", path)
	return catalog, nil
}

// ParsePortalCatalog builds a catalog from JSON. schema may be nil.
func ParsePortalCatalog(contents []byte, schema *jsonschema.Schema) (*PortalCatalog, error) {
	if len(bytes.TrimSpace(contents)) == 0 {
		return nil, oops.Code("portal_catalog_empty").Wrap(ErrCatalogEmpty)
	}

	if schema != nil {
		var doc any
		if err := json.Unmarshal(contents, &doc); err != nil {
			return nil, oops.Code("portal_catalog_malformed").Wrapf(err, "parsing portal catalog")
		}
		if err := schema.Validate(doc); err != nil {
			return nil, oops.Code("portal_catalog_invalid").Wrapf(err, "validating portal catalog")
		}
	}

	var defs []PortalDefinition
	if err := json.Unmarshal(contents, &defs); err != nil {
		return nil, oops.Code("portal_catalog_malformed").Wrapf(err, "parsing portal catalog")
	}
	return NewPortalCatalog(defs)
}

// NewPortalCatalog indexes definitions by sub-zone and by ID.
// Fails on an empty list, duplicate IDs, duplicate sub-zones or out of range rotation.
func NewPortalCatalog(defs []PortalDefinition) (*PortalCatalog, error) {
	if len(defs) == 0 {
		return nil, oops.Code("portal_catalog_empty").Wrap(ErrCatalogEmpty)
	}

	c := &PortalCatalog{
		bySubZone: make(map[uint32]*PortalDefinition, len(defs)),
		idIndex:   make(map[uint32]uint32, len(defs)),
	}
	for i := range defs {
		d := defs[i]
		if d.ZRot < math.MinInt16 || d.ZRot > math.MaxInt16 {
			return nil, oops.Code("portal_catalog_invalid").
				With("id", d.ID).
				With("zrot", d.ZRot).
				Errorf("portal rotation out of range")
		}
		if _, dup := c.idIndex[d.ID]; dup {
			return nil, oops.Code("portal_catalog_duplicate").With("id", d.ID).Wrap(ErrDuplicatePortal)
		}
		if _, dup := c.bySubZone[d.SubZoneID]; dup {
			return nil, oops.Code("portal_catalog_duplicate").With("sub_zone_id", d.SubZoneID).Wrap(ErrDuplicatePortal)
		}
		c.bySubZone[d.SubZoneID] = &d
		c.idIndex[d.ID] = d.SubZoneID
	}
	return c, nil
}
