package constants

// ObjectID ranges.
//
// IDs are allocated by world.ObjectIDGenerator and never reused while the
// object is alive.
//
//	0x00000000            invalid
//	0x10000000-0x1FFFFFFF players
//	0x20000000-0x2FFFFFFF NPC units (portals included)
//	0x30000000-0x3FFFFFFF doodads
//	0x40000000-0x4FFFFFFF inventory items
const (
	ObjectIDPlayerStart uint32 = 0x10000000
	ObjectIDPlayerEnd   uint32 = 0x1FFFFFFF
	ObjectIDNpcStart    uint32 = 0x20000000
	ObjectIDNpcEnd      uint32 = 0x2FFFFFFF
	ObjectIDDoodadStart uint32 = 0x30000000
	ObjectIDDoodadEnd   uint32 = 0x3FFFFFFF
	ObjectIDItemStart   uint32 = 0x40000000
	ObjectIDItemEnd     uint32 = 0x4FFFFFFF
)

// IsPlayerObjectID returns true if objectID is in Player range.
func IsPlayerObjectID(objectID uint32) bool {
	return objectID >= ObjectIDPlayerStart && objectID <= ObjectIDPlayerEnd
}

// IsNpcObjectID returns true if objectID is in NPC range.
func IsNpcObjectID(objectID uint32) bool {
	return objectID >= ObjectIDNpcStart && objectID <= ObjectIDNpcEnd
}

// IsDoodadObjectID returns true if objectID is in Doodad range.
func IsDoodadObjectID(objectID uint32) bool {
	return objectID >= ObjectIDDoodadStart && objectID <= ObjectIDDoodadEnd
}
