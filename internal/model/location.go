package model

import "math"

// Location представляет координаты в игровом мире.
// Value type, передаётся по значению (immutable).
type Location struct {
	X         float32
	Y         float32
	Z         float32
	ZoneID    uint32
	RotationZ int8 // engine rotation unit, see data.ConvertRotation
}

// NewLocation создаёт Location с указанными координатами.
func NewLocation(x, y, z float32, zoneID uint32) Location {
	return Location{X: x, Y: y, Z: z, ZoneID: zoneID}
}

// WithRotation возвращает новый Location с обновлённым направлением (immutable pattern).
func (l Location) WithRotation(rot int8) Location {
	l.RotationZ = rot
	return l
}

// WithCoordinates возвращает новый Location с обновлёнными координатами (immutable pattern).
func (l Location) WithCoordinates(x, y, z float32) Location {
	l.X = x
	l.Y = y
	l.Z = z
	return l
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt для производительности).
func (l Location) DistanceSquared(other Location) float64 {
	dx := float64(l.X - other.X)
	dy := float64(l.Y - other.Y)
	dz := float64(l.Z - other.Z)
	return dx*dx + dy*dy + dz*dz
}

// Distance returns euclidean distance to other.
func (l Location) Distance(other Location) float64 {
	return math.Sqrt(l.DistanceSquared(other))
}
