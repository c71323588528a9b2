package model

import "testing"

func TestLocation_WithRotation(t *testing.T) {
	loc := NewLocation(10, 20, 30, 179)
	rotated := loc.WithRotation(-64)

	if loc.RotationZ != 0 {
		t.Errorf("original RotationZ = %d, want 0 (immutable)", loc.RotationZ)
	}
	if rotated.RotationZ != -64 {
		t.Errorf("RotationZ = %d, want -64", rotated.RotationZ)
	}
	if rotated.ZoneID != 179 {
		t.Errorf("ZoneID = %d, want 179", rotated.ZoneID)
	}
}

func TestLocation_WithCoordinates(t *testing.T) {
	loc := NewLocation(1, 2, 3, 5).WithRotation(12)
	moved := loc.WithCoordinates(4, 5, 6)

	if moved.X != 4 || moved.Y != 5 || moved.Z != 6 {
		t.Errorf("coords = (%v,%v,%v), want (4,5,6)", moved.X, moved.Y, moved.Z)
	}
	if moved.RotationZ != 12 || moved.ZoneID != 5 {
		t.Errorf("rotation/zone lost: %+v", moved)
	}
}

func TestLocation_Distance(t *testing.T) {
	a := NewLocation(0, 0, 0, 1)
	b := NewLocation(3, 4, 0, 1)

	if got := a.DistanceSquared(b); got != 25 {
		t.Errorf("DistanceSquared = %v, want 25", got)
	}
	if got := a.Distance(b); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}
