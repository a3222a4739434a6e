package core

import (
	"math"
	"testing"
)

func TestVec3_Normalize(t *testing.T) {
	v := NewVec3(3, 4, 0).Normalize()
	if math.Abs(v.Length()-1) > 1e-12 {
		t.Errorf("Expected unit length, got %f", v.Length())
	}

	zero := Vec3{}.Normalize()
	if !zero.IsZero() {
		t.Errorf("Normalizing zero vector should stay zero, got %v", zero)
	}
}

func TestVec3_Component(t *testing.T) {
	v := NewVec3(1, 2, 3)
	for i, want := range []float64{1, 2, 3} {
		if got := v.Component(i); got != want {
			t.Errorf("Component(%d) = %f, expected %f", i, got, want)
		}
	}
	if v.MaxComponent() != 3 {
		t.Errorf("MaxComponent = %f, expected 3", v.MaxComponent())
	}
	if v.Sum() != 6 {
		t.Errorf("Sum = %f, expected 6", v.Sum())
	}
}

func TestAABB_ExtendAndAxis(t *testing.T) {
	box := EmptyAABB()
	if !box.IsEmpty() {
		t.Fatal("EmptyAABB should be empty")
	}
	if box.Size() != (Vec3{}) {
		t.Errorf("Empty box size should be zero, got %v", box.Size())
	}

	box = NewAABBFromPoints(NewVec3(0, 0, 0), NewVec3(1, 5, 2))
	if box.LongestAxis() != 1 {
		t.Errorf("Expected longest axis Y, got %d", box.LongestAxis())
	}
	if got := box.Center(); got != NewVec3(0.5, 2.5, 1) {
		t.Errorf("Center = %v", got)
	}

	ray := NewRay(NewVec3(0.5, -1, 1), NewVec3(0, 1, 0))
	if !box.Hit(ray, 0, 100) {
		t.Error("Ray through the box should hit")
	}
	miss := NewRay(NewVec3(5, -1, 1), NewVec3(0, 1, 0))
	if box.Hit(miss, 0, 100) {
		t.Error("Parallel ray outside the slab should miss")
	}
}
