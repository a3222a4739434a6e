package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-manylight-renderer/pkg/core"
)

func TestQuad_Hit(t *testing.T) {
	// Unit quad in the XZ plane at y=0, normal +Y
	quad := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 0), nil)
	if quad.Normal.Subtract(core.NewVec3(0, 1, 0)).Length() > 1e-12 {
		t.Fatalf("Expected +Y normal, got %v", quad.Normal)
	}

	tests := []struct {
		name   string
		origin core.Vec3
		dir    core.Vec3
		hit    bool
		front  bool
	}{
		{"from above", core.NewVec3(0.5, 1, 0.5), core.NewVec3(0, -1, 0), true, true},
		{"from below", core.NewVec3(0.5, -1, 0.5), core.NewVec3(0, 1, 0), true, false},
		{"outside edge", core.NewVec3(1.5, 1, 0.5), core.NewVec3(0, -1, 0), false, false},
		{"parallel", core.NewVec3(0.5, 1, 0.5), core.NewVec3(1, 0, 0), false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			si, ok := quad.Hit(core.NewRay(tt.origin, tt.dir), 0.001, 100)
			if ok != tt.hit {
				t.Fatalf("Expected hit=%t, got %t", tt.hit, ok)
			}
			if !ok {
				return
			}
			if math.Abs(si.T-1) > 1e-9 {
				t.Errorf("Expected t=1, got %f", si.T)
			}
			if si.FrontFace != tt.front {
				t.Errorf("Expected FrontFace=%t, got %t", tt.front, si.FrontFace)
			}
		})
	}
}

func TestQuad_AreaAndBoundingBox(t *testing.T) {
	quad := NewQuad(core.NewVec3(0, 2, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 3), nil)
	if math.Abs(quad.Area()-6) > 1e-12 {
		t.Errorf("Expected area 6, got %f", quad.Area())
	}

	box := quad.BoundingBox()
	if box.Max.Y-box.Min.Y <= 0 {
		t.Error("Flat axis of a quad bounding box should be padded")
	}
	if box.Min.X != 0 || box.Max.X != 2 || box.Min.Z != 0 || box.Max.Z != 3 {
		t.Errorf("Unexpected bounding box %v", box)
	}
}

func TestBox_FacesPointOutward(t *testing.T) {
	box := NewBox(core.NewVec3(1, 1, 1), core.NewVec3(0.5, 1, 0.25), 0.3, nil)
	faces := box.Faces()
	if len(faces) != 6 {
		t.Fatalf("Expected 6 faces, got %d", len(faces))
	}

	for i, face := range faces {
		q := face.(*Quad)
		faceCenter := q.PointAt(0.5, 0.5)
		outward := faceCenter.Subtract(box.Center)
		if q.Normal.Dot(outward) <= 0 {
			t.Errorf("Face %d normal %v does not point away from the center", i, q.Normal)
		}
	}
}
