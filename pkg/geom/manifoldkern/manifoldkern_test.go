//go:build manifold

package manifoldkern

import (
	"math"
	"testing"

	"github.com/printforge/stlsplit/pkg/geom"
)

func mustNew(t *testing.T) geom.Kernel {
	t.Helper()
	k, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return k
}

func wantBounds(t *testing.T, s geom.Solid, wantMin, wantMax [3]float64) {
	t.Helper()
	min, max := s.BoundingBox()
	for i := 0; i < 3; i++ {
		if math.Abs(min[i]-wantMin[i]) > 1e-6 {
			t.Errorf("min[%d] = %f, want %f", i, min[i], wantMin[i])
		}
		if math.Abs(max[i]-wantMax[i]) > 1e-6 {
			t.Errorf("max[%d] = %f, want %f", i, max[i], wantMax[i])
		}
	}
}

func TestBox(t *testing.T) {
	k := mustNew(t)
	s := k.Box(10, 20, 30)
	if s == nil {
		t.Fatal("Box() returned nil")
	}
	// Box is centered, so bounds should be symmetric.
	wantBounds(t, s, [3]float64{-5, -10, -15}, [3]float64{5, 10, 15})
}

func TestTranslate(t *testing.T) {
	k := mustNew(t)
	moved := k.Translate(k.Box(10, 10, 10), 100, 200, 300)
	if moved == nil {
		t.Fatal("Translate() returned nil")
	}
	wantBounds(t, moved, [3]float64{95, 195, 295}, [3]float64{105, 205, 305})
}

func TestRotateFlip(t *testing.T) {
	k := mustNew(t)
	box := k.Translate(k.Box(10, 10, 10), 0, 20, 0)
	flipped := k.Rotate(box, 180, 0, 0)

	// Y extent [15, 25] mirrors to [-25, -15]; X is unchanged.
	wantBounds(t, flipped, [3]float64{-5, -25, -5}, [3]float64{5, -15, 5})
}

func TestIntersection(t *testing.T) {
	k := mustNew(t)
	a := k.Box(20, 20, 20)
	b := k.Translate(k.Box(20, 20, 20), 10, 0, 0)
	s := k.Intersection(a, b)
	if s == nil {
		t.Fatal("Intersection() returned nil")
	}
	wantBounds(t, s, [3]float64{0, -10, -10}, [3]float64{10, 10, 10})
}

func TestUnion(t *testing.T) {
	k := mustNew(t)
	a := k.Box(10, 10, 10)
	b := k.Translate(k.Box(10, 10, 10), 10, 0, 0)
	s := k.Union(a, b)
	if s == nil {
		t.Fatal("Union() returned nil")
	}
	wantBounds(t, s, [3]float64{-5, -5, -5}, [3]float64{15, 5, 5})
}

func TestToMesh(t *testing.T) {
	k := mustNew(t)
	mesh, err := k.ToMesh(k.Box(10, 10, 10))
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("ToMesh() returned empty mesh for a box")
	}
	// A box has 12 triangles (2 per face, 6 faces); manifold keeps the
	// triangle structure exact.
	if mesh.TriangleCount() != 12 {
		t.Errorf("ToMesh() triangle count = %d, want 12", mesh.TriangleCount())
	}
}

func TestFromMeshRoundTrip(t *testing.T) {
	k := mustNew(t)
	s, err := k.FromMesh(geom.BoxMesh(geom.Vec{}, geom.Vec{X: 10, Y: 20, Z: 30}))
	if err != nil {
		t.Fatalf("FromMesh() error = %v", err)
	}
	wantBounds(t, s, [3]float64{0, 0, 0}, [3]float64{10, 20, 30})

	mesh, err := k.ToMesh(s)
	if err != nil {
		t.Fatalf("ToMesh() error = %v", err)
	}
	if mesh.TriangleCount() != 12 {
		t.Errorf("round trip triangle count = %d, want 12", mesh.TriangleCount())
	}
}

func TestFromMeshRejectsOpenMesh(t *testing.T) {
	k := mustNew(t)
	open := geom.BoxMesh(geom.Vec{}, geom.Vec{X: 10, Y: 10, Z: 10})
	open.Triangles = open.Triangles[:len(open.Triangles)-1]

	if _, err := k.FromMesh(open); err == nil {
		t.Fatal("FromMesh() accepted an open mesh")
	}
}
