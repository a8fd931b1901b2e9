package meshkern

import (
	"errors"
	"math"
	"testing"

	"github.com/printforge/stlsplit/pkg/geom"
)

func TestBoxBoundingBox(t *testing.T) {
	k := New()
	box := k.Box(100, 50, 25)
	min, max := box.BoundingBox()
	want := [3]float64{50, 25, 12.5}
	for i := 0; i < 3; i++ {
		if min[i] != -want[i] || max[i] != want[i] {
			t.Errorf("axis %d: range [%v,%v], want [%v,%v]", i, min[i], max[i], -want[i], want[i])
		}
	}
}

func TestFromMeshBox(t *testing.T) {
	k := New()
	in := geom.BoxMesh(geom.Vec{}, geom.Vec{X: 20, Y: 10, Z: 5})

	solid, err := k.FromMesh(in)
	if err != nil {
		t.Fatalf("FromMesh error: %v", err)
	}

	min, max := solid.BoundingBox()
	if min != [3]float64{0, 0, 0} || max != [3]float64{20, 10, 5} {
		t.Errorf("BoundingBox = %v, %v", min, max)
	}

	// A mesh-backed solid keeps its exact triangles.
	out, err := k.ToMesh(solid)
	if err != nil {
		t.Fatalf("ToMesh error: %v", err)
	}
	if out.TriangleCount() != 12 {
		t.Errorf("TriangleCount = %d, want 12", out.TriangleCount())
	}
}

func TestFromMeshRejectsEmpty(t *testing.T) {
	_, err := New().FromMesh(&geom.TriMesh{})
	if !errors.Is(err, geom.ErrInvalidMesh) {
		t.Fatalf("error = %v, want ErrInvalidMesh", err)
	}
}

func TestFromMeshRejectsOpenMesh(t *testing.T) {
	in := geom.BoxMesh(geom.Vec{}, geom.Vec{X: 10, Y: 10, Z: 10})
	in.Triangles = in.Triangles[:len(in.Triangles)-1] // punch a hole

	_, err := New().FromMesh(in)
	if !errors.Is(err, geom.ErrInvalidMesh) {
		t.Fatalf("error = %v, want ErrInvalidMesh", err)
	}
}

func TestRotateFlipIsIdempotent(t *testing.T) {
	k := New()
	in := geom.BoxMesh(geom.Vec{X: 1, Y: 2, Z: 3}, geom.Vec{X: 4, Y: 6, Z: 8})

	solid, err := k.FromMesh(in)
	if err != nil {
		t.Fatalf("FromMesh error: %v", err)
	}

	flipped := k.Rotate(solid, 180, 0, 0)
	fMin, fMax := flipped.BoundingBox()
	// 180° about X mirrors Y and Z.
	assertClose(t, "flipped min", fMin, [3]float64{1, -6, -8})
	assertClose(t, "flipped max", fMax, [3]float64{4, -2, -3})

	restored := k.Rotate(flipped, 180, 0, 0)
	rMin, rMax := restored.BoundingBox()
	assertClose(t, "restored min", rMin, [3]float64{1, 2, 3})
	assertClose(t, "restored max", rMax, [3]float64{4, 6, 8})

	mesh, err := k.ToMesh(restored)
	if err != nil {
		t.Fatalf("ToMesh error: %v", err)
	}
	if mesh.TriangleCount() != in.TriangleCount() {
		t.Errorf("TriangleCount = %d, want %d", mesh.TriangleCount(), in.TriangleCount())
	}
	if dv := math.Abs(mesh.Volume() - in.Volume()); dv > 1e-9 {
		t.Errorf("volume drifted by %v after double flip", dv)
	}
}

func TestIntersectionOverlappingBoxes(t *testing.T) {
	k := New()
	a := k.Box(2, 2, 2)
	b := k.Translate(k.Box(2, 2, 2), 1, 0, 0)

	section := k.Intersection(a, b)
	mesh, err := k.ToMesh(section)
	if err != nil {
		t.Fatalf("ToMesh error: %v", err)
	}
	if mesh.IsEmpty() {
		t.Fatal("intersection mesh is empty")
	}

	// The overlap is x in [0,1], y,z in [-1,1]. Marching cubes is
	// approximate, so allow a loose tolerance.
	min, max := mesh.Bounds()
	const tol = 0.05
	if math.Abs(min.X-0) > tol || math.Abs(max.X-1) > tol {
		t.Errorf("x range [%v,%v], want about [0,1]", min.X, max.X)
	}
	if math.Abs(min.Y+1) > tol || math.Abs(max.Y-1) > tol {
		t.Errorf("y range [%v,%v], want about [-1,1]", min.Y, max.Y)
	}
}

func TestIntersectionDisjointIsEmpty(t *testing.T) {
	k := New()
	a := k.Box(2, 2, 2)
	b := k.Translate(k.Box(2, 2, 2), 10, 0, 0)

	mesh, err := k.ToMesh(k.Intersection(a, b))
	if err != nil {
		t.Fatalf("ToMesh error: %v", err)
	}
	if !mesh.IsEmpty() {
		t.Errorf("disjoint intersection produced %d triangles", mesh.TriangleCount())
	}
}

func TestUnionBounds(t *testing.T) {
	k := New()
	a := k.Box(2, 2, 2)
	b := k.Translate(k.Box(2, 2, 2), 3, 0, 0)

	min, max := k.Union(a, b).BoundingBox()
	if min[0] != -1 || max[0] != 4 {
		t.Errorf("union x range [%v,%v], want [-1,4]", min[0], max[0])
	}
}

func assertClose(t *testing.T, label string, got, want [3]float64) {
	t.Helper()
	for i := 0; i < 3; i++ {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Errorf("%s[%d] = %v, want %v", label, i, got[i], want[i])
			return
		}
	}
}
