// Package sdfxkern implements the geom.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library. SDFs have no general
// mesh import, so this backend serves programmatically constructed
// solids: calibration boxes and kernel-agnostic pipeline tests.
package sdfxkern

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/printforge/stlsplit/pkg/geom"
)

// Compile-time interface check.
var _ geom.Kernel = (*SdfxKernel)(nil)

// defaultMeshCells controls marching cubes tessellation resolution.
const defaultMeshCells = 200

// sdfxSolid wraps an sdf.SDF3 to implement geom.Solid.
type sdfxSolid struct {
	s sdf.SDF3
}

// BoundingBox returns the axis-aligned bounding box.
func (s *sdfxSolid) BoundingBox() (min, max [3]float64) {
	bb := s.s.BoundingBox()
	min = [3]float64{bb.Min.X, bb.Min.Y, bb.Min.Z}
	max = [3]float64{bb.Max.X, bb.Max.Y, bb.Max.Z}
	return min, max
}

// SdfxKernel implements geom.Kernel using sdfx.
type SdfxKernel struct{}

// New returns a new SdfxKernel.
func New() *SdfxKernel {
	return &SdfxKernel{}
}

// unwrap extracts the underlying sdf.SDF3 from a geom.Solid.
func unwrap(s geom.Solid) sdf.SDF3 {
	return s.(*sdfxSolid).s
}

// wrap creates a geom.Solid from an sdf.SDF3.
func wrap(s sdf.SDF3) geom.Solid {
	return &sdfxSolid{s: s}
}

// Box creates a box with the given dimensions, centered at the origin.
func (k *SdfxKernel) Box(x, y, z float64) geom.Solid {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		panic(fmt.Sprintf("sdfx.Box3D: %v", err))
	}
	return wrap(s)
}

// Union returns the union of two solids.
func (k *SdfxKernel) Union(a, b geom.Solid) geom.Solid {
	return wrap(sdf.Union3D(unwrap(a), unwrap(b)))
}

// Intersection returns the intersection of two solids.
func (k *SdfxKernel) Intersection(a, b geom.Solid) geom.Solid {
	return wrap(sdf.Intersect3D(unwrap(a), unwrap(b)))
}

// Translate moves a solid by (x, y, z).
func (k *SdfxKernel) Translate(s geom.Solid, x, y, z float64) geom.Solid {
	m := sdf.Translate3d(v3.Vec{X: x, Y: y, Z: z})
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// Rotate rotates a solid by Euler angles (degrees) around X, Y, Z axes.
func (k *SdfxKernel) Rotate(s geom.Solid, x, y, z float64) geom.Solid {
	xRad := x * math.Pi / 180.0
	yRad := y * math.Pi / 180.0
	zRad := z * math.Pi / 180.0

	m := sdf.RotateZ(zRad).Mul(sdf.RotateY(yRad)).Mul(sdf.RotateX(xRad))
	return wrap(sdf.Transform3D(unwrap(s), m))
}

// FromMesh is unsupported: there is no robust triangle-mesh to SDF
// conversion in this backend.
func (k *SdfxKernel) FromMesh(m *geom.TriMesh) (geom.Solid, error) {
	return nil, geom.ErrMeshImport
}

// ToMesh converts a solid to a triangle mesh using marching cubes.
// A solid with inverted bounds (an empty boolean result) yields an
// empty mesh.
func (k *SdfxKernel) ToMesh(s geom.Solid) (*geom.TriMesh, error) {
	sdf3 := unwrap(s)

	bb := sdf3.BoundingBox()
	size := bb.Max.Sub(bb.Min)
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		return &geom.TriMesh{}, nil
	}

	renderer := render.NewMarchingCubesUniform(defaultMeshCells)
	triangles := render.ToTriangles(sdf3, renderer)

	out := &geom.TriMesh{Triangles: make([]geom.Triangle, 0, len(triangles))}
	for _, tri := range triangles {
		out.Triangles = append(out.Triangles, geom.Triangle{
			geom.Vec{X: tri[0].X, Y: tri[0].Y, Z: tri[0].Z},
			geom.Vec{X: tri[1].X, Y: tri[1].Y, Z: tri[1].Z},
			geom.Vec{X: tri[2].X, Y: tri[2].Y, Z: tri[2].Z},
		})
	}
	return out, nil
}
