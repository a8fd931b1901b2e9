// Package meshkern implements the geom.Kernel interface using the
// github.com/unixpickle/model3d mesh/solid library. It is the only
// backend with mesh import, so it is the one the splitting pipeline
// uses for real model files.
package meshkern

import (
	"fmt"
	"math"

	"github.com/unixpickle/model3d/model3d"

	"github.com/printforge/stlsplit/pkg/geom"
)

// Compile-time interface check.
var _ geom.Kernel = (*MeshKernel)(nil)

// defaultMeshCells controls marching cubes resolution when a solid has
// no explicit mesh: the longest bounding box edge is divided into this
// many cells.
const defaultMeshCells = 200

// marchingCubesIters is the per-vertex binary search depth used to
// snap marching cubes vertices onto the solid surface.
const marchingCubesIters = 8

// meshSolid wraps a model3d.Solid and implements geom.Solid. Solids
// created from an imported mesh keep the mesh so that ToMesh can
// return the exact triangles instead of a re-meshed surface.
type meshSolid struct {
	mesh  *model3d.Mesh // nil for analytic solids (boxes, booleans)
	solid model3d.Solid
}

// BoundingBox returns the axis-aligned bounding box.
func (s *meshSolid) BoundingBox() (min, max [3]float64) {
	lo := s.solid.Min()
	hi := s.solid.Max()
	min = [3]float64{lo.X, lo.Y, lo.Z}
	max = [3]float64{hi.X, hi.Y, hi.Z}
	return min, max
}

// MeshKernel implements geom.Kernel using model3d.
type MeshKernel struct{}

// New returns a new MeshKernel.
func New() *MeshKernel {
	return &MeshKernel{}
}

// unwrap extracts the underlying model3d.Solid from a geom.Solid.
func unwrap(s geom.Solid) model3d.Solid {
	return s.(*meshSolid).solid
}

// wrap creates a geom.Solid from an analytic model3d.Solid.
func wrap(s model3d.Solid) geom.Solid {
	return &meshSolid{solid: s}
}

// wrapMesh creates a mesh-backed geom.Solid. Inside tests are served
// by a BVH collider built over the triangles.
func wrapMesh(m *model3d.Mesh) geom.Solid {
	return &meshSolid{
		mesh:  m,
		solid: model3d.NewColliderSolid(model3d.MeshToCollider(m)),
	}
}

// Box creates an axis-aligned box with the given dimensions, centered
// at the origin.
func (k *MeshKernel) Box(x, y, z float64) geom.Solid {
	return wrap(&model3d.Rect{
		MinVal: model3d.XYZ(-x/2, -y/2, -z/2),
		MaxVal: model3d.XYZ(x/2, y/2, z/2),
	})
}

// Union returns the union of two solids.
func (k *MeshKernel) Union(a, b geom.Solid) geom.Solid {
	return wrap(model3d.JoinedSolid{unwrap(a), unwrap(b)})
}

// Intersection returns the intersection of two solids.
func (k *MeshKernel) Intersection(a, b geom.Solid) geom.Solid {
	return wrap(model3d.IntersectedSolid{unwrap(a), unwrap(b)})
}

// Translate moves a solid by (x, y, z).
func (k *MeshKernel) Translate(s geom.Solid, x, y, z float64) geom.Solid {
	t := &model3d.Translate{Offset: model3d.XYZ(x, y, z)}
	ms := s.(*meshSolid)
	if ms.mesh != nil {
		return wrapMesh(ms.mesh.MapCoords(t.Apply))
	}
	return wrap(model3d.TransformSolid(t, ms.solid))
}

// Rotate rotates a solid by Euler angles (degrees) around the X, Y and
// Z axes, applied in that order. Mesh-backed solids are rotated by
// transforming their vertices, so the operation is exact.
func (k *MeshKernel) Rotate(s geom.Solid, x, y, z float64) geom.Solid {
	rotations := []struct {
		axis  model3d.Coord3D
		theta float64
	}{
		{model3d.X(1), x * math.Pi / 180.0},
		{model3d.Y(1), y * math.Pi / 180.0},
		{model3d.Z(1), z * math.Pi / 180.0},
	}

	ms := s.(*meshSolid)
	if ms.mesh != nil {
		m := ms.mesh
		for _, r := range rotations {
			if r.theta == 0 {
				continue
			}
			m = m.MapCoords(model3d.Rotation(r.axis, r.theta).Apply)
		}
		if m == ms.mesh {
			return s
		}
		return wrapMesh(m)
	}

	solid := ms.solid
	for _, r := range rotations {
		if r.theta == 0 {
			continue
		}
		solid = model3d.TransformSolid(model3d.Rotation(r.axis, r.theta), solid)
	}
	return wrap(solid)
}

// FromMesh builds a solid from a closed triangle mesh. It rejects
// meshes that do not enclose a volume: empty meshes, meshes with open
// boundaries, and meshes with singular vertices.
func (k *MeshKernel) FromMesh(m *geom.TriMesh) (geom.Solid, error) {
	if m.IsEmpty() {
		return nil, fmt.Errorf("%w: mesh has no triangles", geom.ErrInvalidMesh)
	}

	mesh := model3d.NewMesh()
	for _, tri := range m.Triangles {
		mesh.Add(&model3d.Triangle{
			model3d.XYZ(tri[0].X, tri[0].Y, tri[0].Z),
			model3d.XYZ(tri[1].X, tri[1].Y, tri[1].Z),
			model3d.XYZ(tri[2].X, tri[2].Y, tri[2].Z),
		})
	}
	if mesh.NeedsRepair() {
		return nil, fmt.Errorf("%w: mesh has open boundaries", geom.ErrInvalidMesh)
	}
	if len(mesh.SingularVertices()) > 0 {
		return nil, fmt.Errorf("%w: mesh has singular vertices", geom.ErrInvalidMesh)
	}
	return wrapMesh(mesh), nil
}

// ToMesh converts a solid to a triangle mesh. Mesh-backed solids
// return their exact triangles; analytic solids (boolean results) are
// surfaced with marching cubes. An empty solid yields an empty mesh.
func (k *MeshKernel) ToMesh(s geom.Solid) (*geom.TriMesh, error) {
	ms := s.(*meshSolid)
	if ms.mesh != nil {
		return fromModel3d(ms.mesh), nil
	}

	lo := ms.solid.Min()
	hi := ms.solid.Max()
	size := hi.Sub(lo)
	if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
		// Degenerate or inverted bounds: nothing to mesh. Boolean
		// results of disjoint solids end up here.
		return &geom.TriMesh{}, nil
	}
	maxDim := math.Max(size.X, math.Max(size.Y, size.Z))

	mesh := model3d.MarchingCubesSearch(ms.solid, maxDim/defaultMeshCells, marchingCubesIters)
	return fromModel3d(mesh), nil
}

// fromModel3d converts a model3d mesh to the interchange TriMesh.
func fromModel3d(m *model3d.Mesh) *geom.TriMesh {
	tris := m.TriangleSlice()
	out := &geom.TriMesh{Triangles: make([]geom.Triangle, 0, len(tris))}
	for _, t := range tris {
		out.Triangles = append(out.Triangles, geom.Triangle{
			geom.Vec{X: t[0].X, Y: t[0].Y, Z: t[0].Z},
			geom.Vec{X: t[1].X, Y: t[1].Y, Z: t[1].Z},
			geom.Vec{X: t[2].X, Y: t[2].Y, Z: t[2].Z},
		})
	}
	return out
}
