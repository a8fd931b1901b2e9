// Package geom defines the abstract geometry kernel interface.
// Implementations (meshkern, sdfxkern, manifoldkern) provide solid
// modeling and boolean operations behind this interface. The kernel
// abstraction allows swapping backends without changing the rest of
// the system.
package geom

import "errors"

// Sentinel errors shared by all kernel backends.
var (
	// ErrInvalidMesh reports that input triangles do not form a single
	// closed volumetric solid (open boundaries, singular vertices, or
	// no geometry at all).
	ErrInvalidMesh = errors.New("not a closed volumetric mesh")

	// ErrMeshImport reports that a backend has no mesh import capability.
	ErrMeshImport = errors.New("mesh import not supported by this kernel")
)

// Solid is an opaque handle to a geometry kernel solid.
// Implementations wrap their internal representation.
type Solid interface {
	// BoundingBox returns the axis-aligned bounding box.
	BoundingBox() (min, max [3]float64)
}

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Box creates an axis-aligned box with the given dimensions,
	// centered at the origin.
	Box(x, y, z float64) Solid

	// Boolean operations
	Union(a, b Solid) Solid
	Intersection(a, b Solid) Solid

	// Transforms
	Translate(s Solid, x, y, z float64) Solid
	Rotate(s Solid, x, y, z float64) Solid // Euler angles in degrees

	// FromMesh builds a solid from a closed triangle mesh. Backends
	// without mesh import return ErrMeshImport; backends with import
	// return ErrInvalidMesh when the triangles do not enclose a volume.
	FromMesh(m *TriMesh) (Solid, error)

	// ToMesh converts a solid to a triangle mesh. An empty solid
	// yields an empty mesh, not an error.
	ToMesh(s Solid) (*TriMesh, error)
}
