//go:build manifold

// Package manifoldkern provides a CGo-based geometry kernel binding to
// the Manifold library (https://github.com/elalish/manifold). Manifold
// computes exact, guaranteed-manifold mesh booleans, so fragments keep
// their triangle structure instead of being re-meshed.
//
// This package requires the Manifold C library (manifoldc) to be
// installed. Build with: go build -tags=manifold
package manifoldkern

/*
#cgo CFLAGS: -I/usr/local/include
#cgo LDFLAGS: -L/usr/local/lib -lmanifoldc

#include <stdlib.h>
#include <manifold/manifoldc.h>
*/
import "C"

import (
	"fmt"
	"runtime"
	"unsafe"

	"github.com/printforge/stlsplit/pkg/geom"
)

// Compile-time interface checks.
var _ geom.Kernel = (*ManifoldKernel)(nil)
var _ geom.Solid = (*manifoldSolid)(nil)

// manifoldSolid wraps a C ManifoldManifold pointer and implements geom.Solid.
type manifoldSolid struct {
	ptr *C.ManifoldManifold
}

// BoundingBox returns the axis-aligned bounding box of the solid.
func (s *manifoldSolid) BoundingBox() (min, max [3]float64) {
	alloc := C.manifold_alloc_box()
	bbox := C.manifold_bounding_box(alloc, s.ptr)
	defer C.manifold_delete_box(bbox)

	min[0] = float64(C.manifold_box_min_x(bbox))
	min[1] = float64(C.manifold_box_min_y(bbox))
	min[2] = float64(C.manifold_box_min_z(bbox))
	max[0] = float64(C.manifold_box_max_x(bbox))
	max[1] = float64(C.manifold_box_max_y(bbox))
	max[2] = float64(C.manifold_box_max_z(bbox))
	return min, max
}

// newSolid wraps a C ManifoldManifold pointer with a Go-side finalizer
// for automatic memory management.
func newSolid(ptr *C.ManifoldManifold) *manifoldSolid {
	s := &manifoldSolid{ptr: ptr}
	runtime.SetFinalizer(s, func(s *manifoldSolid) {
		if s.ptr != nil {
			C.manifold_delete_manifold(s.ptr)
			s.ptr = nil
		}
	})
	return s
}

// ManifoldKernel implements geom.Kernel using the Manifold C library.
type ManifoldKernel struct{}

// New creates a new ManifoldKernel. Returns an error if the Manifold
// C library cannot be initialized.
func New() (geom.Kernel, error) {
	return &ManifoldKernel{}, nil
}

// Box creates an axis-aligned box with the given dimensions, centered
// at the origin.
func (k *ManifoldKernel) Box(x, y, z float64) geom.Solid {
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_cube(alloc,
		C.double(x), C.double(y), C.double(z),
		C.int(1), // center=true
	)
	return newSolid(ptr)
}

// Union returns the boolean union of two solids.
func (k *ManifoldKernel) Union(a, b geom.Solid) geom.Solid {
	sa := a.(*manifoldSolid)
	sb := b.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_union(alloc, sa.ptr, sb.ptr)
	return newSolid(ptr)
}

// Intersection returns the boolean intersection of two solids.
func (k *ManifoldKernel) Intersection(a, b geom.Solid) geom.Solid {
	sa := a.(*manifoldSolid)
	sb := b.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_intersection(alloc, sa.ptr, sb.ptr)
	return newSolid(ptr)
}

// Translate moves the solid by (x, y, z).
func (k *ManifoldKernel) Translate(s geom.Solid, x, y, z float64) geom.Solid {
	ms := s.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_translate(alloc, ms.ptr,
		C.double(x), C.double(y), C.double(z),
	)
	return newSolid(ptr)
}

// Rotate rotates the solid by Euler angles (in degrees) around the X,
// Y, Z axes.
func (k *ManifoldKernel) Rotate(s geom.Solid, x, y, z float64) geom.Solid {
	ms := s.(*manifoldSolid)
	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_rotate(alloc, ms.ptr,
		C.double(x), C.double(y), C.double(z),
	)
	return newSolid(ptr)
}

// FromMesh builds a manifold solid from a closed triangle mesh via
// Manifold's MeshGL format. Manifold rejects non-manifold input, which
// surfaces as geom.ErrInvalidMesh.
func (k *ManifoldKernel) FromMesh(m *geom.TriMesh) (geom.Solid, error) {
	if m.IsEmpty() {
		return nil, fmt.Errorf("%w: mesh has no triangles", geom.ErrInvalidMesh)
	}

	numTri := len(m.Triangles)
	verts := make([]float32, 0, numTri*9)
	indices := make([]uint32, 0, numTri*3)
	for i, tri := range m.Triangles {
		for j := 0; j < 3; j++ {
			verts = append(verts,
				float32(tri[j].X), float32(tri[j].Y), float32(tri[j].Z))
			indices = append(indices, uint32(i*3+j))
		}
	}

	meshAlloc := C.manifold_alloc_meshgl()
	meshGL := C.manifold_meshgl(meshAlloc,
		(*C.float)(unsafe.Pointer(&verts[0])), C.size_t(numTri*3), C.size_t(3),
		(*C.uint32_t)(unsafe.Pointer(&indices[0])), C.size_t(numTri*3),
	)
	defer C.manifold_delete_meshgl(meshGL)

	alloc := C.manifold_alloc_manifold()
	ptr := C.manifold_of_meshgl(alloc, meshGL)
	solid := newSolid(ptr)

	if C.manifold_status(solid.ptr) != C.MANIFOLD_NO_ERROR {
		return nil, fmt.Errorf("%w: manifold rejected the mesh", geom.ErrInvalidMesh)
	}
	return solid, nil
}

// ToMesh extracts a triangle mesh from the solid using Manifold's
// MeshGL format. An empty manifold yields an empty mesh.
func (k *ManifoldKernel) ToMesh(s geom.Solid) (*geom.TriMesh, error) {
	ms := s.(*manifoldSolid)

	meshAlloc := C.manifold_alloc_meshgl()
	meshGL := C.manifold_get_meshgl(meshAlloc, ms.ptr)
	defer C.manifold_delete_meshgl(meshGL)

	numVert := int(C.manifold_meshgl_num_vert(meshGL))
	numTri := int(C.manifold_meshgl_num_tri(meshGL))
	if numVert == 0 || numTri == 0 {
		return &geom.TriMesh{}, nil
	}

	// MeshGL stores vertex properties in a flat float array with
	// numProp properties per vertex; the first 3 are always position.
	numProp := int(C.manifold_meshgl_num_prop(meshGL))
	propData := make([]float32, numVert*numProp)
	C.manifold_meshgl_vert_properties(
		(*C.float)(unsafe.Pointer(&propData[0])),
		meshGL,
	)

	indices := make([]uint32, numTri*3)
	C.manifold_meshgl_tri_verts(
		(*C.uint32_t)(unsafe.Pointer(&indices[0])),
		meshGL,
	)

	vertAt := func(idx uint32) geom.Vec {
		base := int(idx) * numProp
		return geom.Vec{
			X: float64(propData[base+0]),
			Y: float64(propData[base+1]),
			Z: float64(propData[base+2]),
		}
	}

	out := &geom.TriMesh{Triangles: make([]geom.Triangle, 0, numTri)}
	for t := 0; t < numTri; t++ {
		out.Triangles = append(out.Triangles, geom.Triangle{
			vertAt(indices[t*3+0]),
			vertAt(indices[t*3+1]),
			vertAt(indices[t*3+2]),
		})
	}
	return out, nil
}
