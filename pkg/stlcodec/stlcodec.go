// Package stlcodec decodes and encodes STL byte streams at the system
// boundary, converting between the wire format and geom.TriMesh. Both
// binary and ASCII STL are accepted on input; output is always binary.
// The actual parsing is handled by github.com/hschendel/stl.
package stlcodec

import (
	"bytes"
	"fmt"
	"io"
	"math"

	"github.com/hschendel/stl"

	"github.com/printforge/stlsplit/pkg/geom"
)

// Decode reads one STL solid from r. The reader must be seekable so
// the ASCII/binary variant can be detected.
func Decode(r io.ReadSeeker) (*geom.TriMesh, error) {
	sol, err := stl.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode stl: %w", err)
	}

	mesh := &geom.TriMesh{
		Name:      sol.Name,
		Triangles: make([]geom.Triangle, 0, len(sol.Triangles)),
	}
	for _, t := range sol.Triangles {
		mesh.Triangles = append(mesh.Triangles, geom.Triangle{
			vecFromStl(t.Vertices[0]),
			vecFromStl(t.Vertices[1]),
			vecFromStl(t.Vertices[2]),
		})
	}
	return mesh, nil
}

// DecodeBytes is a convenience wrapper over Decode for in-memory data.
func DecodeBytes(data []byte) (*geom.TriMesh, error) {
	return Decode(bytes.NewReader(data))
}

// Encode writes m to w as binary STL. Facet normals are recomputed
// from the triangle winding.
func Encode(w io.Writer, m *geom.TriMesh) error {
	sol := &stl.Solid{
		Name:      m.Name,
		IsAscii:   false,
		Triangles: make([]stl.Triangle, 0, len(m.Triangles)),
	}
	for _, tri := range m.Triangles {
		sol.Triangles = append(sol.Triangles, stl.Triangle{
			Normal: facetNormal(tri),
			Vertices: [3]stl.Vec3{
				vecToStl(tri[0]),
				vecToStl(tri[1]),
				vecToStl(tri[2]),
			},
		})
	}
	if err := sol.WriteAll(w); err != nil {
		return fmt.Errorf("encode stl: %w", err)
	}
	return nil
}

// EncodeBytes is a convenience wrapper over Encode for in-memory data.
func EncodeBytes(m *geom.TriMesh) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func vecFromStl(v stl.Vec3) geom.Vec {
	return geom.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

func vecToStl(v geom.Vec) stl.Vec3 {
	return stl.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}

// facetNormal returns the unit normal of a counter-clockwise wound
// triangle, or the zero vector for a degenerate one.
func facetNormal(t geom.Triangle) stl.Vec3 {
	n := t[1].Sub(t[0]).Cross(t[2].Sub(t[0]))
	mag := math.Sqrt(n.Dot(n))
	if mag == 0 {
		return stl.Vec3{}
	}
	return stl.Vec3{
		float32(n.X / mag),
		float32(n.Y / mag),
		float32(n.Z / mag),
	}
}
