package geom

// Vec is a point or direction in 3D space.
type Vec struct {
	X, Y, Z float64
}

// Add returns the component-wise sum v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns the component-wise difference v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Cross returns the cross product v × o.
func (v Vec) Cross(o Vec) Vec {
	return Vec{
		X: v.Y*o.Z - v.Z*o.Y,
		Y: v.Z*o.X - v.X*o.Z,
		Z: v.X*o.Y - v.Y*o.X,
	}
}

// Dot returns the dot product v · o.
func (v Vec) Dot(o Vec) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Triangle is a single oriented surface triangle.
type Triangle [3]Vec

// TriMesh is a triangle-soup boundary representation of a solid.
// It is the interchange type between kernel backends and the STL codec.
type TriMesh struct {
	Name      string
	Triangles []Triangle
}

// TriangleCount returns the number of triangles.
func (m *TriMesh) TriangleCount() int {
	return len(m.Triangles)
}

// IsEmpty returns true if the mesh has no geometry.
func (m *TriMesh) IsEmpty() bool {
	return len(m.Triangles) == 0
}

// Bounds returns the vertex extrema of the mesh. For an empty mesh
// both corners are the zero vector.
func (m *TriMesh) Bounds() (min, max Vec) {
	if m.IsEmpty() {
		return Vec{}, Vec{}
	}
	min = m.Triangles[0][0]
	max = min
	for _, tri := range m.Triangles {
		for _, v := range tri {
			if v.X < min.X {
				min.X = v.X
			}
			if v.Y < min.Y {
				min.Y = v.Y
			}
			if v.Z < min.Z {
				min.Z = v.Z
			}
			if v.X > max.X {
				max.X = v.X
			}
			if v.Y > max.Y {
				max.Y = v.Y
			}
			if v.Z > max.Z {
				max.Z = v.Z
			}
		}
	}
	return min, max
}

// Volume returns the enclosed volume of the mesh via the divergence
// theorem. The result is only meaningful for a closed mesh with
// consistent outward-facing winding.
func (m *TriMesh) Volume() float64 {
	var v6 float64
	for _, tri := range m.Triangles {
		v6 += tri[0].Dot(tri[1].Cross(tri[2]))
	}
	vol := v6 / 6.0
	if vol < 0 {
		vol = -vol
	}
	return vol
}

// BoxMesh returns a closed 12-triangle mesh spanning [min, max].
// All faces wind counter-clockwise seen from outside.
func BoxMesh(min, max Vec) *TriMesh {
	// The 8 corners, low Z first.
	c := [8]Vec{
		{min.X, min.Y, min.Z}, {max.X, min.Y, min.Z},
		{max.X, max.Y, min.Z}, {min.X, max.Y, min.Z},
		{min.X, min.Y, max.Z}, {max.X, min.Y, max.Z},
		{max.X, max.Y, max.Z}, {min.X, max.Y, max.Z},
	}
	quads := [6][4]int{
		{0, 3, 2, 1}, // bottom (-Z)
		{4, 5, 6, 7}, // top (+Z)
		{0, 1, 5, 4}, // front (-Y)
		{2, 3, 7, 6}, // back (+Y)
		{0, 4, 7, 3}, // left (-X)
		{1, 2, 6, 5}, // right (+X)
	}
	mesh := &TriMesh{Triangles: make([]Triangle, 0, 12)}
	for _, q := range quads {
		mesh.Triangles = append(mesh.Triangles,
			Triangle{c[q[0]], c[q[1]], c[q[2]]},
			Triangle{c[q[0]], c[q[2]], c[q[3]]},
		)
	}
	return mesh
}
