// Package splitter partitions a single watertight solid into a
// rectangular grid of smaller solids along the X and Y axes, so each
// piece fits within a target printable envelope.
//
// A split runs three strictly sequential stages: measure the solid's
// extent (optionally flipping it first), plan the cell grid, and
// extract one fragment per non-empty cell. The geometry work is
// delegated to a geom.Kernel; the splitter itself is pure bookkeeping
// and runs as a single deterministic pass.
package splitter

import (
	"fmt"

	"github.com/printforge/stlsplit/pkg/geom"
)

// Options selects how the grid is derived. For each of the X/Y axes
// exactly one of {explicit split count, max chunk size, neither} is
// expected; mixing modes across axes is permitted. An explicit count
// wins over a chunk size on the same axis, and an axis with neither
// defaults to a single piece.
type Options struct {
	XSplit int // explicit X divisions, 0 = unset
	YSplit int // explicit Y divisions, 0 = unset

	// Maximum per-piece sizes (chunk-size mode). nil = unset.
	MaxX *float64
	MaxY *float64

	// Flip rotates the model 180° about the X axis before measuring,
	// changing which face is down on the print bed.
	Flip bool
}

// Validate rejects invalid parameters before any geometry processing.
func (o Options) Validate() error {
	if o.MaxX != nil && *o.MaxX <= 0 {
		return fmt.Errorf("max x: %w: got %v", ErrInvalidChunkSize, *o.MaxX)
	}
	if o.MaxY != nil && *o.MaxY <= 0 {
		return fmt.Errorf("max y: %w: got %v", ErrInvalidChunkSize, *o.MaxY)
	}
	if o.XSplit < 0 {
		return fmt.Errorf("xsplit: %w: got %d", ErrInvalidSplitCount, o.XSplit)
	}
	if o.YSplit < 0 {
		return fmt.Errorf("ysplit: %w: got %d", ErrInvalidSplitCount, o.YSplit)
	}
	return nil
}

// BoundingBox is an axis-aligned bounding box. Min[i] ≤ Max[i] holds
// for every axis.
type BoundingBox struct {
	Min, Max [3]float64
}

// Size returns the per-axis extent of the box.
func (b BoundingBox) Size() [3]float64 {
	return [3]float64{
		b.Max[0] - b.Min[0],
		b.Max[1] - b.Min[1],
		b.Max[2] - b.Min[2],
	}
}

// Fragment is one non-empty output solid, tagged with its 1-based part
// index. Indices are sequential with no gaps: empty cells consume no
// index.
type Fragment struct {
	PartIndex int
	Solid     geom.Solid
	Mesh      *geom.TriMesh
}

// Result is the aggregate report of one split. It is immutable once
// produced.
type Result struct {
	Dimensions  [3]float64 // bounding box size of the (possibly flipped) model
	Splits      [2]int     // divisions along X and Y
	SegmentSize [3]float64 // nominal size of one piece
	Grid        GridSpec
	Fragments   []Fragment
}

// Split partitions a solid into grid fragments. The first failing cell
// aborts the whole computation; no partial result is returned.
func Split(k geom.Kernel, solid geom.Solid, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	solid, bb := analyzeExtent(k, solid, opts.Flip)

	grid, err := PlanGrid(bb, opts)
	if err != nil {
		return nil, err
	}

	fragments, err := extract(k, solid, bb, grid)
	if err != nil {
		return nil, err
	}

	size := bb.Size()
	return &Result{
		Dimensions: size,
		Splits:     [2]int{grid.XSplit, grid.YSplit},
		SegmentSize: [3]float64{
			size[0] / float64(grid.XSplit),
			size[1] / float64(grid.YSplit),
			size[2],
		},
		Grid:      grid,
		Fragments: fragments,
	}, nil
}

// SplitMesh is like Split but starts from a decoded triangle mesh,
// importing it through the kernel first. Import failures carry
// geom.ErrInvalidMesh.
func SplitMesh(k geom.Kernel, m *geom.TriMesh, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	solid, err := k.FromMesh(m)
	if err != nil {
		return nil, err
	}
	return Split(k, solid, opts)
}

// analyzeExtent applies the optional flip and measures the solid.
// The returned solid replaces the input for all downstream stages, so
// the flip is observed everywhere.
func analyzeExtent(k geom.Kernel, s geom.Solid, flip bool) (geom.Solid, BoundingBox) {
	if flip {
		s = k.Rotate(s, 180, 0, 0)
	}
	min, max := s.BoundingBox()
	return s, BoundingBox{Min: min, Max: max}
}

// extract scans grid cells in row-major order, X outer and Y inner,
// intersecting an axis-aligned clip volume against the solid for each
// cell. Empty results are dropped silently; part indices increment
// only on non-empty results.
func extract(k geom.Kernel, solid geom.Solid, bb BoundingBox, grid GridSpec) ([]Fragment, error) {
	sizeZ := bb.Max[2] - bb.Min[2]
	midZ := (bb.Min[2] + bb.Max[2]) / 2

	var fragments []Fragment
	part := 1
	for i := 0; i < grid.XSplit; i++ {
		x0, x1 := grid.XExtent[i], grid.XExtent[i+1]
		for j := 0; j < grid.YSplit; j++ {
			y0, y1 := grid.YExtent[j], grid.YExtent[j+1]

			// Clip volume: the cell's X/Y sub-intervals and the full
			// Z range, centered at the cell midpoint.
			clip := k.Translate(
				k.Box(x1-x0, y1-y0, sizeZ),
				(x0+x1)/2, (y0+y1)/2, midZ,
			)

			section := k.Intersection(solid, clip)
			mesh, err := k.ToMesh(section)
			if err != nil {
				return nil, &IntersectionError{Row: i, Col: j, Err: err}
			}
			if mesh.IsEmpty() {
				continue
			}

			fragments = append(fragments, Fragment{
				PartIndex: part,
				Solid:     section,
				Mesh:      mesh,
			})
			part++
		}
	}
	return fragments, nil
}
