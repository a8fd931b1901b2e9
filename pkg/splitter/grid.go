package splitter

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// GridSpec is the planned cell layout: division counts per axis and
// the cell boundary coordinates. Extents have XSplit+1 / YSplit+1
// points, uniformly sampling [min, max] on each axis. Z is never
// subdivided.
type GridSpec struct {
	XSplit, YSplit int
	XExtent        []float64
	YExtent        []float64
}

// CellCount returns the number of candidate cells in the grid.
func (g GridSpec) CellCount() int {
	return g.XSplit * g.YSplit
}

// CalculateSplits derives a division count from a model size and a
// maximum per-piece size: ceil(size/maxSize), floored to 1. A maxSize
// ≤ 0 fails with ErrInvalidChunkSize.
//
// The resulting cell width is size/splits, which may be smaller than
// maxSize when size does not divide evenly; it is never larger.
func CalculateSplits(size, maxSize float64) (int, error) {
	if maxSize <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidChunkSize, maxSize)
	}
	splits := int(math.Ceil(size / maxSize))
	if splits < 1 {
		splits = 1
	}
	return splits, nil
}

// planAxis resolves one axis to a division count. An explicit count
// wins over a chunk size; zero or wholly absent parameters default to
// a single piece.
func planAxis(explicit int, maxSize *float64, size float64) (int, error) {
	if explicit < 0 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidSplitCount, explicit)
	}
	n := explicit
	if n == 0 && maxSize != nil {
		var err error
		n, err = CalculateSplits(size, *maxSize)
		if err != nil {
			return 0, err
		}
	}
	if n < 1 {
		n = 1
	}
	return n, nil
}

// PlanGrid computes the cell layout for a bounding box and options.
// Extents are uniform linear samplings between the box min and max on
// each axis; the first and last points coincide with the box bounds.
func PlanGrid(bb BoundingBox, opts Options) (GridSpec, error) {
	size := bb.Size()

	xsplit, err := planAxis(opts.XSplit, opts.MaxX, size[0])
	if err != nil {
		return GridSpec{}, fmt.Errorf("x axis: %w", err)
	}
	ysplit, err := planAxis(opts.YSplit, opts.MaxY, size[1])
	if err != nil {
		return GridSpec{}, fmt.Errorf("y axis: %w", err)
	}

	return GridSpec{
		XSplit:  xsplit,
		YSplit:  ysplit,
		XExtent: floats.Span(make([]float64, xsplit+1), bb.Min[0], bb.Max[0]),
		YExtent: floats.Span(make([]float64, ysplit+1), bb.Min[1], bb.Max[1]),
	}, nil
}
