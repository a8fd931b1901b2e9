package cli

import (
	"fmt"

	"github.com/printforge/stlsplit/pkg/geom"
	"github.com/printforge/stlsplit/pkg/geom/manifoldkern"
	"github.com/printforge/stlsplit/pkg/geom/meshkern"
)

// kernelByName selects the geometry backend used for mesh splitting.
// "mesh" is the default marching-cubes backend; "manifold" performs
// exact booleans and needs a binary built with -tags=manifold.
func kernelByName(name string) (geom.Kernel, error) {
	switch name {
	case "", "mesh":
		return meshkern.New(), nil
	case "manifold":
		return manifoldkern.New()
	default:
		return nil, fmt.Errorf("unknown kernel %q (available: mesh, manifold)", name)
	}
}
