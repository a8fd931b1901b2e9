package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/printforge/stlsplit/pkg/geom/sdfxkern"
	"github.com/printforge/stlsplit/pkg/stlcodec"
)

// genbox exists so users can produce a known-size solid to verify a
// printer profile or splitting parameters before committing a large
// model to the pipeline.
func newGenBoxCmd() *cobra.Command {
	var x, y, z float64

	cmd := &cobra.Command{
		Use:   "genbox [flags] <output.stl>",
		Short: "Generate a calibration box STL of the given size",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if x <= 0 || y <= 0 || z <= 0 {
				return fmt.Errorf("box dimensions must be positive, got %v x %v x %v", x, y, z)
			}

			k := sdfxkern.New()
			mesh, err := k.ToMesh(k.Box(x, y, z))
			if err != nil {
				return err
			}

			f, err := os.Create(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			if err := stlcodec.Encode(f, mesh); err != nil {
				return err
			}
			fmt.Printf("Saved: %s (%d triangles)\n", args[0], mesh.TriangleCount())
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "size-x", 100, "box size along X (mm)")
	cmd.Flags().Float64Var(&y, "size-y", 100, "box size along Y (mm)")
	cmd.Flags().Float64Var(&z, "size-z", 50, "box size along Z (mm)")

	return cmd
}
