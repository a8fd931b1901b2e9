package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/printforge/stlsplit/pkg/archive"
	"github.com/printforge/stlsplit/pkg/config"
	"github.com/printforge/stlsplit/pkg/fragstore"
	"github.com/printforge/stlsplit/pkg/geom"
	"github.com/printforge/stlsplit/pkg/logger"
	"github.com/printforge/stlsplit/pkg/splitter"
	"github.com/printforge/stlsplit/pkg/stlcodec"
)

func newSplitCmd(cfg func() *config.Config) *cobra.Command {
	var (
		xsplit, ysplit int
		maxX, maxY     float64
		flip           bool
		profile        string
		outDir         string
		writeZip       bool
		kernelName     string
	)

	cmd := &cobra.Command{
		Use:   "split [flags] <input.stl>",
		Short: "Split an STL model into a grid of smaller STL files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]

			opts := splitter.Options{
				XSplit: xsplit,
				YSplit: ysplit,
				Flip:   flip,
			}
			if profile != "" {
				p, err := cfg().Lookup(profile)
				if err != nil {
					return err
				}
				opts.MaxX = &p.MaxX
				opts.MaxY = &p.MaxY
				if !cmd.Flags().Changed("flip") {
					opts.Flip = p.Flip
				}
			}
			// A changed flag wins over the profile, and a supplied
			// zero or negative chunk size must reach validation
			// rather than being treated as unset.
			if cmd.Flags().Changed("max-x") {
				opts.MaxX = &maxX
			}
			if cmd.Flags().Changed("max-y") {
				opts.MaxY = &maxY
			}

			k, err := kernelByName(kernelName)
			if err != nil {
				return err
			}
			return runSplit(k, input, outDir, writeZip, opts)
		},
	}

	cmd.Flags().IntVar(&xsplit, "xsplit", 0, "number of X divisions")
	cmd.Flags().IntVar(&ysplit, "ysplit", 0, "number of Y divisions")
	cmd.Flags().Float64Var(&maxX, "max-x", 0, "maximum piece size along X (mm)")
	cmd.Flags().Float64Var(&maxY, "max-y", 0, "maximum piece size along Y (mm)")
	cmd.Flags().BoolVar(&flip, "flip", false, "flip the model 180° over the X axis")
	cmd.Flags().StringVar(&profile, "profile", "", "printer profile from the config file")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "output directory (default: alongside the input)")
	cmd.Flags().BoolVar(&writeZip, "zip", false, "also write a zip archive of all pieces")
	cmd.Flags().StringVar(&kernelName, "kernel", "mesh", "geometry backend (mesh, manifold)")

	cmd.MarkFlagsMutuallyExclusive("xsplit", "max-x")
	cmd.MarkFlagsMutuallyExclusive("ysplit", "max-y")
	cmd.MarkFlagsMutuallyExclusive("profile", "max-x")
	cmd.MarkFlagsMutuallyExclusive("profile", "max-y")

	return cmd
}

func runSplit(k geom.Kernel, input, outDir string, writeZip bool, opts splitter.Options) error {
	f, err := os.Open(input)
	if err != nil {
		return err
	}
	defer f.Close()

	mesh, err := stlcodec.Decode(f)
	if err != nil {
		return err
	}

	result, err := splitter.SplitMesh(k, mesh, opts)
	if err != nil {
		return err
	}

	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	var files []string
	for _, frag := range result.Fragments {
		path, err := fragstore.WriteFragment(outDir, stem, frag)
		if err != nil {
			return err
		}
		logger.Log.Debug("fragment written", zap.String("path", path))
		fmt.Printf("Saved: %s\n", path)
		files = append(files, path)
	}

	if writeZip {
		zipPath := filepath.Join(outDir, archive.ZipName(stem))
		zf, err := os.Create(zipPath)
		if err != nil {
			return err
		}
		if err := archive.WriteZip(zf, files); err != nil {
			zf.Close()
			return err
		}
		if err := zf.Close(); err != nil {
			return err
		}
		fmt.Printf("Archive: %s\n", zipPath)
	}

	printReport(result)
	return nil
}

// printReport mirrors the model/segment summary a user needs to check
// the pieces against their printer bed.
func printReport(r *splitter.Result) {
	fmt.Printf("\nModel dimensions: %.2f x %.2f x %.2f mm\n",
		r.Dimensions[0], r.Dimensions[1], r.Dimensions[2])
	fmt.Printf("Splits:           %d x %d\n", r.Splits[0], r.Splits[1])
	fmt.Printf("Segment size:     %.2f x %.2f x %.2f mm\n",
		r.SegmentSize[0], r.SegmentSize[1], r.SegmentSize[2])
	fmt.Printf("Fragments:        %d\n", len(r.Fragments))
}
