package cli

import (
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/printforge/stlsplit/pkg/config"
	"github.com/printforge/stlsplit/pkg/logger"
	"github.com/printforge/stlsplit/pkg/server"
)

func newServeCmd(cfg func() *config.Config) *cobra.Command {
	var (
		addr       string
		kernelName string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP splitting service",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sc := cfg().Server
			if !cmd.Flags().Changed("addr") {
				addr = sc.Addr
			}

			k, err := kernelByName(kernelName)
			if err != nil {
				return err
			}

			srv := server.New(
				k,
				logger.Log,
				sc.WorkDir,
				sc.MaxUploadMB*1024*1024,
			)

			logger.Log.Info("listening", zap.String("addr", addr))
			return http.ListenAndServe(addr, srv.ServeMux())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8750", "listen address")
	cmd.Flags().StringVar(&kernelName, "kernel", "mesh", "geometry backend (mesh, manifold)")
	return cmd
}
