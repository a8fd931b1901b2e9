// Package cli wires the splitting pipeline into a cobra command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/printforge/stlsplit/pkg/config"
	"github.com/printforge/stlsplit/pkg/logger"
)

// Execute runs the root command, exiting non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		logLevel   string
		logFile    string
		configPath string
		cfg        *config.Config
	)

	cmd := &cobra.Command{
		Use:           "stlsplit",
		Short:         "Split oversized STL models into printable pieces",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			// Flags win; otherwise the config file's logging section
			// applies.
			if !cmd.Flags().Changed("log-level") && cfg.Logging.Level != "" {
				logLevel = cfg.Logging.Level
			}
			if !cmd.Flags().Changed("log-file") && cfg.Logging.LogFile != "" {
				logFile = cfg.Logging.LogFile
			}
			return logger.Init(logLevel, logFile)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			logger.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFile, "log-file", "", "optional log file path (rotated)")
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ./stlsplit.yaml)")

	cfgRef := func() *config.Config { return cfg }
	cmd.AddCommand(newSplitCmd(cfgRef))
	cmd.AddCommand(newServeCmd(cfgRef))
	cmd.AddCommand(newGenBoxCmd())

	return cmd
}
