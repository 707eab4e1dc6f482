package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"retrato/internal/platform/config"
	"retrato/internal/platform/logger"
)

// app carries the configuration and process-wide dependencies shared by
// every subcommand.
type app struct {
	cfg config.Config
	out io.Writer
	log *zap.Logger
}

func newRootCmd(out io.Writer) *cobra.Command {
	a := &app{cfg: config.FromEnv(), out: out}

	root := &cobra.Command{
		Use:   "retrato",
		Short: "Municipality profiles for Castilla y León",
		Long: `retrato aggregates the open-data portals of the Junta de Castilla y León
and the static datasets shipped in the data directory into one profile per
municipality.

Run "retrato serve" to start the HTTP API. The other commands build profiles
and exports from the command line with the same configuration.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Offline commands print their result on stdout.
			if cmd.Name() != "serve" && a.cfg.Log.Output == "stdout" {
				a.cfg.Log.Output = "stderr"
			}
			log, err := logger.New(a.cfg.Log)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}
			a.log = log
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.cfg.DataDir, "data-dir", a.cfg.DataDir, "directory holding the static datasets")
	pf.StringVar(&a.cfg.Log.Level, "log-level", a.cfg.Log.Level, "log level: debug, info, warn or error")
	pf.StringVar(&a.cfg.Log.Format, "log-format", a.cfg.Log.Format, "log encoding: json or console")

	root.AddCommand(
		a.serveCmd(),
		a.profileCmd(),
		a.exportCmd(),
		a.statsCmd(),
		a.clearCacheCmd(),
	)
	return root
}
