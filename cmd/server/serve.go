package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"retrato/internal/platform/httpserver"
	httptransport "retrato/internal/transport/http"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			c, err := a.build(ctx)
			if err != nil {
				return err
			}
			defer c.close()

			handler := httptransport.NewHandler(c.service, a.log)
			router := httptransport.NewRouter(handler, a.log, c.metrics, c.registry)
			srv := httpserver.New(a.cfg.Server.Addr, router)
			return httpserver.Run(ctx, srv, a.cfg.Server.ShutdownTimeout, a.log)
		},
	}
	cmd.Flags().StringVar(&a.cfg.Server.Addr, "addr", a.cfg.Server.Addr, "listen address")
	return cmd
}
