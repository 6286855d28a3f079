package main

import (
	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"LayerBoard/internal/config"
	"LayerBoard/internal/export"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var addr string
	var noMDNS bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a headless board behind the remote control surface",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := config.Load(flags.cfgPath)
			if err != nil {
				return err
			}
			cfg.Remote.Enabled = true
			if addr != "" {
				cfg.Remote.Addr = addr
			}
			if noMDNS {
				cfg.Remote.MDNS = false
			}
			proc := newProcessor(cfg, logger)
			_, errCh, err := startRemote(cmd.Context(), cfg, proc)
			if err != nil {
				return err
			}
			return <-errCh
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides remote.addr)")
	cmd.Flags().BoolVar(&noMDNS, "no-mdns", false, "do not advertise over mDNS")
	return cmd
}

func exportOptions(cfg config.Config) export.Options {
	return export.Options{Margin: cfg.Export.Margin, Background: cfg.Canvas.Background}
}
