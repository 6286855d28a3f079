package main

import (
	"context"
	"log"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"LayerBoard/internal/config"
	"LayerBoard/internal/logx"
	boardnet "LayerBoard/internal/net"
	"LayerBoard/internal/state"
	"LayerBoard/internal/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := submain(ctx)
	stop()
	os.Exit(code)
}

func submain(ctx context.Context) int {
	logger := pslog.LoggerFromEnv(
		pslog.WithEnvWriter(os.Stderr),
		pslog.WithEnvOptions(pslog.Options{Mode: pslog.ModeConsole}),
	)
	ctx = pslog.ContextWithLogger(ctx, logger)
	log.SetOutput(pslog.LogLogger(logger).Writer())
	log.SetFlags(0)

	root := newRootCmd()
	root.SetArgs(os.Args[1:])
	if err := root.ExecuteContext(ctx); err != nil {
		pslog.Ctx(ctx).With("err", err).Error("layerboard command failed")
		return 1
	}
	return 0
}

type rootFlags struct {
	cfgPath string
	verbose bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	var remote bool
	root := &cobra.Command{
		Use:           "layerboard",
		Short:         "Layered whiteboard with undo, images and a remote control surface",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flags.verbose {
				logger := logx.New(os.Stderr, true, true)
				cmd.SetContext(pslog.ContextWithLogger(cmd.Context(), logger))
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.cfgPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("remote") {
				cfg.Remote.Enabled = remote
			}
			return runBoard(cmd.Context(), cfg)
		},
	}
	root.PersistentFlags().StringVarP(&flags.cfgPath, "config", "c", "", "path to config file")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log at debug level")
	root.Flags().BoolVar(&remote, "remote", false, "also serve the remote control surface")

	root.AddCommand(newServeCmd(&flags))
	root.AddCommand(newReplayCmd(&flags))
	root.AddCommand(newConfigCmd(&flags))
	root.AddCommand(newDiscoverCmd())
	return root
}

func newProcessor(cfg config.Config, logger pslog.Logger) *state.Processor {
	opts := append(cfg.StoreOptions(), state.WithLogger(logger))
	return state.NewProcessor(state.NewStore(opts...), logger)
}

// runBoard opens the window; the remote surface, when enabled, shares the
// same processor and stops with the window.
func runBoard(ctx context.Context, cfg config.Config) error {
	logger := pslog.Ctx(ctx)
	proc := newProcessor(cfg, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	shareLink := ""
	if cfg.Remote.Enabled {
		link, errCh, err := startRemote(ctx, cfg, proc)
		if err != nil {
			return err
		}
		shareLink = link
		defer func() {
			cancel()
			if err := <-errCh; err != nil {
				logger.Warn("remote surface stopped", "err", err)
			}
		}()
	}
	ui.RunApp(cfg, proc, shareLink, logger)
	return nil
}

// startRemote listens on cfg.Remote.Addr and, when asked, advertises the
// surface over mDNS. It returns once listening.
func startRemote(ctx context.Context, cfg config.Config, proc *state.Processor) (string, <-chan error, error) {
	logger := pslog.Ctx(ctx)
	pdf := exportOptions(cfg)
	h := boardnet.Handler(proc, boardnet.NewSurface(proc, logger), pdf)

	bound := make(chan int, 1)
	errCh := make(chan error, 1)
	go func() {
		errCh <- boardnet.Serve(ctx, cfg.Remote.Addr, h, func(addr net.Addr) {
			bound <- boardnet.PortOf(addr)
		})
	}()

	var port int
	select {
	case port = <-bound:
	case err := <-errCh:
		return "", nil, err
	}

	if cfg.Remote.MDNS {
		server, err := boardnet.Advertise(port)
		if err != nil {
			logger.Warn("mdns advertise failed", "err", err)
		} else {
			go func() {
				<-ctx.Done()
				_ = server.Shutdown()
			}()
		}
	}

	link := boardnet.ShareLink(boardnet.LocalIP(), port)
	logger.Info("remote surface ready", "link", link)
	return link, errCh, nil
}
