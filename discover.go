package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	boardnet "LayerBoard/internal/net"
)

func newDiscoverCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "discover",
		Short: "List boards advertising a remote surface on the local network",
		RunE: func(cmd *cobra.Command, args []string) error {
			seen := make(map[string]bool)
			err := boardnet.Browse(cmd.Context(), timeout, func(addr string) {
				if seen[addr] {
					return
				}
				seen[addr] = true
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "ws://"+addr+"/ws")
			})
			if err != nil {
				return err
			}
			if len(seen) == 0 {
				pslog.Ctx(cmd.Context()).Info("no boards found", "timeout", timeout.String())
			}
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 3*time.Second, "how long to listen for answers")
	return cmd
}
