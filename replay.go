package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"LayerBoard/internal/config"
	"LayerBoard/internal/export"
	boardnet "LayerBoard/internal/net"
	"LayerBoard/internal/state"
)

func newReplayCmd(flags *rootFlags) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "replay <script.jsonl>",
		Short: "Apply a recorded command script and export the result as PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := pslog.Ctx(cmd.Context())
			cfg, err := config.Load(flags.cfgPath)
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			proc := newProcessor(cfg, logger)
			n, err := replay(cmd.Context(), proc, f)
			if err != nil {
				return err
			}
			v := proc.View()
			logger.Info("replay done", "commands", n, "visible", v.Count(), "layers", len(v.Layers))
			if out == "" {
				data, err := boardnet.EncodeView(v)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			return export.ExportPDF(out, v, exportOptions(cfg))
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write a PDF here instead of printing the view")
	return cmd
}

// replay applies one wire message per line from r. Blank lines are skipped;
// an undecodable line stops the replay with its line number.
func replay(ctx context.Context, proc *state.Processor, r io.Reader) (int, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 32*1024*1024)
	applied := 0
	for line := 1; sc.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return applied, err
		}
		data := bytes.TrimSpace(sc.Bytes())
		if len(data) == 0 {
			continue
		}
		cmd, err := boardnet.DecodeCommand(data)
		if err != nil {
			return applied, fmt.Errorf("line %d: %w", line, err)
		}
		proc.Apply(boardnet.ResolveStyle(cmd, proc.View().Style))
		applied++
	}
	if err := sc.Err(); err != nil {
		return applied, fmt.Errorf("read script: %w", err)
	}
	return applied, nil
}
