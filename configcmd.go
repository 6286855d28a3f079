package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"LayerBoard/internal/config"
)

func newConfigCmd(flags *rootFlags) *cobra.Command {
	var write bool
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.cfgPath)
			if err != nil {
				return err
			}
			if write {
				path := flags.cfgPath
				if path == "" {
					if path, err = config.DefaultConfigPath(); err != nil {
						return err
					}
				}
				if err := config.Save(path, cfg); err != nil {
					return err
				}
				pslog.Ctx(cmd.Context()).Info("config written", "path", path)
				return nil
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	cmd.Flags().BoolVar(&write, "write", false, "save the effective config to the config path")
	return cmd
}
