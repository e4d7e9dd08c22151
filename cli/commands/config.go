package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/oria-mc/oria/cli/internal/config"
	"github.com/oria-mc/oria/cli/internal/ui"
)

// NewConfigCommand creates the config command and its subcommands.
func NewConfigCommand(mgr *config.Manager, configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or persist the effective configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := mgr.Load(*configFile)
			if err != nil {
				return err
			}

			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if used := mgr.ConfigFileUsed(); used != "" {
				fmt.Fprintf(w, "# %s\n", used)
			}
			_, err = w.Write(out)
			return err
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the effective configuration to ~/.config/oria/.oria.yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := mgr.Load(*configFile)
			if err != nil {
				return err
			}

			path, err := mgr.Save(cfg)
			if err != nil {
				return err
			}

			ui.PrintSuccess("Wrote %s", path)
			return nil
		},
	})

	return cmd
}
