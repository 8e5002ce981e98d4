package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pgEdge/schemadiff/internal/config"
)

var configCfgFile string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved configuration",
	Long:  "Resolves configuration the same way compare does (defaults, config file, environment) and prints the result as YAML, so overrides can be verified before a run.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configCfgFile)
		if err != nil {
			return err
		}

		out, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("marshal resolved config: %w", err)
		}

		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

func init() {
	configCmd.Flags().StringVar(&configCfgFile, "config", "", "path to a schemadiff config file (overrides the default search path)")
}
