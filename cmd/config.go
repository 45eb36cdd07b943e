package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var configSave bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configSave {
			if err := cfg.Save(cfgPath); err != nil {
				return err
			}
			logger.Info("config saved", "path", cfgPath)
		}
		out, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configSave, "save", false, "Write the effective configuration to the config file")
	rootCmd.AddCommand(configCmd)
}
