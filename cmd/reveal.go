package cmd

import (
	"github.com/spf13/cobra"

	"github.com/soocke/compare-viewer/domain/reveal"
)

var revealCmd = &cobra.Command{
	Use:   "reveal PATH",
	Short: "Open a folder in the system file browser",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return reveal.Open(args[0])
	},
}

func init() {
	rootCmd.AddCommand(revealCmd)
}
