package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/soocke/compare-viewer/domain/retrain"
)

var (
	retrainData       string
	retrainCheckpoint string
	retrainDetached   bool
)

var retrainCmd = &cobra.Command{
	Use:   "retrain",
	Short: "Recompute camera poses for a data folder and train a new model",
	RunE: func(cmd *cobra.Command, args []string) error {
		detached := cfg.TrainDetached
		if cmd.Flags().Changed("detached") {
			detached = retrainDetached
		}
		p := retrain.Pipeline{
			Runner:       retrain.ExecRunner{},
			PoseCommand:  cfg.PoseCommand,
			TrainCommand: cfg.TrainCommand,
			Detached:     detached,
			Logger:       logger,
		}
		start := time.Now()
		job, err := p.Run(cmd.Context(), retrainData, retrainCheckpoint)
		if err != nil {
			return err
		}
		fmt.Println(job.Hint)
		if detached {
			fmt.Printf("training continues in the background, output in %s, log in %s\n", job.OutputDir, job.Log)
			return nil
		}
		fmt.Printf("training finished (started %s)\n", humanize.RelTime(start, time.Now(), "ago", "from now"))
		return nil
	},
}

func init() {
	retrainCmd.Flags().StringVar(&retrainData, "data", "", "Data folder holding the training images")
	retrainCmd.Flags().StringVar(&retrainCheckpoint, "checkpoint", "", "Current pipeline config, used for the comparison hint")
	retrainCmd.Flags().BoolVar(&retrainDetached, "detached", true, "Do not wait for training to finish")
	_ = retrainCmd.MarkFlagRequired("data")
	rootCmd.AddCommand(retrainCmd)
}
