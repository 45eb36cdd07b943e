package cmd

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/soocke/compare-viewer/domain/errorvis"
)

// batchChannels is the channel count the batch threshold is scaled for;
// batch inputs are RGB renders.
const batchChannels = 3

var (
	batchRGB       string
	batchGT        string
	batchOut       string
	batchThreshold float64
	batchEmphasis  int
	batchColor     string
	batchWorkers   int
	batchExts      []string
)

var errorsCmd = &cobra.Command{
	Use:   "errors",
	Short: "Write error visualizations for every image pair of two directories",
	Long: "Compares each image in --rgb with the image of the same name in --gt and writes the " +
		"highlighted result to --out (default: an \"error\" directory next to --rgb). The output " +
		"directory is recreated on every run.",
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if !flags.Changed("threshold") {
			batchThreshold = cfg.ErrorThreshold
		}
		if !flags.Changed("emphasis") {
			batchEmphasis = cfg.ErrorEmphasis
		}
		if !flags.Changed("color") {
			batchColor = cfg.ErrorColor
		}
		if !flags.Changed("workers") {
			batchWorkers = cfg.BatchWorkers
		}
		if !flags.Changed("ext") {
			batchExts = cfg.ImageExtensions
		}
		if batchOut == "" {
			batchOut = errorvis.DefaultOutDir(batchRGB)
		}
		tint, ok := errorvis.PaletteColor(batchColor)
		if !ok {
			return fmt.Errorf("unknown colour %q, want one of %v", batchColor, errorvis.PaletteNames)
		}
		if batchEmphasis < 0 || batchEmphasis > errorvis.EmphasisMax {
			return fmt.Errorf("emphasis must be within 0..%d", errorvis.EmphasisMax)
		}

		names, err := errorvis.CommonNames(batchRGB, batchGT, batchExts)
		if err != nil {
			return err
		}
		bar := progressbar.NewOptions(len(names),
			progressbar.OptionSetDescription("error images"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowCount(),
		)
		rep, err := errorvis.ComputeDir(cmd.Context(), errorvis.Batch{
			RGBDir: batchRGB,
			GTDir:  batchGT,
			OutDir: batchOut,
			Params: errorvis.Params{
				Threshold: errorvis.ThresholdFromFraction(batchThreshold, batchChannels),
				Emphasis:  batchEmphasis,
				Tint:      tint,
			},
			Extensions: batchExts,
			Workers:    batchWorkers,
			Logger:     logger,
			Progress:   func(string) { _ = bar.Add(1) },
		})
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return err
		}
		fmt.Printf("%s images written to %s, %s skipped\n",
			humanize.Comma(int64(len(rep.Processed))), batchOut, humanize.Comma(int64(len(rep.Skipped))))
		for _, s := range rep.Skipped {
			fmt.Printf("  skipped %s: %v\n", s.Name, s.Err)
		}
		return nil
	},
}

func init() {
	errorsCmd.Flags().StringVar(&batchRGB, "rgb", "", "Directory of rendered images")
	errorsCmd.Flags().StringVar(&batchGT, "gt", "", "Directory of reference images")
	errorsCmd.Flags().StringVar(&batchOut, "out", "", "Output directory (recreated)")
	errorsCmd.Flags().Float64Var(&batchThreshold, "threshold", 0.5, "Error threshold as a fraction of the largest colour distance")
	errorsCmd.Flags().IntVar(&batchEmphasis, "emphasis", 0, "Emphasis of small errors, 0..10")
	errorsCmd.Flags().StringVar(&batchColor, "color", "yellow", "Highlight colour")
	errorsCmd.Flags().IntVar(&batchWorkers, "workers", 4, "Parallel workers")
	errorsCmd.Flags().StringSliceVar(&batchExts, "ext", nil, "Image extensions to pair (default from config)")
	_ = errorsCmd.MarkFlagRequired("rgb")
	_ = errorsCmd.MarkFlagRequired("gt")
	rootCmd.AddCommand(errorsCmd)
}
