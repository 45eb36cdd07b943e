package cmd

import (
	"github.com/spf13/cobra"

	"github.com/soocke/compare-viewer/app"
)

var (
	serveConfigs []string
	serveRenders []string
	serveData    string
	serveListen  string
	serveLocal   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the control panel for one or two pipelines",
	Long: "Serves the control panel to browser clients over a websocket. Pass --load-config once " +
		"per pipeline (one or two). With --local the panel and the error preview also open in a " +
		"desktop window.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveListen != "" {
			cfg.ListenAddr = serveListen
		}
		c, err := app.BuildContainer(cfg, logger, app.Settings{
			ConfigPaths: serveConfigs,
			RenderDirs:  serveRenders,
			DataDir:     serveData,
			Local:       serveLocal,
		})
		if err != nil {
			return err
		}
		return app.NewApp("Compare Viewer", 1100, 720, c).Run(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringArrayVar(&serveConfigs, "load-config", nil, "Trained pipeline config; repeat for a second pipeline")
	serveCmd.Flags().StringArrayVar(&serveRenders, "renders", nil, "Pre-rendered frame directory per pipeline, in --load-config order")
	serveCmd.Flags().StringVar(&serveData, "data", "", "Training data location; enables error view, viewpoint editing and retraining")
	serveCmd.Flags().StringVar(&serveListen, "listen", "", "Listen address (overrides listen_addr)")
	serveCmd.Flags().BoolVar(&serveLocal, "local", false, "Open the local desktop window")
	_ = serveCmd.MarkFlagRequired("load-config")
	rootCmd.AddCommand(serveCmd)
}
