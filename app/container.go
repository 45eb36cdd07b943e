package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/compare-viewer/config"
	"github.com/soocke/compare-viewer/domain/crop"
	"github.com/soocke/compare-viewer/domain/render"
	"github.com/soocke/compare-viewer/domain/retrain"
	"github.com/soocke/compare-viewer/domain/reveal"
	"github.com/soocke/compare-viewer/ui/model"
	"github.com/soocke/compare-viewer/ui/panel"
	"github.com/soocke/compare-viewer/ui/presenter"
	"github.com/soocke/compare-viewer/ui/remote"
	"github.com/soocke/compare-viewer/ui/view"
	"github.com/soocke/compare-viewer/ui/widget"
)

const eventBuffer = 256

// Settings are the per-run inputs that do not live in the config file.
type Settings struct {
	// ConfigPaths holds one trained pipeline config per pipeline (1 or 2).
	ConfigPaths []string
	// RenderDirs holds the pre-rendered frames of each pipeline, in the
	// order of ConfigPaths. Missing entries leave the pipeline without frames.
	RenderDirs []string
	// DataDir is the training data location; error controls, viewpoint
	// editing and retraining are only offered when it is set.
	DataDir string
	Local   bool
}

// Container assembles models, services, presenters and views.
type Container struct {
	Config   *config.Config
	Logger   *slog.Logger
	Settings Settings

	Hub     *remote.Hub
	Sources []*render.DirSource
	Preview *model.PreviewModel
	Jobs    *model.JobModel
	Retrain retrain.Pipeline

	// Set by Wire.
	Panel            *panel.Panel
	UI               view.UI
	ErrorPresenter   *presenter.ErrorPresenter
	RetrainPresenter *presenter.RetrainPresenter
	Loop             *presenter.Loop
}

// BuildContainer constructs everything that does not depend on the panel
// surface. Side effects are limited to scanning the render directories.
func BuildContainer(cfg *config.Config, logger *slog.Logger, s Settings) (*Container, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if n := len(s.ConfigPaths); n != 1 && n != 2 {
		return nil, fmt.Errorf("%w: got %d configs", panel.ErrPipelineCount, n)
	}
	c := &Container{
		Config:   cfg,
		Logger:   logger,
		Settings: s,
		Hub:      remote.NewHub(logger, eventBuffer),
		Preview:  &model.PreviewModel{},
		Jobs:     &model.JobModel{},
		Retrain: retrain.Pipeline{
			Runner:       retrain.ExecRunner{},
			PoseCommand:  cfg.PoseCommand,
			TrainCommand: cfg.TrainCommand,
			Detached:     cfg.TrainDetached,
			Logger:       logger,
		},
	}
	for _, dir := range s.RenderDirs {
		src, err := render.OpenDir(dir, nil)
		if err != nil {
			return nil, err
		}
		c.Sources = append(c.Sources, src)
	}
	return c, nil
}

// Wire builds the panel on surface and the presenters around it. ui may be
// nil when no local window is shown.
func (c *Container) Wire(ctx context.Context, surface widget.Surface, ui view.UI) error {
	c.UI = ui
	p, err := panel.New(surface, panel.Options{
		TimeEnabled:           c.timeEnabled(),
		PipelineCount:         len(c.Settings.ConfigPaths),
		DataLocation:          c.Settings.DataDir,
		ScaleRatio:            c.Config.ScaleRatio,
		DefaultCompositeDepth: c.Config.DefaultCompositeDepth,
		TrainUtil:             c.Config.TrainUtil,
		MaxRes:                c.Config.MaxRes,
		ErrorThreshold:        c.Config.ErrorThreshold,
		ErrorEmphasis:         c.Config.ErrorEmphasis,
		ErrorColor:            c.Config.ErrorColor,
		Rerender:              c.rerender,
		UpdateOutput:          c.updateOutput,
		UpdateSplitOutput:     c.updateSplitOutput,
		EditViewpoints:        c.editViewpoints,
		Retrain:               c.retrain,
		HandleChanged:         func(h crop.Handle) { c.Hub.SetHandle(h) },
		Clients:               c.Hub,
		Logger:                c.Logger,
	})
	if err != nil {
		return err
	}
	c.Panel = p

	var preview presenter.PreviewView
	if ui != nil {
		preview = ui
	}
	c.ErrorPresenter = presenter.NewErrorPresenter(p, c.Preview, preview, c.Logger)
	c.RetrainPresenter = presenter.NewRetrainPresenter(ctx, c.Jobs, c.Retrain, p, c.Settings.DataDir, c.Settings.ConfigPaths[0], c.Logger)
	if ui != nil {
		c.RetrainPresenter.View = ui
	}
	c.Loop = presenter.NewLoop(c.Hub, p, c.ErrorPresenter, c.RetrainPresenter, nil, c.Logger)

	// Seed the output choices; the output callback fills the colormaps and renders.
	if src := c.primary(); src != nil {
		if err := p.UpdateOutputOptions(src.Outputs()); err != nil {
			return err
		}
	}
	return nil
}

// Close stops background work.
func (c *Container) Close() {
	if c == nil {
		return
	}
	c.ErrorPresenter.Close()
	c.Hub.Close()
}

func (c *Container) retrain() {
	c.RetrainPresenter.Retrain()
}

func (c *Container) editViewpoints() {
	if err := reveal.Open(c.Settings.DataDir); err != nil {
		if errors.Is(err, reveal.ErrUnsupportedPlatform) {
			c.Logger.Warn("edit viewpoints unavailable", "error", err)
			return
		}
		c.Logger.Error("edit viewpoints", "path", c.Settings.DataDir, "error", err)
	}
}

// timeEnabled reports whether the frames span more than one timestep.
func (c *Container) timeEnabled() bool {
	src := c.primary()
	if src == nil {
		return false
	}
	for _, out := range src.Outputs() {
		if len(src.Names(out)) > 1 {
			return true
		}
	}
	return false
}

func (c *Container) tickInterval() time.Duration {
	return time.Duration(c.Config.TickMS) * time.Millisecond
}
