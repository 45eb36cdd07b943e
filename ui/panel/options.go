package panel

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/soocke/compare-viewer/domain/errorvis"
	"github.com/soocke/compare-viewer/ui/widget"
)

// Colormaps lists every colormap the renderer knows.
var Colormaps = []string{"default", "turbo", "viridis", "magma", "inferno", "cividis", "gray", "pca"}

// ColormapChoices returns the colormaps that apply to an output with dims
// channels. floating reports a floating-point output. Outputs no colormap
// applies to get "default".
func ColormapChoices(dims int, floating bool) []string {
	switch {
	case dims == 3:
		return []string{"default"}
	case dims == 1 && floating:
		return slices.DeleteFunc(slices.Clone(Colormaps), func(c string) bool { return c == "default" || c == "pca" })
	case dims > 3:
		return []string{"pca"}
	}
	return []string{"default"}
}

// ColormapOptions is what the renderer needs to colorize one output.
type ColormapOptions struct {
	Colormap  string
	Normalize bool
	Min       float64
	Max       float64
	Invert    bool
}

// UpdateOutputOptions replaces the output choices of both renders and
// selects the last option for the split render.
func (p *Panel) UpdateOutputOptions(options []string) error {
	if len(options) == 0 {
		return fmt.Errorf("%w: no outputs", widget.ErrInvalidOption)
	}
	if err := p.outputRender.SetOptions(options); err != nil {
		return err
	}
	if err := p.splitOutputRender.SetOptions(options); err != nil {
		return err
	}
	return p.splitOutputRender.SetValue(options[len(options)-1])
}

func (p *Panel) UpdateColormapOptions(dims int, floating bool) error {
	return p.colormap.SetOptions(ColormapChoices(dims, floating))
}

func (p *Panel) UpdateSplitColormapOptions(dims int, floating bool) error {
	return p.splitColormap.SetOptions(ColormapChoices(dims, floating))
}

func (p *Panel) ColormapOptions() ColormapOptions {
	return ColormapOptions{
		Colormap:  p.colormap.String(),
		Normalize: p.normalize.Checked(),
		Min:       p.min.Float(),
		Max:       p.max.Float(),
		Invert:    p.invert.Checked(),
	}
}

func (p *Panel) SplitColormapOptions() ColormapOptions {
	return ColormapOptions{
		Colormap:  p.splitColormap.String(),
		Normalize: p.splitNormalize.Checked(),
		Min:       p.splitMin.Float(),
		Max:       p.splitMax.Float(),
		Invert:    p.splitInvert.Checked(),
	}
}

// Speed presets for the train speed group.
type Speed struct {
	Name      string
	TrainUtil float64
	MaxRes    float64
}

var Speeds = []Speed{
	{Name: "Slow", TrainUtil: 0.5, MaxRes: 1024},
	{Name: "Mid", TrainUtil: 0.85, MaxRes: 512},
	{Name: "Fast", TrainUtil: 0.95, MaxRes: 256},
}

// SpeedNames are the train speed options in display order.
var SpeedNames = []string{"Slow", "Mid", "Fast"}

func (p *Panel) applySpeed() {
	name := p.trainSpeed.String()
	for _, s := range Speeds {
		if s.Name == name {
			p.trainUtil.SetValue(s.TrainUtil)
			p.maxRes.SetValue(s.MaxRes)
			return
		}
	}
}

// ErrorParams converts the error controls into engine parameters for
// images with the given channel count.
func (p *Panel) ErrorParams(channels int) errorvis.Params {
	tint, _ := errorvis.PaletteColor(p.errorColor.String())
	return errorvis.Params{
		Threshold: errorvis.ThresholdFromFraction(p.errorThreshold.Float(), channels),
		Emphasis:  int(p.errorEmphasis.Float()),
		Tint:      tint,
	}
}

func (p *Panel) ErrorColor() string          { return p.errorColor.String() }
func (p *Panel) ErrorThreshold() float64     { return p.errorThreshold.Float() }
func (p *Panel) ErrorEmphasis() int          { return int(p.errorEmphasis.Float()) }
func (p *Panel) OutputRender() string        { return p.outputRender.String() }
func (p *Panel) SplitOutputRender() string   { return p.splitOutputRender.String() }
func (p *Panel) Split() bool                 { return p.split.Checked() }
func (p *Panel) SplitPercentage() float64    { return p.splitPercentage.Float() }
func (p *Panel) TrainUtil() float64          { return p.trainUtil.Float() }
func (p *Panel) MaxRes() int                 { return int(p.maxRes.Float()) }
func (p *Panel) CompositeDepth() bool        { return p.layerDepth.Checked() }
func (p *Panel) Time() float64               { return p.time.Float() }
func (p *Panel) CropViewport() bool          { return p.cropViewport.Checked() }
func (p *Panel) BackgroundColor() color.RGBA { return p.backgroundColor.Color() }

func (p *Panel) SetCropViewport(b bool)          { p.cropViewport.SetValue(b) }
func (p *Panel) SetBackgroundColor(c color.RGBA) { p.backgroundColor.SetValue(c) }
func (p *Panel) SetTime(t float64)               { p.time.SetValue(t) }
