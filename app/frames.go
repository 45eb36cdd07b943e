package app

import (
	"image"

	"github.com/soocke/compare-viewer/domain/errorvis"
	"github.com/soocke/compare-viewer/domain/render"
	"github.com/soocke/compare-viewer/ui/images"
)

// primary is the frame source of the first pipeline.
func (c *Container) primary() *render.DirSource {
	if len(c.Sources) == 0 {
		return nil
	}
	return c.Sources[0]
}

// secondary is the frame source the error view compares against.
func (c *Container) secondary() *render.DirSource {
	if len(c.Sources) < 2 {
		return nil
	}
	return c.Sources[1]
}

// rerender shows the frame the panel currently selects and hands the frame
// pair of both pipelines to the error presenter. Runs on the panel goroutine.
func (c *Container) rerender() {
	src := c.primary()
	if c.Panel == nil || src == nil {
		return
	}
	t := c.Panel.Time()
	output := c.Panel.OutputRender()
	frame, name, err := src.Frame(output, t)
	if err != nil {
		c.Logger.Warn("render frame", "output", output, "error", err)
		return
	}
	shown := frame
	if c.Panel.Split() {
		shown = c.split(src, frame, t)
	}
	if c.UI != nil {
		c.UI.UpdateRender(shown)
	}
	if other := c.secondary(); other != nil && c.Panel.ErrorViewActive() {
		ref, err := other.Load(output, name)
		if err != nil {
			c.Logger.Warn("reference frame", "output", output, "name", name, "error", err)
			return
		}
		c.ErrorPresenter.Submit(frame, ref)
	}
}

func (c *Container) split(src *render.DirSource, frame image.Image, t float64) image.Image {
	output := c.Panel.SplitOutputRender()
	right, _, err := src.Frame(output, t)
	if err != nil {
		c.Logger.Warn("split frame", "output", output, "error", err)
		return frame
	}
	out, err := images.Split(frame, right, c.Panel.SplitPercentage())
	if err != nil {
		c.Logger.Warn("split", "error", err)
		return frame
	}
	return out
}

// outputShape probes one frame of output for its channel count.
func (c *Container) outputShape(output string) (dims int, floating bool, ok bool) {
	src := c.primary()
	if src == nil {
		return 0, false, false
	}
	img, _, err := src.Frame(output, 0)
	if err != nil {
		return 0, false, false
	}
	_, wide := img.(*image.Gray16)
	return errorvis.Channels(img), wide, true
}

func (c *Container) updateOutput(output string) {
	dims, floating, ok := c.outputShape(output)
	if !ok {
		return
	}
	if err := c.Panel.UpdateColormapOptions(dims, floating); err != nil {
		c.Logger.Warn("colormap options", "output", output, "error", err)
	}
}

func (c *Container) updateSplitOutput(output string) {
	dims, floating, ok := c.outputShape(output)
	if !ok {
		return
	}
	if err := c.Panel.UpdateSplitColormapOptions(dims, floating); err != nil {
		c.Logger.Warn("split colormap options", "output", output, "error", err)
	}
}

// rescan reloads every frame source after the render directories changed
// and refreshes the output choices.
func (c *Container) rescan() {
	for _, src := range c.Sources {
		if err := src.Rescan(); err != nil {
			c.Logger.Warn("rescan frames", "root", src.Root(), "error", err)
		}
	}
	if src := c.primary(); src != nil && c.Panel != nil {
		if err := c.Panel.UpdateOutputOptions(src.Outputs()); err != nil {
			c.Logger.Warn("output options", "error", err)
		}
		c.rerender()
	}
}
