package panel

import "fmt"

// Recompute applies the visibility derived from the current state to every
// dependent widget. It is total and has no failure mode.
func (p *Panel) Recompute() {
	v := p.State().Derive()

	p.colormap.SetDisabled(v.ColormapDisabled)
	p.reg.SetHidden(TagColormap, v.ColormapHidden)
	p.reg.SetHidden(TagSplitColormap, v.SplitColormapHidden)
	p.reg.SetHidden(TagCrop, v.CropHidden)
	p.time.SetHidden(v.TimeHidden)
	p.reg.SetHidden(TagSplit, v.SplitHidden)
	p.splitColormap.SetDisabled(v.SplitColormapDisabled)

	if p.crop.Handle().Visible != v.HandleVisible {
		p.crop.SetVisible(v.HandleVisible)
		p.handleChanged()
	}

	p.reg.SetHidden(TagError, v.ErrorHidden)
	p.reg.SetDisabled(TagErrorInput, v.ErrorDisabled)
	if v.ForceErrorOff {
		p.visualizeError.Force(false)
	}
}

func (p *Panel) PipelineCount() int { return p.pipelineCount }

// SetPipelineCount switches between one and two active pipelines.
func (p *Panel) SetPipelineCount(n int) error {
	if n != 1 && n != 2 {
		return fmt.Errorf("%w: got %d", ErrPipelineCount, n)
	}
	if n == p.pipelineCount {
		return nil
	}
	p.pipelineCount = n
	p.Recompute()
	p.rerender()
	return nil
}

// ToggleErrorView flips the pipeline count between one and two.
func (p *Panel) ToggleErrorView() {
	n := 2
	if p.pipelineCount == 2 {
		n = 1
	}
	_ = p.SetPipelineCount(n)
}

// ErrorViewActive reports whether renders should be passed through the
// error engine: error controls offered, two pipelines and the visualize
// flag on.
func (p *Panel) ErrorViewActive() bool {
	return p.errorControls && p.pipelineCount == 2 && p.visualizeError.Checked()
}

// SetErrorPercentage shows the share of pixels beyond the threshold.
func (p *Panel) SetErrorPercentage(percent float64) {
	p.errorPercent.Force(percent)
}

// SetRetrainEnabled enables or disables the retrain button, e.g. while a
// job runs.
func (p *Panel) SetRetrainEnabled(enabled bool) {
	p.retrain.SetDisabled(!enabled)
}
