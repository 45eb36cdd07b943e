package model

// OutputRGB is the base color output; no colormap applies to it.
const OutputRGB = "rgb"

// PanelState is the set of values the control panel's visibility depends on.
// The zero value describes a single pipeline with everything switched off.
type PanelState struct {
	OutputRender      string
	SplitOutputRender string
	Split             bool
	Crop              bool
	PipelineCount     int
	// TimeEnabled is fixed at construction.
	TimeEnabled bool
}

// Visibility is the derived hidden/disabled state of every dependent control.
type Visibility struct {
	ColormapDisabled      bool
	ColormapHidden        bool // colormap option group
	SplitHidden           bool // split percentage, output and colormap
	SplitColormapHidden   bool
	SplitColormapDisabled bool
	CropHidden            bool
	HandleVisible         bool
	TimeHidden            bool
	// ErrorHidden and ErrorDisabled cover the whole error cluster.
	ErrorHidden   bool
	ErrorDisabled bool
	// ForceErrorOff asks the panel to reset the visualize flag to off.
	ForceErrorOff bool
}

// Derive computes the visibility for s. It is total: every state maps to
// exactly one Visibility.
func (s PanelState) Derive() Visibility {
	rgb := s.OutputRender == OutputRGB
	splitRGB := s.SplitOutputRender == OutputRGB
	twoPipelines := s.PipelineCount == 2
	return Visibility{
		ColormapDisabled:      rgb,
		ColormapHidden:        rgb,
		SplitHidden:           !s.Split,
		SplitColormapHidden:   !s.Split || splitRGB,
		SplitColormapDisabled: splitRGB,
		CropHidden:            !s.Crop,
		HandleVisible:         s.Crop,
		TimeHidden:            !s.TimeEnabled,
		ErrorHidden:           !twoPipelines,
		ErrorDisabled:         !twoPipelines,
		ForceErrorOff:         !twoPipelines,
	}
}
