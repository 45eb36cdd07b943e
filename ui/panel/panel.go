// Package panel holds every control of the viewer's control panel, wires
// their change callbacks and recomputes dependent visibility after each
// change. All methods must be called from one goroutine.
package panel

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soocke/compare-viewer/domain/crop"
	"github.com/soocke/compare-viewer/domain/errorvis"
	"github.com/soocke/compare-viewer/ui/model"
	"github.com/soocke/compare-viewer/ui/registry"
	"github.com/soocke/compare-viewer/ui/widget"
)

// Tags used for bulk visibility changes.
const (
	TagColormap      = "colormap"
	TagSplit         = "split"
	TagSplitColormap = "split_colormap"
	TagCrop          = "crop"
	TagTime          = "time"
	TagError         = "error"
	TagErrorInput    = "error_input"
)

const notSet = "not set"

// ErrPipelineCount is returned when a pipeline count other than 1 or 2 is requested.
var ErrPipelineCount = errors.New("panel: pipeline count must be 1 or 2")

// Options configures a Panel. Every callback may be nil.
type Options struct {
	TimeEnabled           bool
	PipelineCount         int
	DataLocation          string // error controls are only offered when set
	ScaleRatio            float64
	DefaultCompositeDepth bool
	TrainUtil             float64 // initial train util; 0 means the Mid preset
	MaxRes                int     // initial max res; 0 means the Mid preset

	ErrorThreshold float64 // 0..1 slider fraction
	ErrorEmphasis  int
	ErrorColor     string

	Rerender          func()
	UpdateOutput      func(output string)
	UpdateSplitOutput func(output string)
	EditViewpoints    func()
	Retrain           func()
	// HandleChanged is called whenever the crop handle moves or changes visibility.
	HandleChanged func(crop.Handle)

	Clients ClientSource
	Logger  *slog.Logger
}

// Panel owns the control widgets and the state they derive from.
type Panel struct {
	opts          Options
	reg           *registry.Registry
	crop          *crop.Sync
	pipelineCount int
	errorControls bool

	trainSpeed *widget.ButtonGroup
	trainUtil  *widget.Slider
	maxRes     *widget.Slider

	outputRender *widget.Dropdown
	colormap     *widget.Dropdown
	layerDepth   *widget.Checkbox
	invert       *widget.Checkbox
	normalize    *widget.Checkbox
	min          *widget.Number
	max          *widget.Number

	split             *widget.Checkbox
	splitPercentage   *widget.Slider
	splitOutputRender *widget.Dropdown
	splitColormap     *widget.Dropdown
	splitInvert       *widget.Checkbox
	splitNormalize    *widget.Checkbox
	splitMin          *widget.Number
	splitMax          *widget.Number

	cropViewport    *widget.Checkbox
	backgroundColor *widget.RGB
	cropCenter      *widget.Vec3
	cropScale       *widget.Vec3
	cropRot         *widget.Vec3

	visualizeError *widget.Checkbox
	errorPercent   *widget.Number
	errorColor     *widget.Dropdown
	errorThreshold *widget.Slider
	errorEmphasis  *widget.Slider
	errorView      *widget.Button
	editViewpoints *widget.Button
	retrain        *widget.Button
	insertCamera   *widget.Button

	time        *widget.Slider
	resetCamera *widget.Button
}

// New builds the panel, registers its widgets into s and applies the
// initial visibility.
func New(s widget.Surface, opts Options) (*Panel, error) {
	if opts.PipelineCount != 1 && opts.PipelineCount != 2 {
		return nil, fmt.Errorf("%w: got %d", ErrPipelineCount, opts.PipelineCount)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	p := &Panel{
		opts:          opts,
		reg:           registry.New(s),
		crop:          crop.NewSync(opts.ScaleRatio, crop.DefaultBox()),
		pipelineCount: opts.PipelineCount,
		errorControls: opts.DataLocation != "",
	}
	p.build()
	p.register()
	p.Recompute()
	return p, nil
}

func (p *Panel) build() {
	rerender := func() { p.rerender() }

	p.trainSpeed = widget.NewButtonGroup("Train Speed", "Preset for train util and max res", "Mid", SpeedNames, func(string) { p.applySpeed() })
	util, res := Speeds[1].TrainUtil, Speeds[1].MaxRes
	if p.opts.TrainUtil > 0 {
		util = p.opts.TrainUtil
	}
	if p.opts.MaxRes > 0 {
		res = float64(p.opts.MaxRes)
	}
	p.trainUtil = widget.NewSlider("Train Util", "Target training utilization, 0.0 is slow, 1.0 is fast. Doesn't affect final render quality", util, 0, 1, 0.05, nil)
	p.maxRes = widget.NewSlider("Max res", "Maximum resolution to render in viewport", res, 64, 2048, 100, func(float64) { rerender() })

	p.outputRender = widget.NewDropdown("Output type", "The output to render", notSet, []string{notSet}, func(v string) {
		p.Recompute()
		if p.opts.UpdateOutput != nil {
			p.opts.UpdateOutput(v)
		}
		rerender()
	})
	p.colormap = widget.NewDropdown("Colormap", "The colormap to use", "default", []string{"default"}, func(string) { rerender() })
	p.layerDepth = widget.NewCheckbox("Composite depth", "Allow the render to occlude 3D browser objects", p.opts.DefaultCompositeDepth, func(bool) { rerender() })
	p.invert = widget.NewCheckbox("Invert", "Invert the colormap", false, func(bool) { rerender() })
	p.normalize = widget.NewCheckbox("Normalize", "Normalize the colormap", true, func(bool) { rerender() })
	p.min = widget.NewNumber("Min", "Min value of the colormap", 0, func(float64) { rerender() })
	p.max = widget.NewNumber("Max", "Max value of the colormap", 1, func(float64) { rerender() })

	p.split = widget.NewCheckbox("Enable split", "Render two outputs", false, func(bool) {
		p.Recompute()
		rerender()
	})
	p.splitPercentage = widget.NewSlider("Split percentage", "Where to split", 0.5, 0, 1, 0.01, func(float64) { rerender() })
	p.splitOutputRender = widget.NewDropdown("Output render split", "The second output", notSet, []string{notSet}, func(v string) {
		p.Recompute()
		if p.opts.UpdateSplitOutput != nil {
			p.opts.UpdateSplitOutput(v)
		}
		rerender()
	})
	p.splitColormap = widget.NewDropdown("Split colormap", "Colormap of the second output", "default", []string{"default"}, func(string) { rerender() })
	p.splitInvert = widget.NewCheckbox("Split invert", "Invert the colormap of the second output", false, func(bool) { rerender() })
	p.splitNormalize = widget.NewCheckbox("Split normalize", "Normalize the colormap of the second output", true, func(bool) { rerender() })
	p.splitMin = widget.NewNumber("Split min", "Min value of the colormap of the second output", 0, func(float64) { rerender() })
	p.splitMax = widget.NewNumber("Split max", "Max value of the colormap of the second output", 1, func(float64) { rerender() })

	p.cropViewport = widget.NewCheckbox("Enable crop", "Crop the scene to a specified box", false, func(bool) {
		p.Recompute()
		rerender()
	})
	p.backgroundColor = widget.NewRGB("Background color", "Color of the background", color.RGBA{R: 38, G: 42, B: 55, A: 255}, func(color.RGBA) { rerender() })
	box := p.crop.Box()
	p.cropCenter = widget.NewVec3("Crop center", "Center of the crop box", box.Center, 0.01, func(v r3.Vec) {
		p.crop.SetCenter(v)
		p.handleChanged()
		rerender()
	})
	p.cropRot = widget.NewVec3("Crop rotation", "Rotation of the crop box", box.RPY, 0.01, func(v r3.Vec) {
		p.crop.SetRotation(v)
		p.handleChanged()
		rerender()
	})
	p.cropScale = widget.NewVec3("Crop scale", "Size of the crop box.", box.Scale, 0.01, func(v r3.Vec) {
		p.crop.SetScale(v)
		rerender()
	})

	p.visualizeError = widget.NewCheckbox("Photometric Error", "Visualise the photometric error", true, func(bool) { rerender() })
	p.errorPercent = widget.NewNumber("Colour Error %", "Displays the percentage of error between colours beyond the threshold", 0, nil)
	p.errorPercent.SetDisabled(true)
	colorName := p.opts.ErrorColor
	if _, ok := errorvis.PaletteColor(colorName); !ok {
		colorName = errorvis.PaletteNames[0]
	}
	p.errorColor = widget.NewDropdown("Error colour", "Select colour for error", colorName, errorvis.PaletteNames, func(string) { rerender() })
	p.errorThreshold = widget.NewSlider("Threshold", "Adjust error threshold", p.opts.ErrorThreshold, 0, 1, 0.1, func(float64) { rerender() })
	p.errorEmphasis = widget.NewSlider("Emphasis", "Emphasize error in model", float64(p.opts.ErrorEmphasis), 0, errorvis.EmphasisMax, 1, func(float64) { rerender() })
	p.errorView = widget.NewButton("Toggle Error View", "Switch between one and two pipelines", func() { p.ToggleErrorView() })
	p.editViewpoints = widget.NewButton("Add/Remove Viewpoints", "Open the data folder", func() {
		if p.opts.EditViewpoints != nil {
			p.opts.EditViewpoints()
		}
	})
	p.retrain = widget.NewButton("Retrain Model", "Recompute poses and train a new model", func() {
		if p.opts.Retrain != nil {
			p.opts.Retrain()
		}
	})
	p.insertCamera = widget.NewButton("Insert Camera", "Record the camera of every connected client", func() {
		if _, err := p.InsertCamera(); err != nil {
			p.opts.Logger.Warn("insert camera incomplete", "error", err)
		}
	})

	p.time = widget.NewSlider("Time", "Time to render", 0, 0, 1, 0.01, func(float64) { rerender() })
	p.resetCamera = widget.NewButton("Reset The Direction", "Set the up direction of the camera orbit controls to the camera's current up direction.", func() {
		if err := p.ResetCamera(); err != nil {
			p.opts.Logger.Warn("reset camera incomplete", "error", err)
		}
	})
}

func (p *Panel) register() {
	r := p.reg
	r.Register(p.trainSpeed)
	r.Register(p.trainUtil)

	r.Register(p.maxRes)
	r.Register(p.outputRender)
	r.Register(p.colormap)
	r.Register(p.layerDepth)
	r.Register(p.invert, TagColormap)
	r.Register(p.normalize, TagColormap)
	r.Register(p.min, TagColormap)
	r.Register(p.max, TagColormap)

	r.Register(p.split)
	r.Register(p.splitPercentage, TagSplit)
	r.Register(p.splitOutputRender, TagSplit)
	r.Register(p.splitColormap, TagSplit)
	r.Register(p.splitInvert, TagSplitColormap)
	r.Register(p.splitNormalize, TagSplitColormap)
	r.Register(p.splitMin, TagSplitColormap)
	r.Register(p.splitMax, TagSplitColormap)

	r.Register(p.cropViewport)
	r.Register(p.backgroundColor, TagCrop)
	r.Register(p.cropCenter, TagCrop)
	r.Register(p.cropScale, TagCrop)
	r.Register(p.cropRot, TagCrop)

	if p.errorControls {
		r.Register(p.errorView)
		r.Register(p.visualizeError, TagError, TagErrorInput)
		r.Register(p.errorPercent, TagError)
		r.Register(p.errorColor, TagError, TagErrorInput)
		r.Register(p.errorThreshold, TagError, TagErrorInput)
		r.Register(p.errorEmphasis, TagError, TagErrorInput)
		r.Register(p.editViewpoints)
		r.Register(p.retrain)
		r.Register(p.insertCamera, TagError, TagErrorInput)
	}

	r.Register(p.time, TagTime)
	r.Register(p.resetCamera)
}

// Registry exposes the registered widgets for surfaces that address them by name.
func (p *Panel) Registry() *registry.Registry { return p.reg }

// State returns the current dependency values.
func (p *Panel) State() model.PanelState {
	return model.PanelState{
		OutputRender:      p.outputRender.String(),
		SplitOutputRender: p.splitOutputRender.String(),
		Split:             p.split.Checked(),
		Crop:              p.cropViewport.Checked(),
		PipelineCount:     p.pipelineCount,
		TimeEnabled:       p.opts.TimeEnabled,
	}
}

func (p *Panel) rerender() {
	if p.opts.Rerender != nil {
		p.opts.Rerender()
	}
}

func (p *Panel) handleChanged() {
	if p.opts.HandleChanged != nil {
		p.opts.HandleChanged(p.crop.Handle())
	}
}
