package view

import (
	"image"
	"log/slog"

	"github.com/soocke/compare-viewer/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level application layout and wires UI callbacks.
// It owns high-level subviews but exposes minimal exported fields for presenters.
type RootView struct {
	logger *slog.Logger

	// Subviews
	Panel   *PanelView
	Preview Preview

	// Widgets
	StatusLabel *LabelWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	UpdateRender(img image.Image)
	UpdatePreview(img image.Image, percent float64)
	SetRetrainStatus(text string)
}

var _ UI = (*RootView)(nil)

func NewRootView(logger *slog.Logger) *RootView {
	return &RootView{logger: logger}
}

// Build constructs the layout: the control panel on the left, the previews
// and the retrain status on the right. The panel is empty until widgets are
// installed into rv.Panel.
func (rv *RootView) Build(onExit func()) {
	if rv == nil {
		return
	}
	p := theme.CurrentPalette()
	panelFrame := Frame(Background(p.Surface), Borderwidth(1), Relief("groove"))
	Grid(panelFrame, Row(0), Column(0), Sticky("nsew"), Padx("0.4m"), Pady("0.4m"))
	rv.Panel = NewPanelView(panelFrame, rv.logger)

	right := Frame(Background(p.AppBg))
	Grid(right, Row(0), Column(1), Sticky("new"), Padx("0.4m"), Pady("0.4m"))
	rv.Preview = NewPreview(right, 0)

	rv.StatusLabel = Label(Txt("Retrain: idle"), Anchor("w"), Borderwidth(1), Relief("ridge"), Background(p.Surface), Foreground(p.Accent))
	Grid(rv.StatusLabel, In(right), Row(2), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
	exitBtn := Button(Txt("Exit"), Command(onExit))
	Grid(exitBtn, In(right), Row(3), Column(1), Sticky("e"), Padx("0.2m"), Pady("0.2m"))
}

// UpdateRender proxies to the preview.
func (rv *RootView) UpdateRender(img image.Image) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdateRender(img)
	}
}

// UpdatePreview proxies to the preview.
func (rv *RootView) UpdatePreview(img image.Image, percent float64) {
	if rv != nil && rv.Preview != nil {
		rv.Preview.UpdatePreview(img, percent)
	}
}

// SetRetrainStatus updates the status label text.
func (rv *RootView) SetRetrainStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}
