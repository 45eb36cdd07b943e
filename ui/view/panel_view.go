package view

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/soocke/compare-viewer/ui/theme"
	"github.com/soocke/compare-viewer/ui/widget"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// PanelView renders control-panel elements as rows of Tk widgets. It is a
// widget.Surface: rows are created on Install and refreshed in place on
// Update. Choice elements and checkboxes use a combobox and commit
// immediately; numeric, color and vector fields are text boxes committed by
// the Apply Changes button.
type PanelView struct {
	logger   *slog.Logger
	parent   *FrameWidget
	rows     []*panelRow
	applyBtn *ButtonWidget
	applyRow int
}

type panelRow struct {
	w      widget.Widget
	row    int
	label  *LabelWidget
	text   *TextWidget
	combo  *TComboboxWidget
	button *ButtonWidget
	values []string
}

var _ widget.Surface = (*PanelView)(nil)

// NewPanelView creates an empty panel inside parent.
func NewPanelView(parent *FrameWidget, logger *slog.Logger) *PanelView {
	return &PanelView{logger: logger, parent: parent}
}

func (v *PanelView) Install(w widget.Widget) {
	if v == nil || w == nil {
		return
	}
	r := &panelRow{w: w, row: len(v.rows)}
	v.rows = append(v.rows, r)
	v.placeApply()
	v.refresh(r)
}

func (v *PanelView) Update(w widget.Widget) {
	if v == nil || w == nil {
		return
	}
	for _, r := range v.rows {
		if r.w == w {
			v.refresh(r)
			return
		}
	}
}

// refresh builds, updates or tears down the Tk widgets of one row so they
// match the element state.
func (v *PanelView) refresh(r *panelRow) {
	if r.w.Hidden() {
		r.destroy()
		return
	}
	if r.label == nil && r.button == nil {
		v.build(r)
	}
	state := "normal"
	if r.w.Disabled() {
		state = "disabled"
	}
	switch {
	case r.button != nil:
		r.button.Configure(State(state))
	case r.combo != nil:
		values := choices(r.w)
		if !slices.Equal(values, r.values) {
			r.combo.Configure(Values(values))
			r.values = values
		}
		if i := slices.Index(values, widget.FormatText(r.w)); i >= 0 {
			r.combo.Current(i)
		}
		r.combo.Configure(State(state))
	case r.text != nil:
		r.text.Configure(State("normal"))
		r.text.Delete("1.0", END)
		r.text.Insert("1.0", widget.FormatText(r.w))
		r.text.Configure(State(state))
	}
}

func (v *PanelView) build(r *panelRow) {
	p := theme.CurrentPalette()
	if r.w.Kind() == widget.KindButton {
		b, _ := r.w.(*widget.Button)
		r.button = Button(Txt(r.w.Name()), Background(p.Primary), Foreground("white"), Command(func() {
			if b != nil {
				b.Click()
			}
		}))
		Grid(r.button, In(v.parent), Row(r.row), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		return
	}
	r.label = Label(Txt(r.w.Name()), Anchor("w"), Background(p.Surface), Foreground(p.Text))
	Grid(r.label, In(v.parent), Row(r.row), Column(0), Sticky("w"), Padx("0.4m"), Pady("0.15m"))
	switch r.w.Kind() {
	case widget.KindCheckbox, widget.KindDropdown, widget.KindButtonGroup:
		r.values = choices(r.w)
		r.combo = TCombobox(Values(r.values), Width(16))
		Grid(r.combo, In(v.parent), Row(r.row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
		Bind(r.combo, "<<ComboboxSelected>>", Command(func() { v.selected(r) }))
	default:
		r.text = Text(Height(1), Width(16))
		Grid(r.text, In(v.parent), Row(r.row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.15m"))
	}
}

func (r *panelRow) destroy() {
	if r.label != nil {
		Destroy(r.label)
	}
	if r.text != nil {
		Destroy(r.text)
	}
	if r.combo != nil {
		Destroy(r.combo)
	}
	if r.button != nil {
		Destroy(r.button)
	}
	r.label, r.text, r.combo, r.button = nil, nil, nil, nil
	r.values = nil
}

func (v *PanelView) placeApply() {
	if v.applyBtn == nil {
		v.applyBtn = Button(Txt("Apply Changes"), Command(v.ApplyChanges))
	}
	v.applyRow = len(v.rows)
	Grid(v.applyBtn, In(v.parent), Row(v.applyRow), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"), Pady("0.3m"))
}

func (v *PanelView) selected(r *panelRow) {
	if r.combo == nil {
		return
	}
	idx, err := strconv.Atoi(r.combo.Current(nil))
	if err != nil || idx < 0 || idx >= len(r.values) {
		if v.logger != nil {
			v.logger.Error("panel selection parse error", "name", r.w.Name(), "error", err)
		}
		return
	}
	v.commit(r, r.values[idx])
}

// ApplyChanges commits every edited text field, top to bottom.
func (v *PanelView) ApplyChanges() {
	if v == nil {
		return
	}
	for _, r := range v.rows {
		if r.text == nil || r.w.Disabled() {
			continue
		}
		s := strings.TrimSpace(strings.Join(r.text.Get("1.0", END), ""))
		if s == widget.FormatText(r.w) {
			continue
		}
		v.commit(r, s)
	}
}

func (v *PanelView) commit(r *panelRow, s string) {
	raw, err := widget.ParseText(r.w, s)
	if err == nil {
		err = widget.Assign(r.w, raw)
	}
	if err != nil {
		if v.logger != nil {
			v.logger.Warn("panel value rejected", "name", r.w.Name(), "value", s, "error", err)
		}
		// Restore the committed value.
		v.refresh(r)
	}
}

func choices(w widget.Widget) []string {
	if w.Kind() == widget.KindCheckbox {
		return []string{"false", "true"}
	}
	return w.Options()
}
