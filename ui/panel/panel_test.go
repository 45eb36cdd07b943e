package panel

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/soocke/compare-viewer/domain/crop"
	"github.com/soocke/compare-viewer/domain/errorvis"
	"github.com/soocke/compare-viewer/ui/widget"
)

type nopSurface struct{ installed int }

func (s *nopSurface) Install(widget.Widget) { s.installed++ }
func (s *nopSurface) Update(widget.Widget)  {}

type mockClient struct {
	id  string
	cam Camera
	err error
	up  *r3.Vec
}

func (c *mockClient) ID() string { return c.id }
func (c *mockClient) Camera() (Camera, error) {
	if c.err != nil {
		return Camera{}, c.err
	}
	return c.cam, nil
}
func (c *mockClient) SetUpDirection(up r3.Vec) error {
	if c.err != nil {
		return c.err
	}
	c.up = &up
	return nil
}

type clientList []Client

func (l clientList) Clients() []Client { return l }

func newPanel(t *testing.T, mutate func(*Options)) (*Panel, *int) {
	t.Helper()
	rerenders := 0
	opts := Options{
		PipelineCount:  2,
		DataLocation:   "/data/scene",
		ScaleRatio:     10,
		ErrorThreshold: 0.4,
		ErrorEmphasis:  10,
		ErrorColor:     "yellow",
		Rerender:       func() { rerenders++ },
	}
	if mutate != nil {
		mutate(&opts)
	}
	p, err := New(&nopSurface{}, opts)
	if err != nil {
		t.Fatalf("new panel: %v", err)
	}
	return p, &rerenders
}

func TestNew_RejectsPipelineCount(t *testing.T) {
	for _, n := range []int{0, 3} {
		if _, err := New(nil, Options{PipelineCount: n}); !errors.Is(err, ErrPipelineCount) {
			t.Fatalf("count %d: expected ErrPipelineCount, got %v", n, err)
		}
	}
}

func TestPipelineCount_ErrorCluster(t *testing.T) {
	p, _ := newPanel(t, nil)
	cluster := []widget.Widget{p.visualizeError, p.errorColor, p.errorThreshold, p.errorEmphasis, p.insertCamera}
	for _, w := range cluster {
		if w.Hidden() || w.Disabled() {
			t.Fatalf("%s should be shown and enabled with two pipelines", w.Name())
		}
	}
	if !p.visualizeError.Checked() || !p.ErrorViewActive() {
		t.Fatal("error view should start active with two pipelines")
	}
	if !p.errorPercent.Disabled() {
		t.Fatal("percentage display is read-only")
	}

	if err := p.SetPipelineCount(1); err != nil {
		t.Fatal(err)
	}
	for _, w := range append(cluster, p.errorPercent) {
		if !w.Hidden() {
			t.Fatalf("%s should be hidden with one pipeline", w.Name())
		}
	}
	for _, w := range cluster {
		if !w.Disabled() {
			t.Fatalf("%s should be disabled with one pipeline", w.Name())
		}
	}
	if p.visualizeError.Checked() || p.ErrorViewActive() {
		t.Fatal("visualize flag must be forced off")
	}

	p.ToggleErrorView()
	if p.PipelineCount() != 2 {
		t.Fatalf("toggle should restore two pipelines, got %d", p.PipelineCount())
	}
	for _, w := range cluster {
		if w.Hidden() || w.Disabled() {
			t.Fatalf("%s should be shown again", w.Name())
		}
	}
	if p.visualizeError.Checked() {
		t.Fatal("visualize flag stays off until the user enables it")
	}
}

func TestVisualizeCheckboxOnlyRerenders(t *testing.T) {
	p, rerenders := newPanel(t, nil)
	before := *rerenders
	p.visualizeError.SetValue(false)
	if p.PipelineCount() != 2 {
		t.Fatal("visualize flag must not change the pipeline count")
	}
	if *rerenders != before+1 {
		t.Fatalf("expected one rerender, got %d", *rerenders-before)
	}
}

func TestNoDataLocation_NoErrorControls(t *testing.T) {
	p, _ := newPanel(t, func(o *Options) { o.DataLocation = "" })
	for _, name := range []string{"Threshold", "Retrain Model", "Insert Camera"} {
		if _, ok := p.Registry().Lookup(name); ok {
			t.Fatalf("%s should not be registered without a data location", name)
		}
	}
	if _, ok := p.Registry().Lookup("Reset The Direction"); !ok {
		t.Fatal("reset camera is always registered")
	}
	if p.ErrorViewActive() {
		t.Fatal("error view needs a data location")
	}
}

func TestSetRetrainEnabled(t *testing.T) {
	p, _ := newPanel(t, nil)
	p.SetRetrainEnabled(false)
	if !p.retrain.Disabled() {
		t.Fatal("retrain button should be disabled")
	}
	p.SetRetrainEnabled(true)
	if p.retrain.Disabled() {
		t.Fatal("retrain button should be enabled again")
	}
}

func TestSplitVisibility(t *testing.T) {
	p, _ := newPanel(t, nil)
	if !p.splitPercentage.Hidden() || !p.splitInvert.Hidden() {
		t.Fatal("split controls start hidden")
	}
	if err := p.UpdateOutputOptions([]string{"rgb", "depth"}); err != nil {
		t.Fatal(err)
	}
	p.split.SetValue(true)
	if p.splitPercentage.Hidden() || p.splitOutputRender.Hidden() || p.splitColormap.Hidden() {
		t.Fatal("split controls should show")
	}
	if p.splitInvert.Hidden() {
		t.Fatal("split colormap controls should show for depth")
	}
	if err := p.splitOutputRender.SetValue("rgb"); err != nil {
		t.Fatal(err)
	}
	if !p.splitInvert.Hidden() || !p.splitColormap.Disabled() {
		t.Fatal("split colormap controls should hide for rgb")
	}
	p.split.SetValue(false)
	if !p.splitPercentage.Hidden() || !p.splitInvert.Hidden() {
		t.Fatal("split controls should hide again")
	}
}

func TestUpdateOutputOptions(t *testing.T) {
	var outputs, splitOutputs []string
	p, _ := newPanel(t, func(o *Options) {
		o.UpdateOutput = func(v string) { outputs = append(outputs, v) }
		o.UpdateSplitOutput = func(v string) { splitOutputs = append(splitOutputs, v) }
	})
	if err := p.UpdateOutputOptions([]string{"rgb", "accumulation", "depth"}); err != nil {
		t.Fatal(err)
	}
	if p.OutputRender() != "depth" || p.SplitOutputRender() != "depth" {
		t.Fatalf("expected both outputs to snap to depth, got %s / %s", p.OutputRender(), p.SplitOutputRender())
	}
	if len(outputs) == 0 || outputs[len(outputs)-1] != "depth" || len(splitOutputs) == 0 {
		t.Fatalf("output callbacks not run: %v %v", outputs, splitOutputs)
	}
	if err := p.outputRender.SetValue("rgb"); err != nil {
		t.Fatal(err)
	}
	if !p.colormap.Disabled() || !p.invert.Hidden() || !p.max.Hidden() {
		t.Fatal("colormap controls should be disabled and hidden for rgb")
	}
	if err := p.UpdateOutputOptions(nil); !errors.Is(err, widget.ErrInvalidOption) {
		t.Fatalf("expected ErrInvalidOption, got %v", err)
	}
}

func TestColormapChoices(t *testing.T) {
	if got := ColormapChoices(3, true); len(got) != 1 || got[0] != "default" {
		t.Fatalf("rgb outputs: %v", got)
	}
	got := ColormapChoices(1, true)
	for _, c := range got {
		if c == "default" || c == "pca" {
			t.Fatalf("scalar outputs should not offer %s", c)
		}
	}
	if len(got) != len(Colormaps)-2 {
		t.Fatalf("unexpected scalar choices %v", got)
	}
	if got := ColormapChoices(8, true); len(got) != 1 || got[0] != "pca" {
		t.Fatalf("feature outputs: %v", got)
	}
	if len(Colormaps) != 8 {
		t.Fatal("ColormapChoices must not modify Colormaps")
	}
}

func TestCropSync(t *testing.T) {
	var handles []crop.Handle
	p, rerenders := newPanel(t, func(o *Options) {
		o.HandleChanged = func(h crop.Handle) { handles = append(handles, h) }
	})
	if !p.cropCenter.Hidden() || p.CropHandle().Visible {
		t.Fatal("crop controls start hidden")
	}
	p.SetCropViewport(true)
	if p.cropCenter.Hidden() || p.backgroundColor.Hidden() || !p.CropHandle().Visible {
		t.Fatal("crop controls should show")
	}
	if len(handles) == 0 || !handles[len(handles)-1].Visible {
		t.Fatal("handle visibility change not reported")
	}

	p.cropCenter.SetValue(r3.Vec{X: 1, Y: 2, Z: 3})
	if got := p.CropHandle().Position; got != (r3.Vec{X: 10, Y: 20, Z: 30}) {
		t.Fatalf("handle position %v", got)
	}

	before := *rerenders
	q := crop.FromRPY(0.1, 0.2, 0.3)
	p.HandleMoved(r3.Vec{X: -5, Y: 0, Z: 5}, q)
	if *rerenders != before+1 {
		t.Fatalf("handle move should rerender once, got %d", *rerenders-before)
	}
	c := p.cropCenter.Vec()
	if math.Abs(c.X+0.5) > 1e-9 || math.Abs(c.Z-0.5) > 1e-9 {
		t.Fatalf("center not written back: %v", c)
	}
	rpy := p.cropRot.Vec()
	if math.Abs(rpy.X-0.1) > 1e-9 || math.Abs(rpy.Y-0.2) > 1e-9 || math.Abs(rpy.Z-0.3) > 1e-9 {
		t.Fatalf("rotation not written back: %v", rpy)
	}
	if p.CropBox().Center != c {
		t.Fatal("crop box disagrees with the center field")
	}
}

func TestHandleMovedReportsHandle(t *testing.T) {
	var handles []crop.Handle
	p, _ := newPanel(t, func(o *Options) {
		o.HandleChanged = func(h crop.Handle) { handles = append(handles, h) }
	})
	p.SetCropViewport(true)
	before := len(handles)

	p.HandleMoved(r3.Vec{X: 50, Y: 0, Z: 0}, crop.FromRPY(0, 0, 0.5))
	if len(handles) != before+1 {
		t.Fatalf("got %d handle reports expected 1", len(handles)-before)
	}
	last := handles[len(handles)-1]
	if math.Abs(last.Position.X-50) > 1e-9 || !last.Visible {
		t.Fatalf("got handle %+v expected the dragged position", last)
	}
	if last != p.CropHandle() {
		t.Fatalf("got reported handle %+v expected %+v", last, p.CropHandle())
	}
}

func TestCropFieldsUpdateBeforeRerender(t *testing.T) {
	var p *Panel
	var seen []crop.Box
	var handlePos r3.Vec
	p, _ = newPanel(t, func(o *Options) {
		o.Rerender = func() {
			if p != nil {
				seen = append(seen, p.CropBox())
			}
		}
		o.HandleChanged = func(h crop.Handle) { handlePos = h.Position }
	})
	p.SetCropViewport(true)
	seen = nil

	p.cropCenter.SetValue(r3.Vec{X: 1, Y: 2, Z: 3})
	if len(seen) != 1 || seen[0].Center != (r3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Fatalf("got boxes %+v expected the new center during rerender", seen)
	}
	if handlePos != (r3.Vec{X: 10, Y: 20, Z: 30}) {
		t.Fatalf("got handle %v expected the new center", handlePos)
	}

	p.cropRot.SetValue(r3.Vec{X: 0.1})
	if len(seen) != 2 || math.Abs(seen[1].RPY.X-0.1) > 1e-9 {
		t.Fatalf("got boxes %+v expected the new rotation during rerender", seen)
	}
}

func TestTimeHidden(t *testing.T) {
	p, _ := newPanel(t, nil)
	if !p.time.Hidden() {
		t.Fatal("time hidden for static scenes")
	}
	p, _ = newPanel(t, func(o *Options) { o.TimeEnabled = true })
	if p.time.Hidden() {
		t.Fatal("time shown for dynamic scenes")
	}
}

func TestTrainSpeedPresets(t *testing.T) {
	p, _ := newPanel(t, nil)
	if err := p.trainSpeed.SetValue("Fast"); err != nil {
		t.Fatal(err)
	}
	if p.TrainUtil() != 0.95 || p.MaxRes() != 256 {
		t.Fatalf("fast preset: util=%v maxres=%v", p.TrainUtil(), p.MaxRes())
	}
	if err := p.trainSpeed.SetValue("Slow"); err != nil {
		t.Fatal(err)
	}
	if p.TrainUtil() != 0.5 || p.MaxRes() != 1024 {
		t.Fatalf("slow preset: util=%v maxres=%v", p.TrainUtil(), p.MaxRes())
	}
}

func TestResetCamera_SkipsFailingClient(t *testing.T) {
	gone := &mockClient{id: "gone", err: errors.New("disconnected")}
	ok := &mockClient{id: "ok", cam: Camera{Orientation: quat.Number{Real: 1}}}
	p, _ := newPanel(t, func(o *Options) { o.Clients = clientList{gone, ok} })
	err := p.ResetCamera()
	if err == nil {
		t.Fatal("expected the failure to be reported")
	}
	if ok.up == nil || *ok.up != (r3.Vec{Y: -1}) {
		t.Fatalf("healthy client should get the up direction, got %v", ok.up)
	}
}

func TestInsertCamera(t *testing.T) {
	a := &mockClient{id: "a", cam: Camera{Position: r3.Vec{X: 1}, Orientation: quat.Number{Real: 1}}}
	gone := &mockClient{id: "gone", err: errors.New("disconnected")}
	p, _ := newPanel(t, func(o *Options) { o.Clients = clientList{a, gone} })
	cams, err := p.InsertCamera()
	if len(cams) != 1 || cams[0].Position.X != 1 {
		t.Fatalf("unexpected cameras %v", cams)
	}
	if err == nil {
		t.Fatal("expected the disconnected client to be reported")
	}
}

func TestErrorParams(t *testing.T) {
	p, _ := newPanel(t, nil)
	params := p.ErrorParams(3)
	want := errorvis.ThresholdFromFraction(0.4, 3)
	if math.Abs(params.Threshold-want) > 1e-9 || params.Emphasis != 10 {
		t.Fatalf("unexpected params %+v", params)
	}
	yellow, _ := errorvis.PaletteColor("yellow")
	if params.Tint != yellow {
		t.Fatalf("expected yellow tint, got %v", params.Tint)
	}
	p.SetErrorPercentage(12.5)
	if p.errorPercent.Float() != 12.5 {
		t.Fatal("percentage not stored")
	}
}
