package errorvis

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

// uniform builds a w x h raster with every channel set to v.
func uniform(w, h, c int, v uint8) Raster {
	r := NewRaster(w, h, c)
	for i := range r.Pix {
		r.Pix[i] = v
	}
	return r
}

func TestHighlight_IdenticalImagesUnchanged(t *testing.T) {
	a := uniform(3, 2, 3, 90)
	a.Pix[4] = 200
	res, err := Highlight(a, a.Clone(), Params{Threshold: 70})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range a.Pix {
		if res.Image.Pix[i] != a.Pix[i] {
			t.Fatalf("pixel byte %d changed: got %d expected %d", i, res.Image.Pix[i], a.Pix[i])
		}
	}
	if res.BeyondPercent != 0 {
		t.Fatalf("expected 0%% beyond threshold, got %v", res.BeyondPercent)
	}
}

func TestHighlight_SinglePixelScenario(t *testing.T) {
	a := uniform(2, 2, 3, 100)
	b := a.Clone()
	// pixel (1,0) differs by (10,10,10)
	for k := 0; k < 3; k++ {
		b.Pix[3+k] = 110
	}
	mags, err := Magnitude(a, b)
	if err != nil {
		t.Fatalf("magnitude: %v", err)
	}
	if math.Abs(mags[1]-math.Sqrt(300)) > 1e-9 {
		t.Fatalf("expected magnitude sqrt(300), got %v", mags[1])
	}
	res, err := Highlight(a, b, Params{Threshold: 70})
	if err != nil {
		t.Fatalf("highlight: %v", err)
	}
	want := uint8(math.Round(100 * (1 - math.Sqrt(300)/70)))
	if want != 75 {
		t.Fatalf("test arithmetic drifted: %d", want)
	}
	for k := 0; k < 3; k++ {
		if got := res.Image.Pix[3+k]; got != want {
			t.Fatalf("channel %d: got %d expected %d", k, got, want)
		}
	}
	for _, px := range []int{0, 2, 3} {
		for k := 0; k < 3; k++ {
			if got := res.Image.Pix[px*3+k]; got != 100 {
				t.Fatalf("pixel %d channel %d touched: %d", px, k, got)
			}
		}
	}
}

func TestHighlight_SaturatesToBlackAtThreshold(t *testing.T) {
	a := uniform(1, 1, 3, 200)
	b := uniform(1, 1, 3, 0)
	res, err := Highlight(a, b, Params{Threshold: 10})
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range res.Image.Pix {
		if v != 0 {
			t.Fatalf("channel %d expected 0 got %d", k, v)
		}
	}
	if res.BeyondPercent != 100 {
		t.Fatalf("expected 100%% beyond, got %v", res.BeyondPercent)
	}
}

func TestMagnitude_Symmetric(t *testing.T) {
	a := NewRaster(4, 3, 3)
	b := NewRaster(4, 3, 3)
	for i := range a.Pix {
		a.Pix[i] = uint8(i * 7)
		b.Pix[i] = uint8(255 - i*5)
	}
	ab, err := Magnitude(a, b)
	if err != nil {
		t.Fatal(err)
	}
	ba, _ := Magnitude(b, a)
	for i := range ab {
		if ab[i] != ba[i] {
			t.Fatalf("magnitude not symmetric at %d: %v vs %v", i, ab[i], ba[i])
		}
	}
	r1, _ := Highlight(a, b, Params{Threshold: 300})
	r2, _ := Highlight(b, a, Params{Threshold: 300})
	same := true
	for i := range r1.Image.Pix {
		if r1.Image.Pix[i] != r2.Image.Pix[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("blended images should differ because the base image differs")
	}
}

func TestHighlight_ShapeMismatch(t *testing.T) {
	_, err := Highlight(NewRaster(4, 4, 3), NewRaster(4, 4, 4), Params{Threshold: 70})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
	_, err = Highlight(NewRaster(4, 4, 3), NewRaster(4, 5, 3), Params{Threshold: 70})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch for height, got %v", err)
	}
}

func TestHighlight_EmphasisBoostsSmallErrors(t *testing.T) {
	a := uniform(1, 1, 3, 200)
	b := uniform(1, 1, 3, 190)
	plain, _ := Highlight(a, b, Params{Threshold: 100})
	boosted, _ := Highlight(a, b, Params{Threshold: 100, Emphasis: EmphasisMax})
	if boosted.Image.Pix[0] >= plain.Image.Pix[0] {
		t.Fatalf("emphasis should darken more: plain=%d boosted=%d", plain.Image.Pix[0], boosted.Image.Pix[0])
	}
}

func TestHighlight_TintTarget(t *testing.T) {
	a := uniform(1, 1, 3, 0)
	b := uniform(1, 1, 3, 255)
	yellow, ok := PaletteColor("yellow")
	if !ok {
		t.Fatal("yellow missing from palette")
	}
	res, _ := Highlight(a, b, Params{Threshold: 1, Tint: yellow})
	got := res.Image.At(0, 0)
	if got[0] != 255 || got[1] != 255 || got[2] != 0 {
		t.Fatalf("expected saturated yellow, got %v", got)
	}
}

func TestThresholdFromFraction(t *testing.T) {
	if got := ThresholdFromFraction(1, 3); math.Abs(got-255*math.Sqrt(3)) > 1e-9 {
		t.Fatalf("full fraction: got %v", got)
	}
	if got := ThresholdFromFraction(-1, 3); got != 0 {
		t.Fatalf("negative fraction should clamp to 0, got %v", got)
	}
}

func TestFromImage_Channels(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if got := FromImage(rgba).Channels; got != 3 {
		t.Fatalf("RGBA expected 3 channels, got %d", got)
	}
	nrgba := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	nrgba.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 40})
	r := FromImage(nrgba)
	if r.Channels != 4 {
		t.Fatalf("NRGBA expected 4 channels, got %d", r.Channels)
	}
	if px := r.At(1, 1); px[0] != 10 || px[3] != 40 {
		t.Fatalf("unexpected pixel %v", px)
	}
	if got := FromImage(image.NewGray(image.Rect(0, 0, 1, 1))).Channels; got != 1 {
		t.Fatalf("Gray expected 1 channel, got %d", got)
	}
}

func TestAcquireMags_Resizes(t *testing.T) {
	small := acquireMags(4)
	recycleMags(small)
	big := acquireMags(64)
	if len(*big) != 64 {
		t.Fatalf("got len %d expected 64", len(*big))
	}
	recycleMags(big)
	again := acquireMags(8)
	if len(*again) != 8 {
		t.Fatalf("got len %d expected 8", len(*again))
	}
	recycleMags(again)
	recycleMags(nil)
}
