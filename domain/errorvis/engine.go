// Package errorvis turns two renders of the same viewpoint into an image that
// highlights where they disagree.
//
// The base operation darkens every pixel of the first image in proportion to
// its colour distance from the second, saturating to the target colour once
// the distance reaches the threshold. Emphasis and tint are optional
// refinements whose zero values leave the base operation untouched.
package errorvis

import (
	"errors"
	"fmt"
	"image/color"
	"math"
)

// ErrShapeMismatch reports two images whose width, height or channel count differ.
var ErrShapeMismatch = errors.New("errorvis: image shapes do not match")

const (
	// EmphasisMax bounds Params.Emphasis.
	EmphasisMax = 10
	// minThreshold stands in for a zero threshold so any error saturates.
	minThreshold = 1e-9
)

// Params configures Highlight.
type Params struct {
	// Threshold is the magnitude (in 8-bit channel units) at which a pixel
	// is fully replaced by the target colour.
	Threshold float64
	// Emphasis in [0, EmphasisMax] raises the normalized error to
	// 1/(1+Emphasis/EmphasisMax) before blending, boosting small errors.
	Emphasis int
	// Tint is the colour error pixels fade towards. The zero value (black,
	// zero alpha) gives plain darkening.
	Tint color.RGBA
}

// Result is the output of Highlight.
type Result struct {
	Image Raster
	// BeyondPercent is the share of pixels, 0..100, whose magnitude reached
	// the threshold.
	BeyondPercent float64
}

// ThresholdFromFraction maps a 0..1 fraction of the largest possible colour
// distance for the given channel count into magnitude units.
func ThresholdFromFraction(f float64, channels int) float64 {
	if channels < 1 {
		channels = 1
	}
	if f < 0 {
		f = 0
	}
	if f > 1 {
		f = 1
	}
	return f * 255 * math.Sqrt(float64(channels))
}

// Magnitude returns the per-pixel Euclidean colour distance between a and b,
// row-major. Differences are taken in int arithmetic so 8-bit values cannot
// wrap around.
func Magnitude(a, b Raster) ([]float64, error) {
	if err := checkShape(a, b); err != nil {
		return nil, err
	}
	out := make([]float64, a.Width*a.Height)
	magnitudeInto(out, a, b)
	return out, nil
}

func checkShape(a, b Raster) error {
	if !a.SameShape(b) {
		return fmt.Errorf("%w: %dx%dx%d vs %dx%dx%d", ErrShapeMismatch,
			a.Height, a.Width, a.Channels, b.Height, b.Width, b.Channels)
	}
	return nil
}

// magnitudeInto fills out, which holds one entry per pixel.
func magnitudeInto(out []float64, a, b Raster) {
	c := a.Channels
	for i := range out {
		sum := 0
		base := i * c
		for k := 0; k < c; k++ {
			d := int(a.Pix[base+k]) - int(b.Pix[base+k])
			sum += d * d
		}
		out[i] = math.Sqrt(float64(sum))
	}
}

// Highlight compares a against b and returns a copy of a where every pixel
// with non-zero error is blended towards p.Tint by its normalized error.
// Pixels with zero error are copied unchanged.
func Highlight(a, b Raster, p Params) (Result, error) {
	if err := checkShape(a, b); err != nil {
		return Result{}, err
	}
	buf := acquireMags(a.Width * a.Height)
	defer recycleMags(buf)
	mags := *buf
	magnitudeInto(mags, a, b)
	out := a.Clone()
	thr := p.Threshold
	if thr <= 0 {
		thr = minThreshold
	}
	exp := p.exponent()
	target := tintChannels(p.Tint, a.Channels)
	c := a.Channels
	beyond := 0
	for i, m := range mags {
		if m >= thr {
			beyond++
		}
		n := m / thr
		if n > 1 {
			n = 1
		}
		if n <= 0 {
			continue
		}
		if exp != 1 {
			n = math.Pow(n, exp)
		}
		g := 1 - n
		px := out.Pix[i*c : (i+1)*c]
		for k := range px {
			px[k] = clampByte(float64(px[k])*g + float64(target[k])*n)
		}
	}
	res := Result{Image: out}
	if len(mags) > 0 {
		res.BeyondPercent = 100 * float64(beyond) / float64(len(mags))
	}
	return res, nil
}

func (p Params) exponent() float64 {
	e := p.Emphasis
	if e <= 0 {
		return 1
	}
	if e > EmphasisMax {
		e = EmphasisMax
	}
	return 1 / (1 + float64(e)/EmphasisMax)
}

// tintChannels lays the tint out in the raster's channel order.
func tintChannels(t color.RGBA, channels int) []uint8 {
	switch channels {
	case 1:
		return []uint8{color.GrayModel.Convert(t).(color.Gray).Y}
	case 2:
		return []uint8{color.GrayModel.Convert(t).(color.Gray).Y, t.A}
	}
	out := make([]uint8, channels)
	out[0], out[1], out[2] = t.R, t.G, t.B
	if channels > 3 {
		out[3] = t.A
	}
	return out
}

func clampByte(v float64) uint8 {
	v = math.Round(v)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
