package images

import (
	"errors"
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestScaleToFit(t *testing.T) {
	src := solid(400, 200, color.NRGBA{R: 255, A: 255})
	out := ScaleToFit(src, 100, 100)
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 50 {
		t.Fatalf("expected 100x50, got %v", out.Bounds())
	}
	small := solid(10, 10, color.NRGBA{A: 255})
	if ScaleToFit(small, 100, 100) != image.Image(small) {
		t.Fatal("an image that already fits should be returned as is")
	}
	if ScaleToFit(nil, 10, 10) != nil {
		t.Fatal("nil in, nil out")
	}
}

func TestSplit(t *testing.T) {
	red := color.NRGBA{R: 255, A: 255}
	blue := color.NRGBA{B: 255, A: 255}
	out, err := Split(solid(4, 2, red), solid(4, 2, blue), 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if got := out.NRGBAAt(1, 1); got != red {
		t.Fatalf("left half: got %v", got)
	}
	if got := out.NRGBAAt(2, 0); got != blue {
		t.Fatalf("right half: got %v", got)
	}

	all, err := Split(solid(4, 2, red), solid(4, 2, blue), 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := all.NRGBAAt(0, 0); got != blue {
		t.Fatalf("zero fraction should show only the right source, got %v", got)
	}

	if _, err := Split(solid(4, 2, red), solid(3, 2, blue), 0.5); !errors.Is(err, ErrSizeMismatch) {
		t.Fatalf("expected ErrSizeMismatch, got %v", err)
	}
}
