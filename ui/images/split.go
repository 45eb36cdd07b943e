package images

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

// ErrSizeMismatch is returned by Split when the two halves differ in size.
var ErrSizeMismatch = errors.New("images: split sources differ in size")

// Split composes a split-screen view: columns left of fraction*width come
// from left, the rest from right. fraction is clamped to [0, 1].
func Split(left, right image.Image, fraction float64) (*image.NRGBA, error) {
	if left == nil || right == nil {
		return nil, errors.New("images: nil split source")
	}
	lb, rb := left.Bounds(), right.Bounds()
	if lb.Dx() != rb.Dx() || lb.Dy() != rb.Dy() {
		return nil, ErrSizeMismatch
	}
	fraction = min(max(fraction, 0), 1)
	cut := int(fraction*float64(lb.Dx()) + 0.5)
	if cut == 0 {
		return imaging.Clone(right), nil
	}
	part := imaging.Crop(left, image.Rect(lb.Min.X, lb.Min.Y, lb.Min.X+cut, lb.Max.Y))
	return imaging.Paste(right, part, rb.Min), nil
}
