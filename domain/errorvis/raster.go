package errorvis

import (
	"image"
	"image/color"
)

// Raster is an interleaved 8-bit image with an explicit channel count. It
// mirrors the (height, width, channels) arrays the renderers hand around and
// is what the engine compares; two rasters are comparable only when all three
// dimensions agree.
type Raster struct {
	Width    int
	Height   int
	Channels int
	Pix      []uint8
}

// NewRaster allocates a zeroed raster.
func NewRaster(w, h, c int) Raster {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if c < 1 {
		c = 1
	}
	return Raster{Width: w, Height: h, Channels: c, Pix: make([]uint8, w*h*c)}
}

// SameShape reports whether r and o have identical dimensions and channel count.
func (r Raster) SameShape(o Raster) bool {
	return r.Width == o.Width && r.Height == o.Height && r.Channels == o.Channels
}

// At returns the channel values of pixel (x, y).
func (r Raster) At(x, y int) []uint8 {
	i := (y*r.Width + x) * r.Channels
	return r.Pix[i : i+r.Channels]
}

// Clone returns a deep copy.
func (r Raster) Clone() Raster {
	out := r
	out.Pix = append([]uint8(nil), r.Pix...)
	return out
}

// Channels infers the channel count a decoder would report for img.
// Gray models have one channel, models carrying straight alpha have four,
// everything else (JPEG YCbCr, opaque RGBA from PNG RGB) has three.
func Channels(img image.Image) int {
	switch v := img.(type) {
	case *image.Gray, *image.Gray16:
		return 1
	case *image.NRGBA, *image.NRGBA64:
		return 4
	case *image.Paletted:
		for _, c := range v.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				return 4
			}
		}
		return 3
	}
	return 3
}

// FromImage converts a decoded image into a Raster using its natural channel count.
func FromImage(img image.Image) Raster {
	if img == nil {
		return Raster{}
	}
	b := img.Bounds()
	c := Channels(img)
	out := NewRaster(b.Dx(), b.Dy(), c)
	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			switch c {
			case 1:
				g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
				out.Pix[i] = g.Y
			case 4:
				n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
				out.Pix[i], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = n.R, n.G, n.B, n.A
			default:
				cr, cg, cb, _ := img.At(x, y).RGBA()
				out.Pix[i], out.Pix[i+1], out.Pix[i+2] = uint8(cr>>8), uint8(cg>>8), uint8(cb>>8)
			}
			i += c
		}
	}
	return out
}

// ToImage converts r back into a standard library image of matching depth.
func (r Raster) ToImage() image.Image {
	rect := image.Rect(0, 0, r.Width, r.Height)
	switch r.Channels {
	case 1:
		g := image.NewGray(rect)
		copy(g.Pix, r.Pix)
		return g
	case 4:
		n := image.NewNRGBA(rect)
		copy(n.Pix, r.Pix)
		return n
	}
	out := image.NewRGBA(rect)
	for p, q := 0, 0; p < len(r.Pix); p, q = p+r.Channels, q+4 {
		if r.Channels < 3 {
			v := r.Pix[p]
			out.Pix[q], out.Pix[q+1], out.Pix[q+2], out.Pix[q+3] = v, v, v, 0xff
			continue
		}
		out.Pix[q], out.Pix[q+1], out.Pix[q+2], out.Pix[q+3] = r.Pix[p], r.Pix[p+1], r.Pix[p+2], 0xff
	}
	return out
}
