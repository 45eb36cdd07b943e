package model

import "image"

// PreviewModel holds the latest error visualization for display. The zero
// value holds nothing and is usable. No synchronization: written and read
// on the UI tick.
type PreviewModel struct {
	img     image.Image
	percent float64
	seq     uint64
}

// Set stores a new frame and its beyond-threshold percentage.
func (m *PreviewModel) Set(img image.Image, percent float64) {
	if m == nil {
		return
	}
	m.img = img
	m.percent = percent
	m.seq++
}

// Latest returns the current frame, its percentage and a sequence number
// that changes on every Set.
func (m *PreviewModel) Latest() (image.Image, float64, uint64) {
	if m == nil {
		return nil, 0, 0
	}
	return m.img, m.percent, m.seq
}
