package view

import (
	"fmt"
	"image"

	"github.com/soocke/compare-viewer/ui/images"
	"github.com/soocke/compare-viewer/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Preview shows the current render and its error visualization side by
// side, plus the share of pixels beyond the threshold.
type Preview interface {
	UpdateRender(img image.Image)
	UpdatePreview(img image.Image, percent float64)
}

type preview struct {
	renderLabel  *LabelWidget
	errorLabel   *LabelWidget
	percentLabel *LabelWidget
	prevRender   *Img // last Tk photo image instance for the render
	prevError    *Img // last Tk photo image instance for the error view
}

const (
	maxPreviewW = 480
	maxPreviewH = 270
)

// NewPreview creates the preview labels inside parent and grids them at row.
func NewPreview(parent *FrameWidget, row int) Preview {
	p := theme.CurrentPalette()
	placeholder := images.EncodePNG(image.NewRGBA(image.Rect(0, 0, 240, 135)))
	renderPhoto := NewPhoto(Data(placeholder))
	errorPhoto := NewPhoto(Data(placeholder))
	v := &preview{
		renderLabel:  Label(Image(renderPhoto), Borderwidth(1), Relief("sunken")),
		errorLabel:   Label(Image(errorPhoto), Borderwidth(1), Relief("sunken")),
		percentLabel: Label(Txt("Colour Error: -"), Anchor("w"), Background(p.Surface), Foreground(p.Danger)),
		prevRender:   renderPhoto,
		prevError:    errorPhoto,
	}
	Grid(v.renderLabel, In(parent), Row(row), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Grid(v.errorLabel, In(parent), Row(row), Column(1), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	Grid(v.percentLabel, In(parent), Row(row+1), Column(0), Columnspan(2), Sticky("we"), Padx("0.4m"))
	return v
}

func (v *preview) UpdateRender(img image.Image) {
	if v.renderLabel == nil || img == nil {
		return
	}
	v.prevRender = replacePhoto(v.renderLabel, v.prevRender, images.ScaleToFit(img, maxPreviewW, maxPreviewH))
}

func (v *preview) UpdatePreview(img image.Image, percent float64) {
	if v.errorLabel == nil || img == nil {
		return
	}
	v.prevError = replacePhoto(v.errorLabel, v.prevError, images.ScaleToFit(img, maxPreviewW, maxPreviewH))
	v.percentLabel.Configure(Txt(fmt.Sprintf("Colour Error: %.2f%%", percent)))
}

// replacePhoto swaps the label's photo, deleting the previous one so
// obsolete pixel buffers are not retained.
func replacePhoto(lbl *LabelWidget, prev *Img, img image.Image) *Img {
	if prev != nil {
		prev.Delete()
	}
	photo := NewPhoto(Data(images.EncodePNG(img)))
	lbl.Configure(Image(photo))
	return photo
}
