package view

import (
	"image"

	"github.com/soocke/roi-ocr-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ImagePreview shows a thumbnail of the image under the cursor.
type ImagePreview interface {
	Show(img image.Image)
	Reset()
}

type imagePreview struct {
	label     *LabelWidget
	maxW      int
	maxH      int
	prevPhoto *Img // last Tk photo, deleted before it is replaced
}

// NewImagePreview creates the preview label inside parent at (row, col).
func NewImagePreview(parent *FrameWidget, row, col, maxW, maxH int) ImagePreview {
	if maxW < 50 {
		maxW = 50
	}
	if maxH < 50 {
		maxH = 50
	}
	v := &imagePreview{maxW: maxW, maxH: maxH}
	v.prevPhoto = NewPhoto(Data(images.EncodePNG(images.Placeholder(maxW, maxH/2))))
	v.label = Label(Image(v.prevPhoto), Borderwidth(1), Relief("sunken"))
	Grid(v.label, In(parent), Row(row), Column(col), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	return v
}

func (v *imagePreview) Show(img image.Image) {
	if v == nil || v.label == nil || img == nil {
		return
	}
	scaled := images.ScaleToFit(img, v.maxW, v.maxH)
	v.replace(images.EncodePNG(scaled))
}

func (v *imagePreview) Reset() {
	if v == nil || v.label == nil {
		return
	}
	v.replace(images.EncodePNG(images.Placeholder(v.maxW, v.maxH/2)))
}

func (v *imagePreview) replace(pngBytes []byte) {
	if v.prevPhoto != nil {
		v.prevPhoto.Delete()
	}
	v.prevPhoto = NewPhoto(Data(pngBytes))
	v.label.Configure(Image(v.prevPhoto))
}
