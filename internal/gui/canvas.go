// Rendered image display
package gui

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"photo-adjust/internal/core"
	"photo-adjust/internal/display"
)

// ImageCanvas shows the most recent rendered image, scaled to fit.
type ImageCanvas struct {
	logger *logrus.Logger

	card  *widget.Card
	image *canvas.Image
}

func NewImageCanvas(logger *logrus.Logger) *ImageCanvas {
	placeholder := image.NewRGBA(image.Rect(0, 0, 200, 150))
	for i := 0; i < len(placeholder.Pix); i += 4 {
		placeholder.Pix[i], placeholder.Pix[i+1], placeholder.Pix[i+2], placeholder.Pix[i+3] = 240, 240, 240, 255
	}

	img := canvas.NewImageFromImage(placeholder)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	img.SetMinSize(fyne.NewSize(640, 480))

	return &ImageCanvas{
		logger: logger,
		card:   widget.NewCard("Preview", "No image loaded", img),
		image:  img,
	}
}

func (ic *ImageCanvas) GetContainer() fyne.CanvasObject {
	return ic.card
}

// Update shows img. Must be called on the fyne goroutine.
func (ic *ImageCanvas) Update(img core.Image) {
	rgba, err := display.ToRGBA(img)
	if err != nil {
		ic.logger.WithError(err).Warn("GUI: Cannot display image")
		return
	}
	ic.image.Image = rgba
	ic.image.Refresh()
	ic.card.SetSubTitle(img.String())
}
