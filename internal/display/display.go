// Package display converts rendered BGR images into something a screen or a
// preview file can show.
package display

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/imgio"
	"golang.org/x/image/draw"

	"photo-adjust/internal/core"
)

// ToRGBA converts img from BGR to an opaque RGBA image.
func ToRGBA(img core.Image) (*image.RGBA, error) {
	mat, err := img.Mat()
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	converted, err := mat.ToImage()
	if err != nil {
		return nil, fmt.Errorf("display conversion: %w", err)
	}
	if rgba, ok := converted.(*image.RGBA); ok {
		return rgba, nil
	}

	rgba := image.NewRGBA(converted.Bounds())
	draw.Draw(rgba, rgba.Bounds(), converted, converted.Bounds().Min, draw.Src)
	return rgba, nil
}

// FitSize returns the largest size with the aspect ratio of w x h that fits in
// maxW x maxH. Images already inside the box are not enlarged.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= maxW && h <= maxH {
		return w, h
	}
	scale := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	return max(1, int(float64(w)*scale+0.5)), max(1, int(float64(h)*scale+0.5))
}

// Fit converts img to RGBA and scales it down to fit maxW x maxH.
func Fit(img core.Image, maxW, maxH int) (*image.RGBA, error) {
	if maxW <= 0 || maxH <= 0 {
		return nil, fmt.Errorf("%w: fit box %dx%d", core.ErrInvalidInput, maxW, maxH)
	}
	src, err := ToRGBA(img)
	if err != nil {
		return nil, err
	}

	w, h := FitSize(img.Width(), img.Height(), maxW, maxH)
	if w == img.Width() && h == img.Height() {
		return src, nil
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst, nil
}

// SavePreview writes a PNG preview of img no larger than maxW x maxH.
func SavePreview(path string, img core.Image, maxW, maxH int) error {
	preview, err := Fit(img, maxW, maxH)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, preview, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("save preview %s: %w", path, err)
	}
	return nil
}
