// Core image value type shared by every pipeline stage
package core

import (
	"bytes"
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// Channels is the only channel count the pipeline accepts (interleaved BGR).
const Channels = 3

// maxDimension guards against allocations that cannot be processed interactively.
const maxDimension = 16384

// Image is an immutable 8-bit BGR pixel grid. The zero value is the empty image.
// Every accessor hands out copies, so an Image can be shared freely between the
// pipeline, the history stack and collaborators without aliasing.
type Image struct {
	width  int
	height int
	pix    []byte
}

// NewImage copies pix (row-major, interleaved BGR) into a new Image.
func NewImage(width, height int, pix []byte) (Image, error) {
	if width <= 0 || height <= 0 {
		return Image{}, fmt.Errorf("%w: invalid image dimensions: %dx%d", ErrInvalidInput, width, height)
	}
	if width > maxDimension || height > maxDimension {
		return Image{}, fmt.Errorf("%w: image too large: %dx%d (max: %d)", ErrInvalidInput, width, height, maxDimension)
	}
	if len(pix) != width*height*Channels {
		return Image{}, fmt.Errorf("%w: pixel buffer has %d bytes, want %d", ErrInvalidInput, len(pix), width*height*Channels)
	}

	owned := make([]byte, len(pix))
	copy(owned, pix)
	return Image{width: width, height: height, pix: owned}, nil
}

// NewUniform returns an image where every pixel is (b, g, r).
func NewUniform(width, height int, b, g, r uint8) (Image, error) {
	if width <= 0 || height <= 0 {
		return Image{}, fmt.Errorf("%w: invalid image dimensions: %dx%d", ErrInvalidInput, width, height)
	}
	pix := make([]byte, width*height*Channels)
	for i := 0; i < len(pix); i += Channels {
		pix[i], pix[i+1], pix[i+2] = b, g, r
	}
	return NewImage(width, height, pix)
}

// FromMat copies an 8-bit 3-channel Mat into an Image. The Mat is not closed.
func FromMat(mat gocv.Mat) (Image, error) {
	if mat.Empty() {
		return Image{}, fmt.Errorf("%w: image is empty", ErrInvalidInput)
	}
	if mat.Type() != gocv.MatTypeCV8UC3 {
		return Image{}, fmt.Errorf("%w: unsupported mat type: %v", ErrInvalidInput, mat.Type())
	}

	data := mat.ToBytes()
	img, err := NewImage(mat.Cols(), mat.Rows(), data)
	if err != nil {
		return Image{}, err
	}
	return img, nil
}

// Mat returns a freshly allocated Mat holding a copy of the pixels.
// The caller owns the Mat and must Close it.
func (img Image) Mat() (gocv.Mat, error) {
	if err := ValidateImage(img); err != nil {
		return gocv.NewMat(), err
	}

	// NewMatFromBytes wraps the Go buffer; clone so the Mat owns its memory.
	wrapped, err := gocv.NewMatFromBytes(img.height, img.width, gocv.MatTypeCV8UC3, img.pix)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("%w: wrapping pixels: %v", ErrInvalidInput, err)
	}
	defer wrapped.Close()
	return wrapped.Clone(), nil
}

func (img Image) Width() int  { return img.width }
func (img Image) Height() int { return img.height }

// Empty reports whether the image has no pixels.
func (img Image) Empty() bool {
	return img.width == 0 || img.height == 0 || len(img.pix) == 0
}

// Bounds mirrors image.Image so the display side can size widgets.
func (img Image) Bounds() image.Rectangle {
	return image.Rect(0, 0, img.width, img.height)
}

// Pix returns a copy of the pixel buffer.
func (img Image) Pix() []byte {
	out := make([]byte, len(img.pix))
	copy(out, img.pix)
	return out
}

// BGR returns the pixel at (x, y).
func (img Image) BGR(x, y int) (b, g, r uint8) {
	i := (y*img.width + x) * Channels
	return img.pix[i], img.pix[i+1], img.pix[i+2]
}

// Equal reports pixel-identical images of identical size.
func (img Image) Equal(other Image) bool {
	return img.width == other.width &&
		img.height == other.height &&
		bytes.Equal(img.pix, other.pix)
}

func (img Image) String() string {
	if img.Empty() {
		return "empty"
	}
	return fmt.Sprintf("%dx%d", img.width, img.height)
}

// ValidateImage rejects images the kernels cannot process.
func ValidateImage(img Image) error {
	if img.Empty() {
		return fmt.Errorf("%w: image is empty", ErrInvalidInput)
	}
	if img.width > maxDimension || img.height > maxDimension {
		return fmt.Errorf("%w: image too large: %dx%d (max: %d)", ErrInvalidInput, img.width, img.height, maxDimension)
	}
	if len(img.pix) != img.width*img.height*Channels {
		return fmt.Errorf("%w: corrupt pixel buffer", ErrInvalidInput)
	}
	return nil
}
