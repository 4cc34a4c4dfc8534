// Image file decoding and encoding through OpenCV
package imageio

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"photo-adjust/internal/core"
)

var supportedExtensions = []string{".jpg", ".jpeg", ".png", ".bmp", ".tif", ".tiff"}

// SupportedExtensions lists the accepted file extensions, lower case with dot.
func SupportedExtensions() []string {
	return slices.Clone(supportedExtensions)
}

// IsSupported reports whether path has a supported image extension.
func IsSupported(path string) bool {
	return slices.Contains(supportedExtensions, strings.ToLower(filepath.Ext(path)))
}

// Loader handles image file operations
type Loader struct {
	logger *logrus.Logger
}

func NewLoader(logger *logrus.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load decodes the file at path as a 3-channel BGR image.
func (l *Loader) Load(path string) (core.Image, error) {
	l.logger.WithField("path", path).Debug("IO: Loading image")

	if !IsSupported(path) {
		return core.Image{}, fmt.Errorf("%w: unsupported image format: %s", core.ErrInvalidInput, path)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	defer mat.Close()
	if mat.Empty() {
		return core.Image{}, fmt.Errorf("%w: failed to load image: %s", core.ErrInvalidInput, path)
	}

	img, err := core.FromMat(mat)
	if err != nil {
		return core.Image{}, fmt.Errorf("load %s: %w", path, err)
	}

	l.logger.WithFields(logrus.Fields{
		"path":   path,
		"width":  img.Width(),
		"height": img.Height(),
	}).Info("IO: Image loaded")
	return img, nil
}

// Decode decodes an encoded image held in memory.
func (l *Loader) Decode(data []byte) (core.Image, error) {
	if len(data) == 0 {
		return core.Image{}, fmt.Errorf("%w: no image data", core.ErrInvalidInput)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return core.Image{}, fmt.Errorf("%w: decode: %v", core.ErrInvalidInput, err)
	}
	defer mat.Close()
	if mat.Empty() {
		return core.Image{}, fmt.Errorf("%w: undecodable image data", core.ErrInvalidInput)
	}
	return core.FromMat(mat)
}

// Save encodes img to path; the format follows the extension.
func (l *Loader) Save(img core.Image, path string) error {
	l.logger.WithField("path", path).Debug("IO: Saving image")

	if !IsSupported(path) {
		return fmt.Errorf("%w: unsupported image format: %s", core.ErrInvalidInput, path)
	}
	mat, err := img.Mat()
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	defer mat.Close()

	if !gocv.IMWrite(path, mat) {
		return fmt.Errorf("failed to save image: %s", path)
	}

	l.logger.WithFields(logrus.Fields{
		"path":   path,
		"width":  img.Width(),
		"height": img.Height(),
	}).Info("IO: Image saved")
	return nil
}

// Encode returns img encoded in the format named by ext, e.g. ".png".
func (l *Loader) Encode(img core.Image, ext string) ([]byte, error) {
	ext = strings.ToLower(ext)
	if !slices.Contains(supportedExtensions, ext) {
		return nil, fmt.Errorf("%w: unsupported image format: %s", core.ErrInvalidInput, ext)
	}
	mat, err := img.Mat()
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	defer mat.Close()

	buf, err := gocv.IMEncode(gocv.FileExt(ext), mat)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", ext, err)
	}
	defer buf.Close()
	return slices.Clone(buf.GetBytes()), nil
}
