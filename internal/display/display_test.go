package display

import (
	"path/filepath"
	"testing"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-adjust/internal/core"
)

func TestToRGBASwapsChannels(t *testing.T) {
	img, err := core.NewUniform(3, 2, 10, 20, 30)
	require.NoError(t, err)

	rgba, err := ToRGBA(img)
	require.NoError(t, err)
	assert.Equal(t, 3, rgba.Bounds().Dx())
	assert.Equal(t, 2, rgba.Bounds().Dy())
	assert.Equal(t, []uint8{30, 20, 10, 255}, rgba.Pix[0:4])

	pix := []byte{1, 2, 3, 4, 5, 6}
	pair, err := core.NewImage(2, 1, pix)
	require.NoError(t, err)
	rgba, err = ToRGBA(pair)
	require.NoError(t, err)
	assert.Equal(t, []uint8{3, 2, 1, 255, 6, 5, 4, 255}, rgba.Pix[:8])

	_, err = ToRGBA(core.Image{})
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{100, 50, 200, 200, 100, 50},
		{400, 200, 200, 200, 200, 100},
		{200, 400, 200, 200, 100, 200},
		{1000, 1, 10, 10, 10, 1},
	}
	for _, tt := range tests {
		w, h := FitSize(tt.w, tt.h, tt.maxW, tt.maxH)
		assert.Equal(t, tt.wantW, w)
		assert.Equal(t, tt.wantH, h)
	}
}

func TestFit(t *testing.T) {
	img, err := core.NewUniform(40, 20, 50, 100, 150)
	require.NoError(t, err)

	out, err := Fit(img, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, out.Bounds().Dx())
	assert.Equal(t, 5, out.Bounds().Dy())
	for i, want := range []uint8{150, 100, 50, 255} {
		assert.InDelta(t, want, out.Pix[i], 1)
	}

	_, err = Fit(img, 0, 10)
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}

func TestSavePreview(t *testing.T) {
	img, err := core.NewUniform(30, 30, 0, 0, 255)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "preview.png")
	require.NoError(t, SavePreview(path, img, 12, 12))

	back, err := imgio.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 12, back.Bounds().Dx())
	r, g, b, _ := back.At(0, 0).RGBA()
	assert.InDelta(t, 0xffff, r, 0x101)
	assert.InDelta(t, 0, g, 0x101)
	assert.InDelta(t, 0, b, 0x101)
}
