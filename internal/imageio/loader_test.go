package imageio

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-adjust/internal/core"
)

func newLoader() *Loader {
	logger, _ := test.NewNullLogger()
	return NewLoader(logger)
}

func sample(t *testing.T) core.Image {
	t.Helper()
	pix := make([]byte, 6*4*core.Channels)
	for i := range pix {
		pix[i] = byte(i * 7)
	}
	img, err := core.NewImage(6, 4, pix)
	require.NoError(t, err)
	return img
}

func TestIsSupported(t *testing.T) {
	for _, p := range []string{"a.jpg", "b.JPEG", "dir/c.png", "d.bmp", "e.tif", "f.TIFF"} {
		assert.True(t, IsSupported(p), p)
	}
	for _, p := range []string{"a.gif", "b", "c.png.txt", "dir.png/file"} {
		assert.False(t, IsSupported(p), p)
	}
}

func TestSaveLoadLossless(t *testing.T) {
	l := newLoader()
	img := sample(t)

	for _, ext := range []string{".png", ".bmp", ".tiff"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out"+ext)
			require.NoError(t, l.Save(img, path))

			back, err := l.Load(path)
			require.NoError(t, err)
			assert.True(t, img.Equal(back))
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	l := newLoader()
	img := sample(t)

	data, err := l.Encode(img, ".PNG")
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	back, err := l.Decode(data)
	require.NoError(t, err)
	assert.True(t, img.Equal(back))

	jpg, err := l.Encode(img, ".jpg")
	require.NoError(t, err)
	back, err = l.Decode(jpg)
	require.NoError(t, err)
	assert.Equal(t, img.Bounds(), back.Bounds())
}

func TestLoaderErrors(t *testing.T) {
	l := newLoader()

	_, err := l.Load("image.gif")
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = l.Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = l.Decode(nil)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	assert.ErrorIs(t, l.Save(sample(t), "out.gif"), core.ErrInvalidInput)
	assert.Error(t, l.Save(core.Image{}, filepath.Join(t.TempDir(), "x.png")))

	_, err = l.Encode(sample(t), ".webp")
	assert.ErrorIs(t, err, core.ErrInvalidInput)
}
