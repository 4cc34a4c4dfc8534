package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImage(t *testing.T) {
	t.Run("copies the caller's buffer", func(t *testing.T) {
		pix := []byte{1, 2, 3, 4, 5, 6}
		img, err := NewImage(2, 1, pix)
		require.NoError(t, err)

		pix[0] = 99
		b, g, r := img.BGR(0, 0)
		assert.Equal(t, []uint8{1, 2, 3}, []uint8{b, g, r})
	})

	t.Run("rejects bad dimensions", func(t *testing.T) {
		_, err := NewImage(0, 4, nil)
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = NewImage(2, 2, make([]byte, 5))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestImagePixIsACopy(t *testing.T) {
	img, err := NewUniform(2, 2, 10, 20, 30)
	require.NoError(t, err)

	pix := img.Pix()
	pix[0] = 0
	b, _, _ := img.BGR(0, 0)
	assert.Equal(t, uint8(10), b)
}

func TestValidateImage(t *testing.T) {
	assert.ErrorIs(t, ValidateImage(Image{}), ErrInvalidInput)

	img, err := NewUniform(3, 3, 0, 0, 0)
	require.NoError(t, err)
	assert.NoError(t, ValidateImage(img))
	assert.Equal(t, "3x3", img.String())
	assert.Equal(t, "empty", Image{}.String())
}

func TestMatRoundTrip(t *testing.T) {
	pix := make([]byte, 4*3*Channels)
	for i := range pix {
		pix[i] = byte(i * 7)
	}
	img, err := NewImage(4, 3, pix)
	require.NoError(t, err)

	mat, err := img.Mat()
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, 4, mat.Cols())
	assert.Equal(t, 3, mat.Rows())

	back, err := FromMat(mat)
	require.NoError(t, err)
	assert.True(t, img.Equal(back))

	_, err = Image{}.Mat()
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOperationError(t *testing.T) {
	cause := fmt.Errorf("native failure")
	var err error = &OperationError{Operation: "gaussian_blur", Err: cause}

	assert.ErrorIs(t, err, ErrOperationFailed)
	assert.ErrorIs(t, err, cause)

	var opErr *OperationError
	require.True(t, errors.As(fmt.Errorf("render: %w", err), &opErr))
	assert.Equal(t, "gaussian_blur", opErr.Operation)
	assert.Contains(t, err.Error(), "gaussian_blur")
}
