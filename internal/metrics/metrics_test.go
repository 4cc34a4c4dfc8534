package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photo-adjust/internal/core"
)

func TestEvaluator(t *testing.T) {
	e := NewEvaluator()
	assert.Equal(t, []string{"changed", "max_diff", "mse", "psnr"}, e.Names())

	a, err := core.NewUniform(4, 4, 100, 100, 100)
	require.NoError(t, err)
	b, err := core.NewUniform(4, 4, 110, 100, 100)
	require.NoError(t, err)

	t.Run("identical images", func(t *testing.T) {
		psnr, err := e.CalculatePSNR(a, a)
		require.NoError(t, err)
		assert.True(t, math.IsInf(psnr, 1))

		all := e.CalculateAll(a, a)
		assert.Equal(t, 0.0, all["mse"])
		assert.Equal(t, 0.0, all["changed"])
	})

	t.Run("one shifted channel", func(t *testing.T) {
		all := e.CalculateAll(a, b)
		assert.InDelta(t, 100.0/3.0, all["mse"], 1e-9)
		assert.Equal(t, 10.0, all["max_diff"])
		assert.Equal(t, 1.0, all["changed"])
		assert.InDelta(t, 20*math.Log10(255/math.Sqrt(100.0/3.0)), all["psnr"], 1e-9)
	})

	t.Run("mismatched sizes", func(t *testing.T) {
		small, err := core.NewUniform(2, 2, 0, 0, 0)
		require.NoError(t, err)
		_, err = e.Calculate("mse", a, small)
		assert.ErrorIs(t, err, core.ErrInvalidInput)
		assert.Empty(t, e.CalculateAll(a, small))
	})

	t.Run("unknown metric", func(t *testing.T) {
		_, err := e.Calculate("ssim", a, b)
		assert.Error(t, err)
	})
}
