// Adjustment family kernels: color, tone, detail and cleanup
package algorithms

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"

	"photo-adjust/internal/core"
)

// BGR and HSV channel indices.
const (
	chBlue  = 0
	chGreen = 1
	chRed   = 2

	chSat = 1
	chVal = 2
)

// AdjustTemperature warms (delta > 0) or cools the image: red += delta,
// blue -= delta, green untouched. Saturating.
func AdjustTemperature(img core.Image, delta float64) (core.Image, error) {
	return runKernel(Temperature, img, delta, func(src gocv.Mat, dst *gocv.Mat) error {
		warm := gocv.NewMat()
		defer warm.Close()
		if err := shiftChannel(src, &warm, chRed, delta); err != nil {
			return err
		}
		return shiftChannel(warm, dst, chBlue, -delta)
	})
}

// AdjustTint shifts the green channel by delta. Saturating.
func AdjustTint(img core.Image, delta float64) (core.Image, error) {
	return runKernel(Tint, img, delta, func(src gocv.Mat, dst *gocv.Mat) error {
		return shiftChannel(src, dst, chGreen, delta)
	})
}

// AdjustExposure scales every channel by 1 + delta/100 and clamps.
func AdjustExposure(img core.Image, delta float64) (core.Image, error) {
	return runKernel(Exposure, img, delta, scaleBy(delta))
}

// AdjustContrast scales every channel by 1 + delta/100 and clamps.
func AdjustContrast(img core.Image, delta float64) (core.Image, error) {
	return runKernel(Contrast, img, delta, scaleBy(delta))
}

func scaleBy(delta float64) matFunc {
	return func(src gocv.Mat, dst *gocv.Mat) error {
		gocv.ConvertScaleAbs(src, dst, 1.0+delta/100.0, 0)
		return nil
	}
}

// AdjustHighlights shifts the HSV value channel by delta, clamped to [0, 255].
func AdjustHighlights(img core.Image, delta float64) (core.Image, error) {
	return runKernel(Highlights, img, delta, func(src gocv.Mat, dst *gocv.Mat) error {
		return shiftHSVChannel(src, dst, chVal, delta)
	})
}

// AdjustSaturation shifts the HSV saturation channel by delta, clamped to [0, 255].
func AdjustSaturation(img core.Image, delta float64) (core.Image, error) {
	return runKernel(Saturation, img, delta, func(src gocv.Mat, dst *gocv.Mat) error {
		return shiftHSVChannel(src, dst, chSat, delta)
	})
}

// ShadowsLUT is the gamma table used by AdjustShadows, gamma = 1 + delta/100.
func ShadowsLUT(delta float64) ([256]uint8, error) {
	var lut [256]uint8
	invGamma := 1.0 / (1.0 + delta/100.0)
	for i := range lut {
		v := math.Pow(float64(i)/255.0, invGamma) * 255.0
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return lut, fmt.Errorf("gamma table entry %d is not finite", i)
		}
		lut[i] = uint8(math.Min(255, math.Max(0, v)))
	}
	return lut, nil
}

// AdjustShadows applies gamma correction through a 256-entry lookup table.
func AdjustShadows(img core.Image, delta float64) (core.Image, error) {
	return runKernel(Shadows, img, delta, func(src gocv.Mat, dst *gocv.Mat) error {
		table, err := ShadowsLUT(delta)
		if err != nil {
			return err
		}
		lut := gocv.NewMatWithSize(1, 256, gocv.MatTypeCV8UC1)
		defer lut.Close()
		for i, v := range table {
			lut.SetUCharAt(0, i, v)
		}
		gocv.LUT(src, lut, dst)
		return nil
	})
}

// AdjustClarity convolves with identity + s*laplacian, s = delta/100. At
// delta 100 this is the classic 5-centre sharpen kernel; negative values soften.
func AdjustClarity(img core.Image, delta float64) (core.Image, error) {
	return runKernel(Clarity, img, delta, func(src gocv.Mat, dst *gocv.Mat) error {
		s := float32(delta / 100.0)
		k := kernel3x3([3][3]float32{
			{0, -s, 0},
			{-s, 1 + 4*s, -s},
			{0, -s, 0},
		})
		defer k.Close()
		gocv.Filter2D(src, dst, -1, k, image.Pt(-1, -1), 0, gocv.BorderDefault)
		return nil
	})
}

// AdjustSharpness is an unsharp mask: img + (delta/50)*(img - blur3x3(img)),
// computed in 16-bit signed and saturated back to 8 bits.
func AdjustSharpness(img core.Image, delta float64) (core.Image, error) {
	return runKernel(Sharpness, img, delta, func(src gocv.Mat, dst *gocv.Mat) error {
		blurred := gocv.NewMat()
		defer blurred.Close()
		gocv.GaussianBlur(src, &blurred, image.Pt(3, 3), 0, 0, gocv.BorderDefault)

		src16 := gocv.NewMat()
		defer src16.Close()
		blurred16 := gocv.NewMat()
		defer blurred16.Close()
		src.ConvertTo(&src16, gocv.MatTypeCV16SC3)
		blurred.ConvertTo(&blurred16, gocv.MatTypeCV16SC3)

		detail := gocv.NewMat()
		defer detail.Close()
		gocv.Subtract(src16, blurred16, &detail)

		sharpened := gocv.NewMat()
		defer sharpened.Close()
		gocv.AddWeighted(src16, 1.0, detail, delta/50.0, 0, &sharpened)
		if sharpened.Empty() {
			return fmt.Errorf("detail blend produced no output")
		}

		sharpened.ConvertTo(dst, gocv.MatTypeCV8UC3)
		return nil
	})
}

// ReduceNoise runs non-local-means denoising with delta as both the luma and
// the color filter strength.
func ReduceNoise(img core.Image, delta float64) (core.Image, error) {
	return runKernel(Noise, img, delta, func(src gocv.Mat, dst *gocv.Mat) error {
		h := float32(delta)
		gocv.FastNlMeansDenoisingColoredWithParams(src, dst, h, h, 7, 21)
		return nil
	})
}

// MoireKernelSize is the fixed aperture of the moire filter.
const MoireKernelSize = 9

// ReduceMoire applies a fixed 9x9 Gaussian blur. The parameter is the toggle
// and does not change the output.
func ReduceMoire(img core.Image, enabled float64) (core.Image, error) {
	return runKernel(Moire, img, enabled, func(src gocv.Mat, dst *gocv.Mat) error {
		gocv.GaussianBlur(src, dst, image.Pt(MoireKernelSize, MoireKernelSize), 0, 0, gocv.BorderDefault)
		return nil
	})
}

// ApplyDefringe computes img - 0.5*gaussian5x5(img, sigma=delta) + 128.
func ApplyDefringe(img core.Image, delta float64) (core.Image, error) {
	return runKernel(Defringe, img, delta, func(src gocv.Mat, dst *gocv.Mat) error {
		blurred := gocv.NewMat()
		defer blurred.Close()
		gocv.GaussianBlur(src, &blurred, image.Pt(5, 5), delta, delta, gocv.BorderDefault)
		if blurred.Empty() {
			return fmt.Errorf("defringe blur produced no output")
		}
		gocv.AddWeighted(src, 1.0, blurred, -0.5, 128, dst)
		return nil
	})
}
