// Blur family kernels. All four share one integer intensity.
package algorithms

import (
	"image"
	"math"

	"gocv.io/x/gocv"

	"photo-adjust/internal/core"
)

// GaussianKernelSize is the odd aperture used for a given intensity.
func GaussianKernelSize(intensity int) int { return 2*intensity + 3 }

// MedianKernelSize is the odd aperture used for a given intensity.
func MedianKernelSize(intensity int) int { return 2*intensity + 3 }

// BilateralDiameter is the neighbourhood diameter; both sigmas are 3x this.
func BilateralDiameter(intensity int) int { return 2*intensity + 1 }

// BoxKernelSize never drops below 3.
func BoxKernelSize(intensity int) int { return max(3, 3*intensity) }

// Gaussian blurs with a square kernel of GaussianKernelSize(intensity),
// sigma derived from the kernel size.
func Gaussian(img core.Image, intensity float64) (core.Image, error) {
	return runKernel(GaussianBlur, img, intensity, func(src gocv.Mat, dst *gocv.Mat) error {
		k := GaussianKernelSize(int(intensity))
		gocv.GaussianBlur(src, dst, image.Pt(k, k), 0, 0, gocv.BorderDefault)
		return nil
	})
}

// Median replaces each pixel by the per-channel median of its neighbourhood.
func Median(img core.Image, intensity float64) (core.Image, error) {
	return runKernel(MedianBlur, img, intensity, func(src gocv.Mat, dst *gocv.Mat) error {
		gocv.MedianBlur(src, dst, MedianKernelSize(int(intensity)))
		return nil
	})
}

// Bilateral runs an edge-preserving filter on a half-size copy and scales the
// result back to the original dimensions, trading precision for speed.
func Bilateral(img core.Image, intensity float64) (core.Image, error) {
	return runKernel(BilateralBlur, img, intensity, func(src gocv.Mat, dst *gocv.Mat) error {
		half := image.Pt(halfDim(src.Cols()), halfDim(src.Rows()))

		small := gocv.NewMat()
		defer small.Close()
		gocv.Resize(src, &small, half, 0, 0, gocv.InterpolationLinear)

		d := BilateralDiameter(int(intensity))
		sigma := float64(3 * d)
		filtered := gocv.NewMat()
		defer filtered.Close()
		gocv.BilateralFilter(small, &filtered, d, sigma, sigma)

		gocv.Resize(filtered, dst, image.Pt(src.Cols(), src.Rows()), 0, 0, gocv.InterpolationLinear)
		return nil
	})
}

// Box applies a normalized box filter of BoxKernelSize(intensity).
func Box(img core.Image, intensity float64) (core.Image, error) {
	return runKernel(BoxBlur, img, intensity, func(src gocv.Mat, dst *gocv.Mat) error {
		k := BoxKernelSize(int(intensity))
		gocv.Blur(src, dst, image.Pt(k, k))
		return nil
	})
}

// halfDim rounds half away from zero, so odd sides keep the larger half
// (5 -> 3) where a 0.5 scale factor in OpenCV would give 2.
func halfDim(n int) int {
	return max(1, int(math.Round(float64(n)*0.5)))
}
