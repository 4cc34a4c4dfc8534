package algorithms

import (
	"fmt"

	"gocv.io/x/gocv"

	"photo-adjust/internal/core"
)

// matFunc fills dst from src. It must not modify src.
type matFunc func(src gocv.Mat, dst *gocv.Mat) error

// runKernel validates the inputs, runs fn over a private Mat copy of img and
// converts the result back. Native calls that leave dst empty or resized are
// reported as ErrOperationFailed.
func runKernel(id OperationID, img core.Image, param float64, fn matFunc) (core.Image, error) {
	if err := core.ValidateImage(img); err != nil {
		return core.Image{}, fmt.Errorf("%s: %w", id, err)
	}
	if err := Validate(id, param); err != nil {
		return core.Image{}, err
	}

	src, err := img.Mat()
	if err != nil {
		return core.Image{}, fmt.Errorf("%s: %w", id, err)
	}
	defer src.Close()

	dst := gocv.NewMat()
	defer dst.Close()

	if err := fn(src, &dst); err != nil {
		return core.Image{}, fmt.Errorf("%w: %s: %v", core.ErrOperationFailed, id, err)
	}
	if dst.Empty() {
		return core.Image{}, fmt.Errorf("%w: %s produced no output", core.ErrOperationFailed, id)
	}
	if dst.Cols() != img.Width() || dst.Rows() != img.Height() {
		return core.Image{}, fmt.Errorf("%w: %s changed size to %dx%d", core.ErrOperationFailed, id, dst.Cols(), dst.Rows())
	}

	out, err := core.FromMat(dst)
	if err != nil {
		return core.Image{}, fmt.Errorf("%w: %s: %v", core.ErrOperationFailed, id, err)
	}
	return out, nil
}

// splitApply runs fn over channel ch of src (after an optional color
// conversion) and merges the channels back into dst.
func splitApply(src gocv.Mat, dst *gocv.Mat, ch int, fn func(channel gocv.Mat, out *gocv.Mat)) error {
	channels := gocv.Split(src)
	defer func() {
		for _, c := range channels {
			c.Close()
		}
	}()
	if len(channels) != core.Channels {
		return fmt.Errorf("expected %d channels, got %d", core.Channels, len(channels))
	}

	shifted := gocv.NewMat()
	fn(channels[ch], &shifted)
	if shifted.Empty() {
		shifted.Close()
		return fmt.Errorf("channel %d transform produced no output", ch)
	}
	channels[ch].Close()
	channels[ch] = shifted

	gocv.Merge(channels, dst)
	return nil
}

// shiftChannel adds delta to channel ch with saturation to [0, 255].
func shiftChannel(src gocv.Mat, dst *gocv.Mat, ch int, delta float64) error {
	return splitApply(src, dst, ch, func(channel gocv.Mat, out *gocv.Mat) {
		gocv.AddWeighted(channel, 1.0, channel, 0, delta, out)
	})
}

// shiftHSVChannel converts to HSV, shifts one channel and converts back.
func shiftHSVChannel(src gocv.Mat, dst *gocv.Mat, ch int, delta float64) error {
	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(src, &hsv, gocv.ColorBGRToHSV)
	if hsv.Empty() {
		return fmt.Errorf("BGR to HSV conversion failed")
	}

	shifted := gocv.NewMat()
	defer shifted.Close()
	if err := shiftChannel(hsv, &shifted, ch, delta); err != nil {
		return err
	}

	gocv.CvtColor(shifted, dst, gocv.ColorHSVToBGR)
	return nil
}

// kernel3x3 builds a 32-bit float convolution kernel. The caller closes it.
func kernel3x3(values [3][3]float32) gocv.Mat {
	k := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			k.SetFloatAt(r, c, values[r][c])
		}
	}
	return k
}
