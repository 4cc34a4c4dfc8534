// Concrete implementations of difference metrics
package metrics

import (
	"math"

	"photo-adjust/internal/core"
)

// MSE is the mean squared error over every channel sample.
type MSE struct{}

func NewMSE() *MSE { return &MSE{} }

func (m *MSE) Calculate(reference, processed core.Image) (float64, error) {
	if err := sameShape(reference, processed); err != nil {
		return 0, err
	}
	return meanSquaredError(reference.Pix(), processed.Pix()), nil
}

func (m *MSE) Name() string              { return "MSE" }
func (m *MSE) Description() string       { return "Mean Squared Error" }
func (m *MSE) Range() (float64, float64) { return 0, 65025 }
func (m *MSE) HigherBetter() bool        { return false }

// PSNR is the peak signal-to-noise ratio in dB; identical images give +Inf.
type PSNR struct{}

func NewPSNR() *PSNR { return &PSNR{} }

func (p *PSNR) Calculate(reference, processed core.Image) (float64, error) {
	if err := sameShape(reference, processed); err != nil {
		return 0, err
	}

	mse := meanSquaredError(reference.Pix(), processed.Pix())
	if mse == 0 {
		return math.Inf(1), nil
	}
	const maxVal = 255.0
	return 20 * math.Log10(maxVal/math.Sqrt(mse)), nil
}

func (p *PSNR) Name() string              { return "PSNR" }
func (p *PSNR) Description() string       { return "Peak Signal-to-Noise Ratio" }
func (p *PSNR) Range() (float64, float64) { return 0, 100 }
func (p *PSNR) HigherBetter() bool        { return true }

// MaxAbsDiff is the largest absolute difference of any channel sample.
type MaxAbsDiff struct{}

func NewMaxAbsDiff() *MaxAbsDiff { return &MaxAbsDiff{} }

func (m *MaxAbsDiff) Calculate(reference, processed core.Image) (float64, error) {
	if err := sameShape(reference, processed); err != nil {
		return 0, err
	}

	a, b := reference.Pix(), processed.Pix()
	worst := 0
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		worst = max(worst, d)
	}
	return float64(worst), nil
}

func (m *MaxAbsDiff) Name() string              { return "Max Difference" }
func (m *MaxAbsDiff) Description() string       { return "Largest absolute per-channel difference" }
func (m *MaxAbsDiff) Range() (float64, float64) { return 0, 255 }
func (m *MaxAbsDiff) HigherBetter() bool        { return false }

// ChangedRatio is the fraction of pixels where any channel differs.
type ChangedRatio struct{}

func NewChangedRatio() *ChangedRatio { return &ChangedRatio{} }

func (c *ChangedRatio) Calculate(reference, processed core.Image) (float64, error) {
	if err := sameShape(reference, processed); err != nil {
		return 0, err
	}

	a, b := reference.Pix(), processed.Pix()
	changed := 0
	for i := 0; i < len(a); i += core.Channels {
		if a[i] != b[i] || a[i+1] != b[i+1] || a[i+2] != b[i+2] {
			changed++
		}
	}
	return float64(changed) / float64(len(a)/core.Channels), nil
}

func (c *ChangedRatio) Name() string              { return "Changed Pixels" }
func (c *ChangedRatio) Description() string       { return "Fraction of pixels altered" }
func (c *ChangedRatio) Range() (float64, float64) { return 0, 1 }
func (c *ChangedRatio) HigherBetter() bool        { return false }

func meanSquaredError(a, b []byte) float64 {
	sum := 0.0
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return sum / float64(len(a))
}
