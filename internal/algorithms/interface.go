// Operation registry: the closed set of kernels, their parameter domains and
// the fixed order in which the pipeline applies them
package algorithms

import (
	"fmt"
	"math"

	"photo-adjust/internal/core"
)

// OperationID identifies one kernel. The numeric order of the constants is the
// application order: blur family first, then the adjustment family.
type OperationID int

const (
	GaussianBlur OperationID = iota
	MedianBlur
	BilateralBlur
	BoxBlur
	Temperature
	Tint
	Exposure
	Contrast
	Highlights
	Shadows
	Clarity
	Saturation
	Sharpness
	Noise
	Moire
	Defringe

	numOperations
)

// NumOperations is the size of the closed operation set.
const NumOperations = int(numOperations)

// Family groups operations by how their controls behave.
type Family int

const (
	// FamilyBlur operations are toggled on/off and share one intensity.
	FamilyBlur Family = iota
	// FamilyAdjustment operations own an independent parameter.
	FamilyAdjustment
)

func (f Family) String() string {
	if f == FamilyBlur {
		return "blur"
	}
	return "adjustment"
}

// DomainKind distinguishes ranged parameters from binary toggles.
type DomainKind int

const (
	DomainRange DomainKind = iota
	DomainToggle
)

// Domain is the inclusive set of values a kernel accepts.
type Domain struct {
	Kind DomainKind
	Min  float64
	Max  float64
	Step float64
}

// Contains reports whether v is a legal parameter value.
func (d Domain) Contains(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	if d.Kind == DomainToggle {
		return v == 0 || v == 1
	}
	if v < d.Min || v > d.Max {
		return false
	}
	if d.Step > 0 {
		steps := (v - d.Min) / d.Step
		return steps == math.Trunc(steps)
	}
	return true
}

func (d Domain) String() string {
	if d.Kind == DomainToggle {
		return "{0,1}"
	}
	return fmt.Sprintf("[%g,%g] step %g", d.Min, d.Max, d.Step)
}

// Kernel is a pure pixel transform. Kernels never mutate their input.
type Kernel func(img core.Image, param float64) (core.Image, error)

// Operation is one row of the registry table.
type Operation struct {
	ID      OperationID
	Key     string // stable identifier, e.g. "gaussian_blur"
	Name    string // display name
	Family  Family
	Domain  Domain
	Default float64
	Kernel  Kernel
}

var (
	intensityDomain = Domain{Kind: DomainRange, Min: 1, Max: 20, Step: 1}
	signedDomain    = Domain{Kind: DomainRange, Min: -100, Max: 100, Step: 1}
	unsignedDomain  = Domain{Kind: DomainRange, Min: 0, Max: 100, Step: 1}
	toggleDomain    = Domain{Kind: DomainToggle}
)

// DefaultIntensity is the initial shared blur intensity.
const DefaultIntensity = 5

var (
	operations [numOperations]*Operation
	byKey      = make(map[string]OperationID)
)

func register(op Operation) {
	if op.ID < 0 || op.ID >= numOperations || operations[op.ID] != nil {
		panic(fmt.Sprintf("algorithms: bad registration for %q", op.Key))
	}
	operations[op.ID] = &op
	byKey[op.Key] = op.ID
}

// Lookup returns the registry row for id. An unknown id is a programming error.
func Lookup(id OperationID) Operation {
	if id < 0 || id >= numOperations || operations[id] == nil {
		panic(fmt.Sprintf("algorithms: unknown operation id %d", int(id)))
	}
	return *operations[id]
}

// ParseOperationID maps a stable key such as "temperature" to its id.
func ParseOperationID(key string) (OperationID, error) {
	id, ok := byKey[key]
	if !ok {
		return 0, fmt.Errorf("%w: unknown operation %q", core.ErrInvalidInput, key)
	}
	return id, nil
}

// Order returns every operation id in application order.
func Order() []OperationID {
	ids := make([]OperationID, NumOperations)
	for i := range ids {
		ids[i] = OperationID(i)
	}
	return ids
}

// All returns the registry rows in application order.
func All() []Operation {
	ops := make([]Operation, 0, NumOperations)
	for _, id := range Order() {
		ops = append(ops, Lookup(id))
	}
	return ops
}

func (id OperationID) String() string {
	if id < 0 || id >= numOperations || operations[id] == nil {
		return fmt.Sprintf("operation(%d)", int(id))
	}
	return operations[id].Key
}

// Family returns the operation's family.
func (id OperationID) Family() Family {
	return Lookup(id).Family
}

// Validate checks v against the operation's domain.
func Validate(id OperationID, v float64) error {
	op := Lookup(id)
	if !op.Domain.Contains(v) {
		return fmt.Errorf("%w: %s parameter %g outside %s", core.ErrInvalidInput, op.Key, v, op.Domain)
	}
	return nil
}

// Apply validates the parameter and dispatches to the operation's kernel.
func Apply(id OperationID, img core.Image, param float64) (core.Image, error) {
	op := Lookup(id)
	if err := Validate(id, param); err != nil {
		return core.Image{}, err
	}
	return op.Kernel(img, param)
}

func init() {
	register(Operation{ID: GaussianBlur, Key: "gaussian_blur", Name: "Gaussian Blur", Family: FamilyBlur, Domain: intensityDomain, Default: DefaultIntensity, Kernel: Gaussian})
	register(Operation{ID: MedianBlur, Key: "median_blur", Name: "Median Blur", Family: FamilyBlur, Domain: intensityDomain, Default: DefaultIntensity, Kernel: Median})
	register(Operation{ID: BilateralBlur, Key: "bilateral_blur", Name: "Bilateral Blur", Family: FamilyBlur, Domain: intensityDomain, Default: DefaultIntensity, Kernel: Bilateral})
	register(Operation{ID: BoxBlur, Key: "box_blur", Name: "Box Blur", Family: FamilyBlur, Domain: intensityDomain, Default: DefaultIntensity, Kernel: Box})

	register(Operation{ID: Temperature, Key: "temperature", Name: "Temperature", Family: FamilyAdjustment, Domain: signedDomain, Kernel: AdjustTemperature})
	register(Operation{ID: Tint, Key: "tint", Name: "Tint", Family: FamilyAdjustment, Domain: signedDomain, Kernel: AdjustTint})
	register(Operation{ID: Exposure, Key: "exposure", Name: "Exposure", Family: FamilyAdjustment, Domain: signedDomain, Kernel: AdjustExposure})
	register(Operation{ID: Contrast, Key: "contrast", Name: "Contrast", Family: FamilyAdjustment, Domain: signedDomain, Kernel: AdjustContrast})
	register(Operation{ID: Highlights, Key: "highlights", Name: "Highlights", Family: FamilyAdjustment, Domain: signedDomain, Kernel: AdjustHighlights})
	register(Operation{ID: Shadows, Key: "shadows", Name: "Shadows", Family: FamilyAdjustment, Domain: signedDomain, Kernel: AdjustShadows})
	register(Operation{ID: Clarity, Key: "clarity", Name: "Clarity", Family: FamilyAdjustment, Domain: signedDomain, Kernel: AdjustClarity})
	register(Operation{ID: Saturation, Key: "saturation", Name: "Saturation", Family: FamilyAdjustment, Domain: signedDomain, Kernel: AdjustSaturation})
	register(Operation{ID: Sharpness, Key: "sharpness", Name: "Sharpness", Family: FamilyAdjustment, Domain: signedDomain, Kernel: AdjustSharpness})
	register(Operation{ID: Noise, Key: "noise", Name: "Noise Reduction", Family: FamilyAdjustment, Domain: unsignedDomain, Kernel: ReduceNoise})
	register(Operation{ID: Moire, Key: "moire", Name: "Moire Reduction", Family: FamilyAdjustment, Domain: toggleDomain, Kernel: ReduceMoire})
	register(Operation{ID: Defringe, Key: "defringe", Name: "Defringe", Family: FamilyAdjustment, Domain: unsignedDomain, Kernel: ApplyDefringe})
}
