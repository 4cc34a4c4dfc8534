// Left control panel: blur toggles with a shared intensity and one control
// per adjustment
package gui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"photo-adjust/internal/adjust"
	"photo-adjust/internal/algorithms"
)

type ControlPanel struct {
	container fyne.CanvasObject

	checks    map[algorithms.OperationID]*widget.Check
	sliders   map[algorithms.OperationID]*widget.Slider
	labels    map[algorithms.OperationID]*widget.Label
	intensity *widget.Slider
	intLabel  *widget.Label

	// syncing suppresses callbacks while widgets are set programmatically.
	syncing bool

	onToggle    func(algorithms.OperationID, bool)
	onValue     func(algorithms.OperationID, float64)
	onIntensity func(float64)
}

func NewControlPanel() *ControlPanel {
	panel := &ControlPanel{
		checks:  make(map[algorithms.OperationID]*widget.Check),
		sliders: make(map[algorithms.OperationID]*widget.Slider),
		labels:  make(map[algorithms.OperationID]*widget.Label),
	}
	panel.initializeUI()
	return panel
}

func (cp *ControlPanel) initializeUI() {
	blurBox := container.NewVBox()
	adjustBox := container.NewVBox()

	for _, op := range algorithms.All() {
		switch {
		case op.Family == algorithms.FamilyBlur:
			blurBox.Add(cp.newCheck(op))
		case op.Domain.Kind == algorithms.DomainToggle:
			adjustBox.Add(cp.newCheck(op))
		default:
			adjustBox.Add(cp.newSlider(op))
		}
	}

	domain := algorithms.Lookup(algorithms.GaussianBlur).Domain
	cp.intensity = widget.NewSlider(domain.Min, domain.Max)
	cp.intensity.Step = domain.Step
	cp.intensity.Value = algorithms.DefaultIntensity
	cp.intLabel = widget.NewLabel(formatValue(algorithms.DefaultIntensity))
	cp.intensity.OnChanged = func(v float64) {
		cp.intLabel.SetText(formatValue(v))
		if !cp.syncing && cp.onIntensity != nil {
			cp.onIntensity(v)
		}
	}
	blurBox.Add(container.NewBorder(nil, nil, widget.NewLabel("Intensity"), cp.intLabel, cp.intensity))

	cp.container = container.NewVScroll(container.NewVBox(
		widget.NewCard("Blur", "", blurBox),
		widget.NewCard("Adjustments", "", adjustBox),
	))
	cp.SetEnabled(false)
}

func (cp *ControlPanel) newCheck(op algorithms.Operation) fyne.CanvasObject {
	id := op.ID
	check := widget.NewCheck(op.Name, func(on bool) {
		if !cp.syncing && cp.onToggle != nil {
			cp.onToggle(id, on)
		}
	})
	cp.checks[id] = check
	return check
}

func (cp *ControlPanel) newSlider(op algorithms.Operation) fyne.CanvasObject {
	id := op.ID
	slider := widget.NewSlider(op.Domain.Min, op.Domain.Max)
	slider.Step = op.Domain.Step
	label := widget.NewLabel(formatValue(0))

	slider.OnChanged = func(v float64) {
		label.SetText(formatValue(v))
		if !cp.syncing && cp.onValue != nil {
			cp.onValue(id, v)
		}
	}
	cp.sliders[id] = slider
	cp.labels[id] = label

	return container.NewBorder(widget.NewLabel(op.Name), nil, nil, label, slider)
}

// Sync sets every widget from controls without firing callbacks. Must be
// called on the fyne goroutine.
func (cp *ControlPanel) Sync(controls *adjust.State) {
	cp.syncing = true
	defer func() { cp.syncing = false }()

	for id, check := range cp.checks {
		check.SetChecked(controls.Enabled(id))
	}
	for id, slider := range cp.sliders {
		slider.SetValue(controls.Get(id))
		cp.labels[id].SetText(formatValue(controls.Get(id)))
	}
	cp.intensity.SetValue(controls.Intensity())
	cp.intLabel.SetText(formatValue(controls.Intensity()))
}

func (cp *ControlPanel) SetEnabled(enabled bool) {
	type toggler interface {
		Enable()
		Disable()
	}
	widgets := []toggler{cp.intensity}
	for _, c := range cp.checks {
		widgets = append(widgets, c)
	}
	for _, s := range cp.sliders {
		widgets = append(widgets, s)
	}
	for _, w := range widgets {
		if enabled {
			w.Enable()
		} else {
			w.Disable()
		}
	}
}

func (cp *ControlPanel) GetContainer() fyne.CanvasObject {
	return cp.container
}

func (cp *ControlPanel) SetCallbacks(onToggle func(algorithms.OperationID, bool), onValue func(algorithms.OperationID, float64), onIntensity func(float64)) {
	cp.onToggle = onToggle
	cp.onValue = onValue
	cp.onIntensity = onIntensity
}

func formatValue(v float64) string {
	return fmt.Sprintf("%.0f", v)
}
