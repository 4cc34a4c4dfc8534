// Main window wiring controls, session and preview
package gui

import (
	"errors"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"photo-adjust/internal/algorithms"
	"photo-adjust/internal/core"
	"photo-adjust/internal/editor"
	"photo-adjust/internal/imageio"
)

type Application struct {
	app    fyne.App
	window fyne.Window
	logger *logrus.Logger

	session  *editor.Session
	loader   *imageio.Loader
	renderer *Debouncer

	canvas   *ImageCanvas
	toolbar  *Toolbar
	controls *ControlPanel
	status   *widget.Label
}

func NewApplication(app fyne.App, logger *logrus.Logger, session *editor.Session, loader *imageio.Loader, previewDelay time.Duration) *Application {
	window := app.NewWindow("Photo Adjust")
	window.Resize(fyne.NewSize(1400, 900))
	window.CenterOnScreen()

	a := &Application{
		app:     app,
		window:  window,
		logger:  logger,
		session: session,
		loader:  loader,
	}
	a.renderer = NewDebouncer(previewDelay, a.render)

	a.initializeGUI()
	a.setupLayout()
	a.setupCallbacks()
	return a
}

func (a *Application) initializeGUI() {
	a.canvas = NewImageCanvas(a.logger)
	a.toolbar = NewToolbar(a.window)
	a.controls = NewControlPanel()
	a.status = widget.NewLabel("Load an image to start")
}

func (a *Application) setupLayout() {
	center := container.NewBorder(
		container.NewVBox(a.toolbar.GetContainer(), widget.NewSeparator()),
		a.status,
		nil,
		nil,
		container.NewPadded(a.canvas.GetContainer()),
	)

	split := container.NewHSplit(a.controls.GetContainer(), center)
	split.SetOffset(0.25)
	a.window.SetContent(split)
}

func (a *Application) setupCallbacks() {
	a.toolbar.SetCallbacks(a.loadImage, a.saveImage, a.undo, a.reset)

	a.controls.SetCallbacks(
		func(id algorithms.OperationID, on bool) {
			v := 0.0
			if on {
				v = 1
			}
			a.change(a.session.Set(id, v))
		},
		func(id algorithms.OperationID, v float64) {
			a.change(a.session.Set(id, v))
		},
		func(v float64) {
			a.change(a.session.SetIntensity(v))
		},
	)
}

// change schedules a render after a successful control update.
func (a *Application) change(err error) {
	if err != nil {
		a.showError("Invalid value", err)
		a.controls.Sync(a.session.Controls())
		return
	}
	a.renderer.Trigger()
}

// render runs on the debouncer goroutine. The canvas always shows the
// session's current checkpoint, read on the fyne goroutine, so a result that
// lands after an undo, reset or load cannot replace what those showed.
func (a *Application) render() {
	start := time.Now()
	img, err := a.session.Render()
	if errors.Is(err, editor.ErrSuperseded) {
		return
	}

	fyne.Do(func() {
		if current, ok := a.session.Current(); ok {
			a.canvas.Update(current)
		}
		if err != nil {
			a.controls.Sync(a.session.Controls())
			a.showError("Render failed", err)
			return
		}
		a.setStatus(fmt.Sprintf("Rendered %s in %s", img, time.Since(start).Round(time.Millisecond)))
	})
}

func (a *Application) loadImage(path string) {
	a.renderer.Stop()

	img, err := a.loader.Load(path)
	if err == nil {
		err = a.session.Load(img)
	}

	fyne.Do(func() {
		if err != nil {
			a.showError("Failed to load image", err)
			return
		}
		a.controls.Sync(a.session.Controls())
		a.controls.SetEnabled(true)
		a.toolbar.SetImageLoaded(true)
		a.canvas.Update(img)
		a.setStatus(fmt.Sprintf("Loaded %s (%s)", path, img))
	})
}

func (a *Application) saveImage(path string) {
	img, ok := a.session.Current()
	if !ok {
		return
	}
	if err := a.loader.Save(img, path); err != nil {
		a.showError("Failed to save image", err)
		return
	}
	a.setStatus(fmt.Sprintf("Saved %s", path))
}

func (a *Application) undo() {
	a.renderer.Stop()

	img, err := a.session.Undo()
	switch {
	case errors.Is(err, core.ErrNoMoreUndo):
		a.setStatus("Nothing to undo")
	case err != nil:
		a.showError("Undo failed", err)
		return
	default:
		a.setStatus("Undone")
	}
	a.canvas.Update(img)
}

func (a *Application) reset() {
	a.renderer.Stop()

	img, err := a.session.Reset()
	if err != nil {
		a.showError("Reset failed", err)
		return
	}
	a.controls.Sync(a.session.Controls())
	a.canvas.Update(img)
	a.setStatus("Reset to original image")
}

func (a *Application) setStatus(message string) {
	a.status.SetText(message)
}

func (a *Application) showError(title string, err error) {
	a.logger.WithError(err).Error("GUI: " + title)
	dialog.ShowError(err, a.window)
	a.setStatus(fmt.Sprintf("%s: %v", title, err))
}

func (a *Application) ShowAndRun() {
	a.logger.Info("GUI: Showing main window")

	a.window.SetCloseIntercept(func() {
		a.renderer.Stop()
		a.app.Quit()
	})
	a.window.ShowAndRun()
}
