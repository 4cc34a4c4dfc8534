// Top toolbar: file operations, undo and reset
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"photo-adjust/internal/imageio"
)

type Toolbar struct {
	window    fyne.Window
	container *fyne.Container

	openBtn  *widget.Button
	saveBtn  *widget.Button
	undoBtn  *widget.Button
	resetBtn *widget.Button

	onOpen  func(path string)
	onSave  func(path string)
	onUndo  func()
	onReset func()
}

func NewToolbar(window fyne.Window) *Toolbar {
	tb := &Toolbar{window: window}
	tb.initializeUI()
	return tb
}

func (tb *Toolbar) initializeUI() {
	titleLabel := widget.NewLabelWithStyle("Photo Adjust", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})

	tb.openBtn = widget.NewButtonWithIcon("Load", theme.FolderOpenIcon(), tb.openImage)
	tb.openBtn.Importance = widget.HighImportance

	tb.saveBtn = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), tb.saveImage)

	tb.undoBtn = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), func() {
		if tb.onUndo != nil {
			tb.onUndo()
		}
	})

	tb.resetBtn = widget.NewButtonWithIcon("Reset", theme.ViewRefreshIcon(), func() {
		if tb.onReset != nil {
			tb.onReset()
		}
	})

	tb.container = container.NewHBox(
		titleLabel,
		widget.NewSeparator(),
		tb.openBtn,
		tb.saveBtn,
		widget.NewSeparator(),
		tb.undoBtn,
		tb.resetBtn,
	)
	tb.SetImageLoaded(false)
}

func (tb *Toolbar) openImage() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()

		if tb.onOpen != nil {
			tb.onOpen(path)
		}
	}, tb.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(imageio.SupportedExtensions()))
	fileDialog.Show()
}

func (tb *Toolbar) saveImage() {
	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		path := writer.URI().Path()
		// The loader writes through OpenCV by path; release fyne's handle first.
		writer.Close()

		if tb.onSave != nil {
			tb.onSave(path)
		}
	}, tb.window)

	fileDialog.SetFileName("adjusted.png")
	fileDialog.SetFilter(storage.NewExtensionFileFilter(imageio.SupportedExtensions()))
	fileDialog.Show()
}

// SetImageLoaded enables the buttons that need an image.
func (tb *Toolbar) SetImageLoaded(loaded bool) {
	for _, btn := range []*widget.Button{tb.saveBtn, tb.undoBtn, tb.resetBtn} {
		if loaded {
			btn.Enable()
		} else {
			btn.Disable()
		}
	}
}

func (tb *Toolbar) GetContainer() fyne.CanvasObject {
	return tb.container
}

func (tb *Toolbar) SetCallbacks(onOpen, onSave func(string), onUndo, onReset func()) {
	tb.onOpen = onOpen
	tb.onSave = onSave
	tb.onUndo = onUndo
	tb.onReset = onReset
}
