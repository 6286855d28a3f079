package ui

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"LayerBoard/internal/export"
	"LayerBoard/internal/logx"
	"LayerBoard/internal/state"
)

var palette = []string{"black", "red", "green", "blue", "yellow", "orange", "purple"}

type colorSwatch struct {
	widget.BaseWidget
	Color    color.Color
	OnTapped func(color.Color)
}

func newColorSwatch(c color.Color, tapped func(color.Color)) *colorSwatch {
	s := &colorSwatch{Color: c, OnTapped: tapped}
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	rect := canvas.NewRectangle(s.Color)
	rect.SetMinSize(fyne.NewSize(28, 28))

	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1

	return widget.NewSimpleRenderer(container.NewStack(rect, border))
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.Color)
	}
}

func layerLabel(id state.LayerID) string {
	return "Layer " + strconv.Itoa(int(id))
}

// NewToolbar builds the tool, style, history and layer controls for board.
// The returned func stops the toolbar following view changes.
func NewToolbar(win fyne.Window, board *BoardWidget, pdf export.Options) (fyne.CanvasObject, func()) {
	proc := board.proc

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.DocumentCreateIcon(), func() {
			board.SetTool(ToolPen)
			board.setStatus("Pen")
		}),
		widget.NewToolbarAction(theme.ViewFullScreenIcon(), func() {
			board.SetTool(ToolHand)
			board.setStatus("Hand: drag images, corners resize, empty space pans")
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), func() { proc.Apply(state.Undo{}) }),
		widget.NewToolbarAction(theme.ContentRedoIcon(), func() { proc.Apply(state.Redo{}) }),
		widget.NewToolbarAction(theme.DeleteIcon(), func() {
			dialog.ShowConfirm("Clear board", "Remove every drawing? This cannot be undone.", func(ok bool) {
				if ok {
					proc.Apply(state.Clear{})
				}
			}, win)
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.FileImageIcon(), func() { showPasteImage(win, proc) }),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), func() { showExportPDF(win, proc, pdf) }),
		widget.NewToolbarAction(theme.ViewRestoreIcon(), board.ResetView),
		widget.NewToolbarAction(theme.GridIcon(), board.ToggleGrid),
	)

	onColorTapped := func(c color.Color) {
		proc.Apply(state.ChangeStrokeColor{Color: state.ColorName(c)})
	}
	colorBox := container.NewHBox()
	for _, name := range palette {
		colorBox.Add(newColorSwatch(state.ParseColor(name), onColorTapped))
	}

	strokeSlider := widget.NewSlider(1.0, 50.0)
	strokeSlider.SetValue(float64(proc.View().Style.Width))
	strokeSlider.OnChangeEnded = func(val float64) {
		proc.Apply(state.ChangeStrokeWidth{Width: float32(val)})
	}
	sliderContainer := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), strokeSlider)

	layers := newLayerPicker(proc)
	addLayer := widget.NewButtonWithIcon("", theme.ContentAddIcon(), func() {
		id := proc.AddLayer()
		logx.WithLayer(board.log, id).Info("layer added")
		layers.sync()
	})

	return container.NewHBox(
		widget.NewLabel("Tool:"),
		tb,
		widget.NewSeparator(),
		widget.NewLabel("Color:"),
		colorBox,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderContainer,
		widget.NewSeparator(),
		layers.selector,
		addLayer,
		layout.NewSpacer(),
	), layers.close
}

// layerPicker keeps a Select in step with the processor's layers.
type layerPicker struct {
	proc     *state.Processor
	selector *widget.Select
	byLabel  map[string]state.LayerID
	unsub    func()
}

func newLayerPicker(proc *state.Processor) *layerPicker {
	lp := &layerPicker{
		proc:    proc,
		byLabel: make(map[string]state.LayerID),
	}
	lp.selector = widget.NewSelect(nil, func(label string) {
		if id, ok := lp.byLabel[label]; ok && id != proc.View().CurrentLayer {
			proc.Apply(state.SelectLayer{ID: id})
		}
	})
	lp.sync()
	lp.unsub = proc.Subscribe(func(v state.View) {
		fyne.Do(func() {
			if len(v.Layers) != len(lp.selector.Options) || lp.selector.Selected != layerLabel(v.CurrentLayer) {
				lp.sync()
			}
		})
	})
	return lp
}

func (lp *layerPicker) sync() {
	ids := lp.proc.LayerIDs()
	options := make([]string, 0, len(ids))
	clear(lp.byLabel)
	for _, id := range ids {
		label := layerLabel(id)
		lp.byLabel[label] = id
		options = append(options, label)
	}
	lp.selector.Options = options
	lp.selector.SetSelected(layerLabel(lp.proc.View().CurrentLayer))
}

func (lp *layerPicker) close() {
	lp.unsub()
}

func showPasteImage(win fyne.Window, proc *state.Processor) {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if rc == nil {
			return
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		src, err := state.DecodeImageSource(rc.URI().Name(), data)
		if err != nil {
			dialog.ShowError(fmt.Errorf("paste %s: %w", rc.URI().Name(), err), win)
			return
		}
		proc.Apply(state.PasteImage{Image: src})
	}, win)
}
