package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"pkt.systems/pslog"

	"LayerBoard/internal/config"
	"LayerBoard/internal/export"
	"LayerBoard/internal/state"
)

// RunApp opens the board window and blocks until it is closed. shareLink,
// when set, is shown in the status bar so a remote controller can join.
func RunApp(cfg config.Config, proc *state.Processor, shareLink string, logger pslog.Logger) {
	myApp := app.NewWithID("layerboard")
	myWindow := myApp.NewWindow("LayerBoard")
	myWindow.Resize(fyne.NewSize(1024, 768))

	board := NewBoardWidget(proc, cfg.Canvas, logger)
	defer board.Close()

	ready := "Ready"
	if shareLink != "" {
		ready = "Remote: " + shareLink
	}
	status := widget.NewLabel(ready)
	board.OnStatus = func(text string) {
		if text == "Ready" {
			text = ready
		}
		fyne.Do(func() { status.SetText(text) })
	}

	pdf := export.Options{Margin: cfg.Export.Margin, Background: cfg.Canvas.Background}
	toolbar, closeToolbar := NewToolbar(myWindow, board, pdf)
	defer closeToolbar()

	myWindow.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		proc.Apply(state.Undo{})
	})
	myWindow.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}, func(fyne.Shortcut) {
		proc.Apply(state.Redo{})
	})

	content := container.NewBorder(toolbar, status, nil, nil, board)
	myWindow.SetContent(content)
	logger.Info("board window open", "canvas_width", cfg.Canvas.Width, "canvas_height", cfg.Canvas.Height)
	myWindow.ShowAndRun()
}
