package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"LayerBoard/internal/export"
	"LayerBoard/internal/state"
)

// showExportPDF asks for a destination and writes the visible drawing to it.
func showExportPDF(win fyne.Window, proc *state.Processor, opts export.Options) {
	v := proc.View()
	if v.Count() == 0 {
		dialog.ShowInformation("Export PDF", "Nothing to export yet.", win)
		return
	}
	save := dialog.NewFileSave(func(wc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if wc == nil {
			return
		}
		defer wc.Close()
		if err := export.WritePDF(wc, v, opts); err != nil {
			dialog.ShowError(err, win)
		}
	}, win)
	save.SetFileName("board.pdf")
	save.Show()
}
