package ui

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"LayerBoard/internal/state"
)

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestLayerPickerFollowsProcessor(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	proc := state.NewProcessor(state.NewStore(), nil)
	lp := newLayerPicker(proc)
	if len(lp.selector.Options) != 1 || lp.selector.Selected != "Layer 0" {
		t.Fatalf("expected only Layer 0 selected, got %v / %q", lp.selector.Options, lp.selector.Selected)
	}

	proc.Apply(state.AddLayer{})
	proc.Apply(state.SelectLayer{ID: 1})
	waitFor(t, "layer 1 in picker", func() bool {
		return len(lp.selector.Options) == 2 && lp.selector.Selected == "Layer 1"
	})

	lp.selector.SetSelected("Layer 0")
	if got := proc.View().CurrentLayer; got != 0 {
		t.Fatalf("expected picker to select layer 0, got %d", got)
	}
}

func TestLayerPickerCloseStopsFollowing(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	proc := state.NewProcessor(state.NewStore(), nil)
	lp := newLayerPicker(proc)
	lp.close()
	lp.close()

	proc.Apply(state.AddLayer{})
	time.Sleep(20 * time.Millisecond)
	if len(lp.selector.Options) != 1 {
		t.Fatalf("closed picker still updated: %v", lp.selector.Options)
	}
}
