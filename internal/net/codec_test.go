package net

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"LayerBoard/internal/state"
)

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want state.Command
	}{
		{"start", `{"type":"start","payload":{"x":1,"y":2}}`, state.StartDrawing{Point: state.Point{X: 1, Y: 2}}},
		{"push with pen", `{"type":"push","payload":{"x":3,"y":4,"width":2,"color":"red"}}`,
			state.PushPoint{Width: 2, Color: "red", Point: state.Point{X: 3, Y: 4}}},
		{"stop", `{"type":"stop"}`, state.StopDrawing{}},
		{"set width", `{"type":"set","payload":{"key":"strokeWidth","value":7}}`, state.ChangeStrokeWidth{Width: 7}},
		{"set color", `{"type":"set","payload":{"key":"strokeColor","value":"blue"}}`, state.ChangeStrokeColor{Color: "blue"}},
		{"paste sized", `{"type":"paste","payload":{"name":"a","width":4,"height":5}}`,
			state.PasteImage{Image: state.ImageSource{Name: "a", Width: 4, Height: 5}}},
		{"select image", `{"type":"selectImage","payload":{"id":"x"}}`, state.SelectImage{ID: "x"}},
		{"start dragging", `{"type":"startDragging"}`, state.StartDragging{}},
		{"drag", `{"type":"drag","payload":{"dx":1,"dy":-1}}`, state.DragImage{Move: state.Move{DX: 1, DY: -1}}},
		{"stop dragging", `{"type":"stopDragging"}`, state.StopDragging{}},
		{"start resizing", `{"type":"startResizing","payload":{"corner":"ne"}}`, state.StartResizing{Corner: state.CornerNE}},
		{"resize", `{"type":"resize","payload":{"dx":2,"dy":3}}`, state.ResizeImage{Move: state.Move{DX: 2, DY: 3}}},
		{"stop resizing", `{"type":"stopResizing"}`, state.StopResizing{}},
		{"undo", `{"type":"undo"}`, state.Undo{}},
		{"redo", `{"type":"redo"}`, state.Redo{}},
		{"clear", `{"type":"clear"}`, state.Clear{}},
		{"add layer", `{"type":"addLayer"}`, state.AddLayer{}},
		{"select layer", `{"type":"selectLayer","payload":2}`, state.SelectLayer{ID: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeCommand([]byte(tt.in))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestDecodeCommandErrors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		unknown bool
	}{
		{"not json", `nope`, false},
		{"unknown type", `{"type":"explode"}`, true},
		{"unknown set key", `{"type":"set","payload":{"key":"opacity","value":1}}`, true},
		{"missing payload", `{"type":"drag"}`, false},
		{"bad corner", `{"type":"startResizing","payload":{"corner":"middle"}}`, false},
		{"bad image", `{"type":"paste","payload":{"name":"x","data":"bm9wZQ=="}}`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeCommand([]byte(tt.in))
			if err == nil {
				t.Fatalf("expected error")
			}
			if got := errors.Is(err, ErrUnknownCommand); got != tt.unknown {
				t.Fatalf("errors.Is(ErrUnknownCommand) = %v, want %v (%v)", got, tt.unknown, err)
			}
		})
	}
}

func TestEncodeCommandRoundTrip(t *testing.T) {
	cmds := []state.Command{
		state.StartDrawing{Width: 3, Color: "red", Point: state.Point{X: 1, Y: 1}},
		state.PushPoint{Width: 3, Color: "red", Point: state.Point{X: 2, Y: 2}},
		state.StopDrawing{},
		state.ChangeStrokeWidth{Width: 4},
		state.ChangeStrokeColor{Color: "#010203"},
		state.PasteImage{Image: state.ImageSource{Name: "n", Format: "png", Width: 3, Height: 3}},
		state.StartResizing{Corner: state.CornerSW},
		state.SelectLayer{ID: 3},
		state.Undo{},
	}
	for _, cmd := range cmds {
		data, err := EncodeCommand(cmd)
		if err != nil {
			t.Fatalf("encode %T: %v", cmd, err)
		}
		got, err := DecodeCommand(data)
		if err != nil {
			t.Fatalf("decode %s: %v", data, err)
		}
		if !reflect.DeepEqual(got, cmd) {
			t.Fatalf("round trip %T: got %#v", cmd, got)
		}
	}
}

func TestResolveStyle(t *testing.T) {
	st := state.Style{Width: 5, Color: "black"}
	got := ResolveStyle(state.StartDrawing{Point: state.Point{X: 1}}, st)
	if got != (state.StartDrawing{Width: 5, Color: "black", Point: state.Point{X: 1}}) {
		t.Fatalf("unexpected start %#v", got)
	}
	got = ResolveStyle(state.PushPoint{Width: 2, Color: "red"}, st)
	if got != (state.PushPoint{Width: 2, Color: "red"}) {
		t.Fatalf("explicit pen overridden: %#v", got)
	}
	if got := ResolveStyle(state.Undo{}, st); got != (state.Undo{}) {
		t.Fatalf("unexpected %#v", got)
	}
}

func TestEncodeView(t *testing.T) {
	s := state.NewStore(state.WithIDSource(state.SequentialIDs("a")))
	s.StartDrawing(2, "red", state.Point{X: 0, Y: 0})
	s.PushPoint(2, "red", state.Point{X: 1, Y: 1})
	s.StopDrawing()
	s.PasteImage(state.ImageSource{Name: "pic", Data: []byte{1, 2, 3}, Width: 4, Height: 4})
	s.StartDrawing(2, "red", state.Point{X: 9, Y: 9})

	data, err := EncodeView(s.View())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	var msg struct {
		Type    string   `json:"type"`
		Payload wireView `json:"payload"`
	}
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Type != TypeView || msg.Payload.Mode != "drawing" {
		t.Fatalf("unexpected header %s %s", msg.Type, msg.Payload.Mode)
	}
	actions := msg.Payload.Layers[0].Actions
	if len(actions) != 2 || actions[0].Kind != "stroke" || actions[1].Kind != "image" {
		t.Fatalf("unexpected actions %+v", actions)
	}
	if actions[1].Rect == nil || actions[1].Rect.Width != 4 || actions[1].Name != "pic" {
		t.Fatalf("unexpected image %+v", actions[1])
	}
	if msg.Payload.Preview == nil || len(msg.Payload.Preview.Points) != 1 {
		t.Fatalf("expected preview, got %+v", msg.Payload.Preview)
	}
	if msg.Payload.Selected != "a-2" {
		t.Fatalf("expected selected image a-2, got %q", msg.Payload.Selected)
	}
}
