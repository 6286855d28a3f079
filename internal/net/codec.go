package net

import (
	"encoding/json"
	"errors"
	"fmt"

	"LayerBoard/internal/state"
)

// ErrUnknownCommand is returned for message types the board does not handle.
var ErrUnknownCommand = errors.New("unknown command")

// Message is the wire envelope for commands and views.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message types. Command names follow the whiteboard's input events.
const (
	TypeStart         = "start"
	TypePush          = "push"
	TypeStop          = "stop"
	TypeSet           = "set"
	TypePaste         = "paste"
	TypeSelectImage   = "selectImage"
	TypeStartDragging = "startDragging"
	TypeDrag          = "drag"
	TypeStopDragging  = "stopDragging"
	TypeStartResizing = "startResizing"
	TypeResize        = "resize"
	TypeStopResizing  = "stopResizing"
	TypeUndo          = "undo"
	TypeRedo          = "redo"
	TypeClear         = "clear"
	TypeAddLayer      = "addLayer"
	TypeSelectLayer   = "selectLayer"

	TypeView  = "view"
	TypeError = "error"
)

type pointPayload struct {
	X     float32 `json:"x"`
	Y     float32 `json:"y"`
	Width float32 `json:"width,omitempty"`
	Color string  `json:"color,omitempty"`
}

type setPayload struct {
	Key   string          `json:"key"`
	Value json.RawMessage `json:"value"`
}

type movePayload struct {
	DX float32 `json:"dx"`
	DY float32 `json:"dy"`
}

type imagePayload struct {
	Name   string  `json:"name"`
	Format string  `json:"format,omitempty"`
	Data   []byte  `json:"data,omitempty"`
	Width  float32 `json:"width,omitempty"`
	Height float32 `json:"height,omitempty"`
}

type resizePayload struct {
	Corner string `json:"corner"`
}

type selectImagePayload struct {
	ID string `json:"id"`
}

// DecodeCommand parses one wire message into a store command. Start and
// push messages without a pen leave Width and Color empty; see ResolveStyle.
func DecodeCommand(data []byte) (state.Command, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	return msg.Command()
}

// Command converts the envelope into a store command.
func (m Message) Command() (state.Command, error) {
	switch m.Type {
	case TypeStart, TypePush:
		var p pointPayload
		if err := m.decode(&p); err != nil {
			return nil, err
		}
		pt := state.Point{X: p.X, Y: p.Y}
		if m.Type == TypeStart {
			return state.StartDrawing{Width: p.Width, Color: p.Color, Point: pt}, nil
		}
		return state.PushPoint{Width: p.Width, Color: p.Color, Point: pt}, nil
	case TypeStop:
		return state.StopDrawing{}, nil
	case TypeSet:
		return m.setCommand()
	case TypePaste:
		var p imagePayload
		if err := m.decode(&p); err != nil {
			return nil, err
		}
		return pasteCommand(p)
	case TypeSelectImage:
		var p selectImagePayload
		if err := m.decode(&p); err != nil {
			return nil, err
		}
		return state.SelectImage{ID: state.ActionID(p.ID)}, nil
	case TypeStartDragging:
		return state.StartDragging{}, nil
	case TypeDrag, TypeResize:
		var p movePayload
		if err := m.decode(&p); err != nil {
			return nil, err
		}
		mv := state.Move{DX: p.DX, DY: p.DY}
		if m.Type == TypeDrag {
			return state.DragImage{Move: mv}, nil
		}
		return state.ResizeImage{Move: mv}, nil
	case TypeStopDragging:
		return state.StopDragging{}, nil
	case TypeStartResizing:
		var p resizePayload
		if err := m.decode(&p); err != nil {
			return nil, err
		}
		c, ok := state.ParseCorner(p.Corner)
		if !ok {
			return nil, fmt.Errorf("startResizing: unknown corner %q", p.Corner)
		}
		return state.StartResizing{Corner: c}, nil
	case TypeStopResizing:
		return state.StopResizing{}, nil
	case TypeUndo:
		return state.Undo{}, nil
	case TypeRedo:
		return state.Redo{}, nil
	case TypeClear:
		return state.Clear{}, nil
	case TypeAddLayer:
		return state.AddLayer{}, nil
	case TypeSelectLayer:
		var id int
		if err := m.decode(&id); err != nil {
			return nil, err
		}
		return state.SelectLayer{ID: state.LayerID(id)}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, m.Type)
}

func (m Message) decode(v any) error {
	if len(m.Payload) == 0 {
		return fmt.Errorf("%s: missing payload", m.Type)
	}
	if err := json.Unmarshal(m.Payload, v); err != nil {
		return fmt.Errorf("%s: %w", m.Type, err)
	}
	return nil
}

func (m Message) setCommand() (state.Command, error) {
	var p setPayload
	if err := m.decode(&p); err != nil {
		return nil, err
	}
	switch p.Key {
	case "strokeWidth":
		var w float32
		if err := json.Unmarshal(p.Value, &w); err != nil {
			return nil, fmt.Errorf("set strokeWidth: %w", err)
		}
		return state.ChangeStrokeWidth{Width: w}, nil
	case "strokeColor":
		var c string
		if err := json.Unmarshal(p.Value, &c); err != nil {
			return nil, fmt.Errorf("set strokeColor: %w", err)
		}
		return state.ChangeStrokeColor{Color: c}, nil
	}
	return nil, fmt.Errorf("%w: set %q", ErrUnknownCommand, p.Key)
}

func pasteCommand(p imagePayload) (state.Command, error) {
	if p.Width == 0 && p.Height == 0 && len(p.Data) > 0 {
		src, err := state.DecodeImageSource(p.Name, p.Data)
		if err != nil {
			return nil, fmt.Errorf("paste: %w", err)
		}
		return state.PasteImage{Image: src}, nil
	}
	return state.PasteImage{Image: state.ImageSource{
		Name:   p.Name,
		Format: p.Format,
		Data:   p.Data,
		Width:  p.Width,
		Height: p.Height,
	}}, nil
}

// ResolveStyle fills a start or push command that carries no pen with st.
func ResolveStyle(cmd state.Command, st state.Style) state.Command {
	switch c := cmd.(type) {
	case state.StartDrawing:
		if c.Width <= 0 {
			c.Width = st.Width
		}
		if c.Color == "" {
			c.Color = st.Color
		}
		return c
	case state.PushPoint:
		if c.Width <= 0 {
			c.Width = st.Width
		}
		if c.Color == "" {
			c.Color = st.Color
		}
		return c
	}
	return cmd
}

// EncodeCommand renders a store command as a wire message.
func EncodeCommand(cmd state.Command) ([]byte, error) {
	var (
		typ     string
		payload any
	)
	switch c := cmd.(type) {
	case state.StartDrawing:
		typ, payload = TypeStart, pointPayload{X: c.Point.X, Y: c.Point.Y, Width: c.Width, Color: c.Color}
	case state.PushPoint:
		typ, payload = TypePush, pointPayload{X: c.Point.X, Y: c.Point.Y, Width: c.Width, Color: c.Color}
	case state.StopDrawing:
		typ = TypeStop
	case state.ChangeStrokeWidth:
		typ, payload = TypeSet, map[string]any{"key": "strokeWidth", "value": c.Width}
	case state.ChangeStrokeColor:
		typ, payload = TypeSet, map[string]any{"key": "strokeColor", "value": c.Color}
	case state.PasteImage:
		typ, payload = TypePaste, imagePayload(c.Image)
	case state.SelectImage:
		typ, payload = TypeSelectImage, selectImagePayload{ID: string(c.ID)}
	case state.StartDragging:
		typ = TypeStartDragging
	case state.DragImage:
		typ, payload = TypeDrag, movePayload(c.Move)
	case state.StopDragging:
		typ = TypeStopDragging
	case state.StartResizing:
		typ, payload = TypeStartResizing, resizePayload{Corner: c.Corner.String()}
	case state.ResizeImage:
		typ, payload = TypeResize, movePayload(c.Move)
	case state.StopResizing:
		typ = TypeStopResizing
	case state.Undo:
		typ = TypeUndo
	case state.Redo:
		typ = TypeRedo
	case state.Clear:
		typ = TypeClear
	case state.AddLayer:
		typ = TypeAddLayer
	case state.SelectLayer:
		typ, payload = TypeSelectLayer, int(c.ID)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
	return marshalMessage(typ, payload)
}

func marshalMessage(typ string, payload any) ([]byte, error) {
	msg := Message{Type: typ}
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", typ, err)
		}
		msg.Payload = raw
	}
	return json.Marshal(msg)
}

type wireAction struct {
	Kind   string        `json:"kind"`
	ID     string        `json:"id"`
	Layer  int           `json:"layer"`
	Style  *state.Style  `json:"style,omitempty"`
	Points []state.Point `json:"points,omitempty"`
	Name   string        `json:"name,omitempty"`
	Rect   *state.Rect   `json:"rect,omitempty"`
}

type wireLayer struct {
	ID      int          `json:"id"`
	Actions []wireAction `json:"actions"`
}

type wireView struct {
	Mode         string      `json:"mode"`
	Corner       string      `json:"corner,omitempty"`
	CurrentLayer int         `json:"currentLayer"`
	Cursor       int         `json:"cursor"`
	Len          int         `json:"len"`
	Style        state.Style `json:"style"`
	Selected     string      `json:"selected,omitempty"`
	Layers       []wireLayer `json:"layers"`
	Preview      *wireAction `json:"preview,omitempty"`
}

// EncodeView renders a view message. Image bytes are not sent; clients
// refer to images by id and name.
func EncodeView(v state.View) ([]byte, error) {
	wv := wireView{
		Mode:         v.Mode.String(),
		Corner:       v.Corner.String(),
		CurrentLayer: int(v.CurrentLayer),
		Cursor:       v.Cursor,
		Len:          v.Len,
		Style:        v.Style,
		Selected:     string(v.Selected),
		Layers:       make([]wireLayer, 0, len(v.Layers)),
	}
	for _, l := range v.Layers {
		wl := wireLayer{ID: int(l.ID), Actions: make([]wireAction, 0, len(l.Actions))}
		for _, a := range l.Actions {
			wl.Actions = append(wl.Actions, toWire(a))
		}
		wv.Layers = append(wv.Layers, wl)
	}
	if v.Preview != nil {
		p := toWire(v.Preview)
		wv.Preview = &p
	}
	return marshalMessage(TypeView, wv)
}

// EncodeError renders an error message for a client.
func EncodeError(err error) []byte {
	data, _ := marshalMessage(TypeError, map[string]string{"message": err.Error()})
	return data
}

func toWire(a state.Action) wireAction {
	w := wireAction{ID: string(a.ActionID()), Layer: int(a.LayerID())}
	switch a := a.(type) {
	case *state.StrokeAction:
		st := a.Style
		w.Kind, w.Style, w.Points = "stroke", &st, a.Points
	case *state.ImageAction:
		r := a.Bounds()
		w.Kind, w.Name, w.Rect = "image", a.Source.Name, &r
	}
	return w
}
