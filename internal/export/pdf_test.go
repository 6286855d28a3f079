package export

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"LayerBoard/internal/state"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		img.Set(x, x, color.NRGBA{R: 255, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func testView(t *testing.T) state.View {
	s := state.NewStore(state.WithPasteOrigin(state.Point{X: 40, Y: 40}))
	s.StartDrawing(3, "red", state.Point{X: 0, Y: 0})
	s.PushPoint(3, "red", state.Point{X: 30, Y: 30})
	s.StopDrawing()
	s.StartDrawing(6, "#336699", state.Point{X: 10, Y: 5})
	s.StopDrawing()
	s.SelectLayer(s.AddLayer())
	s.PasteImage(state.ImageSource{Name: "dot.png", Format: "png", Data: testPNG(t), Width: 4, Height: 4})
	s.PasteImage(state.ImageSource{Name: "raw", Format: "bmp", Width: 8, Height: 8})
	return s.View()
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, testView(t), Options{Margin: 10, Background: "white"}); err != nil {
		t.Fatalf("write pdf: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a pdf: %q", buf.Bytes()[:min(buf.Len(), 16)])
	}
}

func TestExportPDFWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.pdf")
	if err := ExportPDF(path, testView(t), Options{}); err != nil {
		t.Fatalf("export: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("expected non-empty file")
	}
}

func TestExportEmptyView(t *testing.T) {
	s := state.NewStore()
	s.StartDrawing(3, "black", state.Point{})
	var buf bytes.Buffer
	if err := WritePDF(&buf, s.View(), Options{}); !errors.Is(err, ErrEmptyView) {
		t.Fatalf("expected ErrEmptyView, got %v", err)
	}
}

func TestPDFImageType(t *testing.T) {
	tests := map[string]string{"png": "PNG", "JPEG": "JPG", "jpg": "JPG", "gif": "GIF", "webp": ""}
	for in, want := range tests {
		if got := pdfImageType(in); got != want {
			t.Errorf("pdfImageType(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRenderPageMatchesContent(t *testing.T) {
	tests := []struct {
		name string
		to   state.Point
	}{
		{name: "wide", to: state.Point{X: 600, Y: 100}},
		{name: "tall", to: state.Point{X: 100, Y: 600}},
	}
	for _, tc := range tests {
		s := state.NewStore()
		s.StartDrawing(2, "black", state.Point{X: 0, Y: 0})
		s.PushPoint(2, "black", tc.to)
		s.StopDrawing()
		v := s.View()
		bounds, ok := v.Bounds()
		if !ok {
			t.Fatalf("%s: expected bounds", tc.name)
		}
		p, err := render(v, Options{Margin: 10})
		if err != nil {
			t.Fatalf("%s: render: %v", tc.name, err)
		}
		w, h := p.GetPageSize()
		wantW := float64(bounds.Width) + 20
		wantH := float64(bounds.Height) + 20
		if math.Abs(w-wantW) > 0.01 || math.Abs(h-wantH) > 0.01 {
			t.Fatalf("%s: expected page %vx%v, got %vx%v", tc.name, wantW, wantH, w, h)
		}
	}
}
