package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"LayerBoard/internal/state"
)

// ErrEmptyView is returned when there is nothing visible to export.
var ErrEmptyView = errors.New("export: nothing to export")

// Options tunes PDF output.
type Options struct {
	// Margin is added around the content bounds, in points.
	Margin float64
	// Background fills the page when set.
	Background string
}

// ExportPDF writes the visible board to a PDF file at path.
func ExportPDF(path string, v state.View, opts Options) error {
	p, err := render(v, opts)
	if err != nil {
		return err
	}
	if err := p.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

// WritePDF streams the visible board as a PDF document.
func WritePDF(w io.Writer, v state.View, opts Options) error {
	p, err := render(v, opts)
	if err != nil {
		return err
	}
	if err := p.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// render lays the board out on a single page sized to its content, one
// unit per device pixel. Layers are painted bottom-up in commit order; the
// in-progress stroke is not exported.
func render(v state.View, opts Options) (*gofpdf.Fpdf, error) {
	v.Preview = nil
	bounds, ok := v.Bounds()
	if !ok {
		return nil, ErrEmptyView
	}
	margin := opts.Margin
	width := float64(bounds.Width) + 2*margin
	height := float64(bounds.Height) + 2*margin
	offX := margin - float64(bounds.X)
	offY := margin - float64(bounds.Y)

	// Size already carries the real width and height; "L" would swap them.
	p := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: max(width, 1), Ht: max(height, 1)},
	})
	p.SetMargins(0, 0, 0)
	p.SetAutoPageBreak(false, 0)
	p.AddPage()

	if opts.Background != "" {
		bg := state.ParseColor(opts.Background)
		p.SetFillColor(int(bg.R), int(bg.G), int(bg.B))
		p.Rect(0, 0, width, height, "F")
	}

	p.SetLineCapStyle("round")
	p.SetLineJoinStyle("round")
	for _, layer := range v.Layers {
		for i, a := range layer.Actions {
			switch a := a.(type) {
			case *state.StrokeAction:
				drawStroke(p, a, offX, offY)
			case *state.ImageAction:
				drawImage(p, a, fmt.Sprintf("layer%d-%d", layer.ID, i), offX, offY)
			}
		}
	}
	if err := p.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return p, nil
}

func drawStroke(p *gofpdf.Fpdf, s *state.StrokeAction, offX, offY float64) {
	c := state.ParseColor(s.Style.Color)
	p.SetDrawColor(int(c.R), int(c.G), int(c.B))
	p.SetFillColor(int(c.R), int(c.G), int(c.B))
	p.SetLineWidth(float64(s.Style.Width))

	if len(s.Points) == 1 {
		pt := s.Points[0]
		p.Circle(float64(pt.X)+offX, float64(pt.Y)+offY, float64(s.Style.Width)/2, "F")
		return
	}
	for i := 1; i < len(s.Points); i++ {
		p.Line(
			float64(s.Points[i-1].X)+offX, float64(s.Points[i-1].Y)+offY,
			float64(s.Points[i].X)+offX, float64(s.Points[i].Y)+offY,
		)
	}
}

func drawImage(p *gofpdf.Fpdf, img *state.ImageAction, name string, offX, offY float64) {
	g := img.Bounds()
	if g.Width == 0 || g.Height == 0 {
		return
	}
	x, y := float64(g.X)+offX, float64(g.Y)+offY
	imageType := pdfImageType(img.Source.Format)
	if len(img.Source.Data) == 0 || imageType == "" {
		p.SetDrawColor(160, 160, 160)
		p.SetLineWidth(1)
		p.Rect(x, y, float64(g.Width), float64(g.Height), "D")
		return
	}
	opts := gofpdf.ImageOptions{ImageType: imageType}
	p.RegisterImageOptionsReader(name, opts, bytes.NewReader(img.Source.Data))
	p.ImageOptions(name, x, y, float64(g.Width), float64(g.Height), false, opts, 0, "")
}

func pdfImageType(format string) string {
	switch strings.ToLower(format) {
	case "png":
		return "PNG"
	case "jpg", "jpeg":
		return "JPG"
	case "gif":
		return "GIF"
	}
	return ""
}
