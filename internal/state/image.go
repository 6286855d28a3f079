package state

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// DecodeImageSource reads the format and natural size of an encoded bitmap.
func DecodeImageSource(name string, data []byte) (ImageSource, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageSource{}, fmt.Errorf("decode image %q: %w", name, err)
	}
	return ImageSource{
		Name:   name,
		Format: format,
		Data:   data,
		Width:  float32(cfg.Width),
		Height: float32(cfg.Height),
	}, nil
}
