package artifact

import (
	"bytes"
	"fmt"
	"image"
	"mime"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Meta — то, что удалось узнать о картинке без полного декодирования.
type Meta struct {
	MediaType string
	Format    string
	Width     int
	Height    int
}

// Probe проверяет, что data — изображение, которое можно показать в превью.
// declared — Content-Type из ответа сервиса; он нужен, только если по содержимому тип не определился.
func Probe(data []byte, declared string) (Meta, error) {
	if len(data) == 0 {
		return Meta{}, fmt.Errorf("empty payload")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Meta{}, fmt.Errorf("payload is %s, not an image: %w", mimetype.Detect(data).String(), err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Meta{}, fmt.Errorf("invalid image dimensions %dx%d", cfg.Width, cfg.Height)
	}

	return Meta{
		MediaType: mediaType(data, declared, format),
		Format:    format,
		Width:     cfg.Width,
		Height:    cfg.Height,
	}, nil
}

// mediaType: сигнатура содержимого, затем заявленный image/* тип, затем тип по имени декодера.
func mediaType(data []byte, declared, format string) string {
	if mt := mimetype.Detect(data).String(); strings.HasPrefix(mt, "image/") {
		return mt
	}
	if mt, _, err := mime.ParseMediaType(declared); err == nil && strings.HasPrefix(mt, "image/") {
		return mt
	}
	return "image/" + format
}
