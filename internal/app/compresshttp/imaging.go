package compresshttp

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// compressImage декодирует data, вписывает в квадрат maxSize и пишет JPEG в w.
// Возвращает итоговые размеры.
func compressImage(w io.Writer, data []byte, maxSize, quality int) (image.Point, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return image.Point{}, fmt.Errorf("decode: %w", err)
	}

	dst := fitWithin(src, maxSize)
	if err := jpeg.Encode(w, dst, &jpeg.Options{Quality: quality}); err != nil {
		return image.Point{}, fmt.Errorf("encode: %w", err)
	}

	return dst.Bounds().Size(), nil
}

// fitWithin уменьшает картинку с сохранением пропорций, не увеличивая её.
// Прозрачные области заливаются белым: в JPEG нет альфа-канала.
func fitWithin(src image.Image, maxSize int) *image.RGBA {
	sb := src.Bounds()
	size := targetSize(sb.Dx(), sb.Dy(), maxSize)

	dst := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)

	if size == sb.Size() {
		draw.Draw(dst, dst.Bounds(), src, sb.Min, draw.Over)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, draw.Over, nil)
	return dst
}

func targetSize(w, h, maxSize int) image.Point {
	if w <= maxSize && h <= maxSize {
		return image.Pt(w, h)
	}

	scale := float64(maxSize) / float64(max(w, h))
	nw := max(1, int(math.Round(float64(w)*scale)))
	nh := max(1, int(math.Round(float64(h)*scale)))
	return image.Pt(min(nw, maxSize), min(nh, maxSize))
}
