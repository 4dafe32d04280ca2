// Package imaging приводит произвольную картинку к каноническому виду для
// OCR: одноканальный grayscale, автоконтраст, PNG. Никакого ресайза и
// поворотов — модель справляется сама.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	_ "image/gif"  // регистрация декодера
	_ "image/jpeg" // регистрация декодера

	_ "golang.org/x/image/webp" // регистрация декодера
)

// Доля гистограммы, срезаемая с каждого хвоста при автоконтрасте.
// 1% гасит блики и тени на фото тетрадного листа.
const clipFraction = 0.01

// Normalize декодирует raw, переводит в grayscale, растягивает контраст и
// кодирует PNG. Чистая функция: одинаковый вход — одинаковый выход.
func Normalize(raw []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	gray := toGray(img)
	autocontrast(gray, clipFraction)

	var out bytes.Buffer
	if err := png.Encode(&out, gray); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return out.Bytes(), nil
}

func toGray(src image.Image) *image.Gray {
	b := src.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.GrayModel.Convert(src.At(x, y)).(color.Gray)
			dst.SetGray(x-b.Min.X, y-b.Min.Y, c)
		}
	}
	return dst
}

// autocontrast линейно растягивает яркость так, чтобы после отбрасывания
// clip-доли пикселей с каждого края гистограммы диапазон стал [0,255].
// Аналог PIL ImageOps.autocontrast(cutoff=1).
func autocontrast(g *image.Gray, clip float64) {
	var hist [256]int
	for _, v := range g.Pix {
		hist[v]++
	}
	total := len(g.Pix)
	if total == 0 {
		return
	}

	cut := int(float64(total) * clip)

	lo := 0
	for acc := 0; lo < 255; lo++ {
		acc += hist[lo]
		if acc > cut {
			break
		}
	}
	hi := 255
	for acc := 0; hi > 0; hi-- {
		acc += hist[hi]
		if acc > cut {
			break
		}
	}
	if hi <= lo {
		return // вырожденная гистограмма, трогать нечего
	}

	scale := 255.0 / float64(hi-lo)
	var lut [256]uint8
	for i := range lut {
		v := float64(i-lo) * scale
		switch {
		case v < 0:
			lut[i] = 0
		case v > 255:
			lut[i] = 255
		default:
			lut[i] = uint8(v + 0.5)
		}
	}
	for i, v := range g.Pix {
		g.Pix[i] = lut[v]
	}
}
