package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNormalizePNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for y := 0; y < 6; y++ {
		for x := 0; x < 8; x++ {
			src.Set(x, y, color.RGBA{R: uint8(x * 30), G: 120, B: 200, A: 255})
		}
	}

	out, err := Normalize(encodePNG(t, src))
	require.NoError(t, err)

	decoded, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, "png", format)
	require.Equal(t, src.Bounds().Dx(), decoded.Bounds().Dx())
	require.Equal(t, src.Bounds().Dy(), decoded.Bounds().Dy())
	_, isGray := decoded.(*image.Gray)
	require.True(t, isGray, "normalized image must be grayscale")
}

func TestNormalizeJPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, src, &jpeg.Options{Quality: 90}))

	out, err := Normalize(buf.Bytes())
	require.NoError(t, err)
	_, format, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	require.Equal(t, "png", format)
}

func TestNormalizeStretchesContrast(t *testing.T) {
	// Две полосы 50/200 должны растянуться до 0/255.
	src := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			v := uint8(50)
			if x >= 5 {
				v = 200
			}
			src.SetGray(x, y, color.Gray{Y: v})
		}
	}

	out, err := Normalize(encodePNG(t, src))
	require.NoError(t, err)
	decoded, _, err := image.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	gray := decoded.(*image.Gray)

	lo, hi := uint8(255), uint8(0)
	for _, v := range gray.Pix {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	require.Equal(t, uint8(0), lo)
	require.Equal(t, uint8(255), hi)
}

func TestNormalizeDeterministic(t *testing.T) {
	raw := encodePNG(t, image.NewRGBA(image.Rect(0, 0, 3, 3)))
	a, err := Normalize(raw)
	require.NoError(t, err)
	b, err := Normalize(raw)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	for _, raw := range [][]byte{nil, {}, []byte("not an image"), {0xFF, 0xD8, 0x00}} {
		_, err := Normalize(raw)
		require.Error(t, err)
	}
}
