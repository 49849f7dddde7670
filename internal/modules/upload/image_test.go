package upload

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pngBytes(t *testing.T, width, height int, fill color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if fill != nil {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				img.Set(x, y, fill)
			}
		}
	}
	var buf bytes.Buffer
	assert.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
	return img
}

func TestPrepare_DownscalesWideImage(t *testing.T) {
	out, err := Prepare(bytes.NewReader(pngBytes(t, 2400, 1200, color.White)))
	assert.NoError(t, err)
	assert.Equal(t, 1200, out.Width)
	assert.Equal(t, 600, out.Height)

	img := decodeJPEG(t, out.Data)
	assert.Equal(t, 1200, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestPrepare_DownscalesTallImage(t *testing.T) {
	out, err := Prepare(bytes.NewReader(pngBytes(t, 800, 1600, color.White)))
	assert.NoError(t, err)
	assert.Equal(t, 600, out.Width)
	assert.Equal(t, 1200, out.Height)
}

func TestPrepare_PreservesAspectRatio(t *testing.T) {
	cases := []struct{ w, h int }{
		{3000, 2000},
		{1999, 1333},
		{1201, 1200},
		{1500, 2100},
	}
	for _, tc := range cases {
		out, err := Prepare(bytes.NewReader(pngBytes(t, tc.w, tc.h, color.White)))
		assert.NoError(t, err)
		assert.LessOrEqual(t, out.Width, MaxDimension)
		assert.LessOrEqual(t, out.Height, MaxDimension)

		// Aspect ratio within one pixel of the input's.
		expected := float64(tc.h) * float64(out.Width) / float64(tc.w)
		assert.InDelta(t, expected, float64(out.Height), 1.0,
			"input %dx%d produced %dx%d", tc.w, tc.h, out.Width, out.Height)
	}
}

func TestPrepare_NeverUpscales(t *testing.T) {
	cases := []struct{ w, h int }{
		{100, 80},
		{1200, 1200},
		{640, 480},
		{1, 1},
	}
	for _, tc := range cases {
		out, err := Prepare(bytes.NewReader(pngBytes(t, tc.w, tc.h, color.White)))
		assert.NoError(t, err)
		assert.Equal(t, tc.w, out.Width)
		assert.Equal(t, tc.h, out.Height)
	}
}

func TestPrepare_FlattensTransparencyOntoWhite(t *testing.T) {
	// Fully transparent input must come out white, not black.
	out, err := Prepare(bytes.NewReader(pngBytes(t, 50, 50, color.RGBA{0, 0, 0, 0})))
	assert.NoError(t, err)

	img := decodeJPEG(t, out.Data)
	r, g, b, _ := img.At(25, 25).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestPrepare_RejectsGarbage(t *testing.T) {
	_, err := Prepare(bytes.NewReader([]byte("not an image at all")))
	assert.ErrorIs(t, err, ErrDecode)
}
