package upload

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"
	"math"

	xdraw "golang.org/x/image/draw"

	_ "image/png"

	_ "github.com/gen2brain/heic"
	_ "golang.org/x/image/webp"
)

const (
	// MaxDimension is the bounding box every stored image fits inside.
	MaxDimension = 1200
	jpegQuality  = 80

	// OutputExt and OutputMIME are forced on every prepared image
	// regardless of what came in, HEIC included.
	OutputExt  = ".jpg"
	OutputMIME = "image/jpeg"
)

// EncodedImage is the size-normalized, re-encoded image ready for the
// blob store.
type EncodedImage struct {
	Data   []byte
	Width  int
	Height int
}

// Prepare decodes an image, downscales it to fit MaxDimension on both
// axes with the aspect ratio preserved (never upscaling), flattens any
// transparency onto an opaque white background, and re-encodes as
// JPEG. It either returns a usable encoded image or an error; there is
// no partial output.
func Prepare(r io.Reader) (*EncodedImage, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	targetW, targetH := fitWithin(width, height, MaxDimension)

	// White first, so alpha flattens instead of going black in JPEG.
	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	if targetW == width && targetH == height {
		draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Over)
	} else {
		xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, xdraw.Over, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncode, err)
	}

	return &EncodedImage{
		Data:   buf.Bytes(),
		Width:  targetW,
		Height: targetH,
	}, nil
}

// fitWithin applies one scale factor to both axes: by width when the
// image is landscape and too wide, by height when too tall, otherwise
// the dimensions pass through unchanged.
func fitWithin(width, height, max int) (int, int) {
	if width > height {
		if width > max {
			scale := float64(max) / float64(width)
			return max, int(math.Round(float64(height) * scale))
		}
	} else if height > max {
		scale := float64(max) / float64(height)
		return int(math.Round(float64(width) * scale)), max
	}
	return width, height
}
