// Package imaging re-encodes photos to fit the platform's size limits
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"

	relayerrors "github.com/mexanickx/mexanicke/internal/domain/relay/errors"
)

const (
	DefaultStartQuality = 85
	DefaultQualityStep  = 5
	DefaultMinQuality   = 50
)

// Step is one lossy encode attempt
type Step struct {
	Quality int
	Size    int
}

// Result is the outcome of the quality-stepped loop
type Result struct {
	Data    []byte
	Quality int
	Steps   []Step
}

// Encoded is a photo ready to be written to an upload file
type Encoded struct {
	Data  []byte
	Ext   string
	Lossy bool
	Steps []Step
}

// Normalizer shrinks images below a byte ceiling by lowering JPEG quality
type Normalizer struct {
	ceiling int
	start   int
	step    int
	floor   int
	png     png.Encoder
}

// NewNormalizer creates a normalizer with the default 85→50 quality range
func NewNormalizer(ceiling int) *Normalizer {
	return &Normalizer{
		ceiling: ceiling,
		start:   DefaultStartQuality,
		step:    DefaultQualityStep,
		floor:   DefaultMinQuality,
		png:     png.Encoder{CompressionLevel: png.BestCompression},
	}
}

// Ceiling returns the target size in bytes
func (n *Normalizer) Ceiling() int {
	return n.ceiling
}

// Decode decodes JPEG, PNG, GIF or WebP bytes
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", relayerrors.ErrDecodeImage, err)
	}
	return img, nil
}

// Normalize decodes data and re-encodes it through Compress
func (n *Normalizer) Normalize(data []byte) (Result, error) {
	img, err := Decode(data)
	if err != nil {
		return Result{}, err
	}

	return n.Compress(img)
}

// Compress encodes img as JPEG at decreasing quality until the output fits
// the ceiling or the quality floor is reached.
func (n *Normalizer) Compress(img image.Image) (Result, error) {
	flat := flatten(img)

	var (
		res Result
		buf bytes.Buffer
	)
	for quality := n.start; ; quality -= n.step {
		buf.Reset()
		if err := jpeg.Encode(&buf, flat, &jpeg.Options{Quality: quality}); err != nil {
			return Result{}, fmt.Errorf("jpeg encode at quality %d: %w", quality, err)
		}

		res.Steps = append(res.Steps, Step{Quality: quality, Size: buf.Len()})

		if buf.Len() <= n.ceiling || quality <= n.floor {
			res.Quality = quality
			res.Data = bytes.Clone(buf.Bytes())
			return res, nil
		}
	}
}

// Lossless encodes the photo as PNG, falling back to Compress when the PNG
// does not fit the ceiling.
func (n *Normalizer) Lossless(data []byte) (Encoded, error) {
	img, err := Decode(data)
	if err != nil {
		return Encoded{}, err
	}

	var buf bytes.Buffer
	if err := n.png.Encode(&buf, img); err != nil {
		return Encoded{}, fmt.Errorf("png encode: %w", err)
	}

	if buf.Len() <= n.ceiling {
		return Encoded{Data: buf.Bytes(), Ext: ".png"}, nil
	}

	res, err := n.Compress(img)
	if err != nil {
		return Encoded{}, err
	}
	return Encoded{Data: res.Data, Ext: ".jpg", Lossy: true, Steps: res.Steps}, nil
}

// flatten composites translucent images over white; JPEG has no alpha
func flatten(img image.Image) image.Image {
	if o, ok := img.(interface{ Opaque() bool }); ok && o.Opaque() {
		return img
	}

	b := img.Bounds()
	dst := image.NewRGBA(b)
	draw.Draw(dst, b, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, b, img, b.Min, draw.Over)
	return dst
}
