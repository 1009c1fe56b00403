// Package adapt turns external artifacts, decoded barcodes and loaded image
// files, into shape records ready to be added to a document.
package adapt

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"inkboard/dataurl"
	"inkboard/shape"
)

var (
	ErrEmptyPayload      = errors.New("barcode payload is empty")
	ErrUnsupportedFormat = errors.New("unsupported barcode format")
	ErrMalformedImage    = errors.New("not a well-formed image data URL")
)

// DefaultBarcodeSize is used when the rendered symbol size is not known.
const DefaultBarcodeSize = 100

// Bounds is the size of the canvas frame new records are centered in.
type Bounds struct {
	Width  float64
	Height float64
}

// Colors are the bar and caption colors of a barcode. They are stored in the
// record's fill and stroke.
type Colors struct {
	Bar  string
	Text string
}

type ImageKind int

const (
	Picture ImageKind = iota
	Drawing
)

type options struct {
	width, height float64
}

type Option func(*options)

// WithSize sets the size of the new record, normally the size the symbol
// or image renders at.
func WithSize(width, height float64) Option {
	return func(o *options) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}

func center(canvas Bounds, width, height float64) (float64, float64) {
	return math.Floor((canvas.Width - width) / 2), math.Floor((canvas.Height - height) / 2)
}

// FromDecodedBarcode builds a barcode record from a decoder's output. The
// format may be an internal name or a decoder format name; anything outside
// the supported symbologies is rejected.
func FromDecodedBarcode(payload, format string, colors Colors, canvas Bounds, opts ...Option) (shape.Record, error) {
	if strings.TrimSpace(payload) == "" {
		return shape.Record{}, ErrEmptyPayload
	}
	sym, ok := shape.ParseSymbology(format)
	if !ok {
		return shape.Record{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	o := options{width: DefaultBarcodeSize, height: DefaultBarcodeSize}
	for _, opt := range opts {
		opt(&o)
	}

	r := shape.New(shape.Barcode{
		Text:       payload,
		CodeFormat: sym,
		Width:      o.width,
		Height:     o.height,
	})
	r.Fill = colors.Bar
	r.Stroke = colors.Text
	r.X, r.Y = center(canvas, o.width, o.height)
	if err := shape.Validate(r); err != nil {
		return shape.Record{}, err
	}
	return r, nil
}

// FromLoadedFile builds an image record from a data URL read off disk. The
// record takes the image's own pixel size unless WithSize overrides it.
func FromLoadedFile(dataURL string, kind ImageKind, canvas Bounds, opts ...Option) (shape.Record, error) {
	cfg, _, err := dataurl.ImageConfig(dataURL)
	if err != nil {
		return shape.Record{}, fmt.Errorf("%w: %v", ErrMalformedImage, err)
	}

	o := options{width: float64(cfg.Width), height: float64(cfg.Height)}
	for _, opt := range opts {
		opt(&o)
	}

	r := shape.New(shape.Image{
		DataURL:   dataURL,
		IsDrawing: kind == Drawing,
		Width:     o.width,
		Height:    o.height,
	})
	r.X, r.Y = center(canvas, o.width, o.height)
	if err := shape.Validate(r); err != nil {
		return shape.Record{}, err
	}
	return r, nil
}
