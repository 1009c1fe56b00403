// Package barcode encodes text into barcode images and reads barcodes back
// out of images.
package barcode

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	bb "github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/datamatrix"
	"github.com/boombuler/barcode/ean"
	"github.com/boombuler/barcode/qr"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"inkboard/shape"
)

var (
	ErrUnsupported = errors.New("unsupported symbology")
	ErrNotFound    = errors.New("no barcode found")
)

const (
	matrixScale = 4  // pixels per module for 2D codes
	linearScale = 2  // pixels per module for 1D codes
	barHeight   = 80 // bar height of 1D codes in pixels
	captionSize = 20 // height of the text line under 1D codes
)

// Colors of a rendered symbol. Empty fields fall back to black bars and
// text on white.
type Colors struct {
	Bar        string
	Text       string
	Background string
}

func (c Colors) withDefaults() Colors {
	if c.Bar == "" {
		c.Bar = "#000000"
	}
	if c.Text == "" {
		c.Text = "#000000"
	}
	if c.Background == "" {
		c.Background = "#ffffff"
	}
	return c
}

// Result is what a decoder found. Format is the reader's own format name,
// for example "QR_CODE"; map it with shape.ParseSymbology.
type Result struct {
	Text   string
	Format string
}

// Codec is the encode/decode pair used by the editor.
type Codec interface {
	Encode(text string, format shape.Symbology, colors Colors) (image.Image, error)
	Decode(img image.Image) (Result, error)
}

// Standard is the Codec backed by the package functions.
type Standard struct{}

func (Standard) Encode(text string, format shape.Symbology, colors Colors) (image.Image, error) {
	return Encode(text, format, colors)
}

func (Standard) Decode(img image.Image) (Result, error) {
	return Decode(img)
}

func onlyDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func encodeSymbol(text string, format shape.Symbology) (bb.Barcode, error) {
	switch format {
	case shape.QRCode:
		return qr.Encode(text, qr.M, qr.Auto)
	case shape.DataMatrix:
		return datamatrix.Encode(text)
	case shape.Code128:
		return code128.Encode(text)
	case shape.Code39:
		return code39.Encode(strings.ToUpper(text), false, true)
	case shape.EAN13:
		if !onlyDigits(text) || (len(text) != 12 && len(text) != 13) {
			return nil, fmt.Errorf("ean13 needs 12 or 13 digits, got %q", text)
		}
		return ean.Encode(text)
	case shape.EAN8:
		if !onlyDigits(text) || (len(text) != 7 && len(text) != 8) {
			return nil, fmt.Errorf("ean8 needs 7 or 8 digits, got %q", text)
		}
		return ean.Encode(text)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, format)
}

var (
	captionOnce sync.Once
	captionFace font.Face
	captionErr  error
)

func loadCaptionFace() (font.Face, error) {
	captionOnce.Do(func() {
		ttf, err := truetype.Parse(gomono.TTF)
		if err != nil {
			captionErr = fmt.Errorf("failed to parse font: %v", err)
			return
		}
		captionFace = truetype.NewFace(ttf, &truetype.Options{
			Size:    12,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	})
	return captionFace, captionErr
}

func isDark(img image.Image, x, y int) bool {
	r, g, b, _ := img.At(x, y).RGBA()
	return r+g+b < 3*0x8000
}

// Encode renders text as a barcode of the given symbology. Bars are painted
// in the bar color; 1D codes get the payload printed underneath in the
// text color.
func Encode(text string, format shape.Symbology, colors Colors) (image.Image, error) {
	if text == "" {
		return nil, errors.New("nothing to encode")
	}
	symbol, err := encodeSymbol(text, format)
	if err != nil {
		return nil, err
	}
	colors = colors.withDefaults()

	linear := !format.TwoDimensional()
	scale, quiet := matrixScale, 4*matrixScale
	if linear {
		scale, quiet = linearScale, 10*linearScale
	}
	width := symbol.Bounds().Dx() * scale
	height := symbol.Bounds().Dy() * scale
	if linear {
		height = barHeight
	}
	scaled, err := bb.Scale(symbol, width, height)
	if err != nil {
		return nil, fmt.Errorf("scale %s: %w", format, err)
	}

	caption := 0
	if linear {
		caption = captionSize
	}
	dc := gg.NewContext(width+2*quiet, height+2*quiet+caption)
	dc.SetHexColor(colors.Background)
	dc.Clear()

	dc.SetHexColor(colors.Bar)
	b := scaled.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if isDark(scaled, x, y) {
				dc.SetPixel(x-b.Min.X+quiet, y-b.Min.Y+quiet)
			}
		}
	}

	if linear {
		face, err := loadCaptionFace()
		if err != nil {
			return nil, err
		}
		dc.SetFontFace(face)
		dc.SetHexColor(colors.Text)
		dc.DrawStringAnchored(symbol.Content(), float64(dc.Width())/2, float64(quiet+height)+float64(caption)/2, 0.5, 0.5)
	}
	return dc.Image(), nil
}
