package barcode

import (
	"fmt"
	"image"

	"github.com/makiuchi-d/gozxing"
	zxdatamatrix "github.com/makiuchi-d/gozxing/datamatrix"
	"github.com/makiuchi-d/gozxing/oned"
	zxqrcode "github.com/makiuchi-d/gozxing/qrcode"
)

// readers covers the same symbologies Encode produces.
func readers() []gozxing.Reader {
	return []gozxing.Reader{
		zxqrcode.NewQRCodeReader(),
		zxdatamatrix.NewDataMatrixReader(),
		oned.NewCode128Reader(),
		oned.NewCode39Reader(),
		oned.NewEAN13Reader(),
		oned.NewEAN8Reader(),
	}
}

// Decode finds a barcode in img.
func Decode(img image.Image) (Result, error) {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	// The second pass treats the image as a pure, axis-aligned symbol.
	passes := []map[gozxing.DecodeHintType]interface{}{
		{gozxing.DecodeHintType_TRY_HARDER: true},
		{gozxing.DecodeHintType_TRY_HARDER: true, gozxing.DecodeHintType_PURE_BARCODE: true},
	}
	for _, hints := range passes {
		for _, reader := range readers() {
			res, err := reader.Decode(bmp, hints)
			if err != nil || res.GetText() == "" {
				continue
			}
			return Result{Text: res.GetText(), Format: res.GetBarcodeFormat().String()}, nil
		}
	}
	return Result{}, ErrNotFound
}
