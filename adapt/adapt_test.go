package adapt

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkboard/dataurl"
	"inkboard/shape"
)

var canvas = Bounds{Width: 800, Height: 600}

func TestFromDecodedBarcode(t *testing.T) {
	r, err := FromDecodedBarcode("hello", "QR_CODE", Colors{Bar: "#000000", Text: "#333333"}, canvas)
	require.NoError(t, err)

	body, ok := r.Body.(shape.Barcode)
	require.True(t, ok)
	assert.Equal(t, "hello", body.Text)
	assert.Equal(t, shape.QRCode, body.CodeFormat)
	assert.Equal(t, "#000000", r.Fill)
	assert.Equal(t, "#333333", r.Stroke)
	assert.Equal(t, 350.0, r.X)
	assert.Equal(t, 250.0, r.Y)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, 1.0, r.Opacity)
}

func TestFromDecodedBarcodeWithSize(t *testing.T) {
	r, err := FromDecodedBarcode("4006381333931", "ean13", Colors{}, canvas, WithSize(191, 81))
	require.NoError(t, err)
	assert.Equal(t, 304.0, r.X)
	assert.Equal(t, 259.0, r.Y)
}

func TestFromDecodedBarcodeRejects(t *testing.T) {
	_, err := FromDecodedBarcode("", "QR_CODE", Colors{}, canvas)
	assert.True(t, errors.Is(err, ErrEmptyPayload))

	_, err = FromDecodedBarcode("   ", "QR_CODE", Colors{}, canvas)
	assert.True(t, errors.Is(err, ErrEmptyPayload))

	_, err = FromDecodedBarcode("x", "MAXICODE", Colors{}, canvas)
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))
}

func TestFreshIDs(t *testing.T) {
	existing := map[string]bool{}
	for i := 0; i < 50; i++ {
		r, err := FromDecodedBarcode("x", "qrcode", Colors{}, canvas)
		require.NoError(t, err)
		require.False(t, existing[r.ID])
		existing[r.ID] = true
	}
}

func TestFromLoadedFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 200, 100))))
	url := dataurl.Encode("image/png", buf.Bytes())

	r, err := FromLoadedFile(url, Picture, canvas)
	require.NoError(t, err)
	body := r.Body.(shape.Image)
	assert.Equal(t, url, body.DataURL)
	assert.False(t, body.IsDrawing)
	assert.Equal(t, 200.0, body.Width)
	assert.Equal(t, 300.0, r.X)
	assert.Equal(t, 250.0, r.Y)

	r, err = FromLoadedFile(url, Drawing, canvas)
	require.NoError(t, err)
	assert.True(t, r.Body.(shape.Image).IsDrawing)
}

func TestFromLoadedFileRejects(t *testing.T) {
	for _, s := range []string{"", "not a url", "data:image/png;base64,aGVsbG8="} {
		_, err := FromLoadedFile(s, Picture, canvas)
		assert.True(t, errors.Is(err, ErrMalformedImage), "%q", s)
	}
}
