// Package dataurl reads and writes base64 data URLs holding images.
package dataurl

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var (
	ErrMalformed = errors.New("malformed data URL")
	ErrNotImage  = errors.New("data URL does not hold an image")
)

type DataURL struct {
	MediaType string
	Data      []byte
}

// Parse decodes a "data:<media type>;base64,<payload>" string.
func Parse(s string) (DataURL, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return DataURL{}, fmt.Errorf("%w: missing data: scheme", ErrMalformed)
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return DataURL{}, fmt.Errorf("%w: missing payload", ErrMalformed)
	}
	mediaType, isBase64 := strings.CutSuffix(header, ";base64")
	if !isBase64 {
		return DataURL{}, fmt.Errorf("%w: payload is not base64", ErrMalformed)
	}
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = mediaType[:i]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return DataURL{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if len(data) == 0 {
		return DataURL{}, fmt.Errorf("%w: empty payload", ErrMalformed)
	}
	return DataURL{MediaType: strings.ToLower(mediaType), Data: data}, nil
}

func (d DataURL) String() string {
	return Encode(d.MediaType, d.Data)
}

func Encode(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// ImageConfig checks that the URL holds a decodable image and returns its
// dimensions and format name.
func ImageConfig(s string) (image.Config, string, error) {
	d, err := Parse(s)
	if err != nil {
		return image.Config{}, "", err
	}
	if d.MediaType != "" && !strings.HasPrefix(d.MediaType, "image/") {
		return image.Config{}, "", fmt.Errorf("%w: %s", ErrNotImage, d.MediaType)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(d.Data))
	if err != nil {
		return image.Config{}, "", fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return cfg, format, nil
}

// DecodeImage decodes the image held by the URL.
func DecodeImage(s string) (image.Image, error) {
	d, err := Parse(s)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(d.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotImage, err)
	}
	return img, nil
}

// ReadFile loads a local file as a data URL, sniffing its media type.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%s: %w: empty file", path, ErrMalformed)
	}
	return Encode(http.DetectContentType(data), data), nil
}
