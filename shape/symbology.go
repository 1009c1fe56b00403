package shape

import "strings"

// Symbology is a barcode encoding standard.
type Symbology string

const (
	QRCode     Symbology = "qrcode"
	DataMatrix Symbology = "datamatrix"
	Code128    Symbology = "code128"
	Code39     Symbology = "code39"
	EAN13      Symbology = "ean13"
	EAN8       Symbology = "ean8"
)

// Symbologies lists every supported symbology. Encoder and decoder both
// handle exactly this set.
var Symbologies = []Symbology{QRCode, DataMatrix, Code128, Code39, EAN13, EAN8}

// decoderNames maps the format names reported by barcode readers onto the
// internal enumeration.
var decoderNames = map[string]Symbology{
	"QR_CODE":     QRCode,
	"QRCODE":      QRCode,
	"DATA_MATRIX": DataMatrix,
	"DATAMATRIX":  DataMatrix,
	"CODE_128":    Code128,
	"CODE128":     Code128,
	"CODE_39":     Code39,
	"CODE39":      Code39,
	"EAN_13":      EAN13,
	"EAN13":       EAN13,
	"EAN_8":       EAN8,
	"EAN8":        EAN8,
}

func (s Symbology) Valid() bool {
	for _, known := range Symbologies {
		if s == known {
			return true
		}
	}
	return false
}

func (s Symbology) String() string { return string(s) }

// TwoDimensional reports whether the symbology is a matrix code.
func (s Symbology) TwoDimensional() bool {
	return s == QRCode || s == DataMatrix
}

// ParseSymbology resolves either an internal name ("qrcode") or a decoder
// format name ("QR_CODE"). Anything else is rejected.
func ParseSymbology(name string) (Symbology, bool) {
	name = strings.TrimSpace(name)
	if s := Symbology(strings.ToLower(name)); s.Valid() {
		return s, true
	}
	s, ok := decoderNames[strings.ToUpper(name)]
	return s, ok
}
