package main

import (
	"fmt"
	"image/png"
	"os"

	"inkboard/barcode"
	"inkboard/shape"
)

// exportBarcodePNG renders the selected barcode record to a PNG file in
// the record's own colors.
func (m *model) exportBarcodePNG(filename string) error {
	var code shape.Barcode
	var rec shape.Record
	found := false
	for _, r := range m.editor.Selected() {
		if b, ok := r.Body.(shape.Barcode); ok {
			code, rec, found = b, r, true
			break
		}
	}
	if !found {
		return fmt.Errorf("no barcode selected")
	}

	img, err := m.editor.Codec().Encode(code.Text, code.CodeFormat, barcode.Colors{Bar: rec.Fill, Text: rec.Stroke})
	if err != nil {
		return err
	}

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
