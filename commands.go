package main

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"inkboard/barcode"
	"inkboard/dataurl"
	"inkboard/fonts"
)

// loadFileCmd reads an image file off the UI goroutine.
func loadFileCmd(op FileOperation, path string) tea.Cmd {
	return func() tea.Msg {
		url, err := dataurl.ReadFile(path)
		return fileLoadedMsg{op: op, path: path, dataURL: url, err: err}
	}
}

func decodeBarcodeCmd(codec barcode.Codec, path, url string) tea.Cmd {
	return func() tea.Msg {
		img, err := dataurl.DecodeImage(url)
		if err != nil {
			return barcodeDecodedMsg{path: path, err: err}
		}
		res, err := codec.Decode(img)
		return barcodeDecodedMsg{path: path, result: res, err: err}
	}
}

func loadFontCmd(registry *fonts.Registry, family string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fontLoadTimeout*time.Second)
		defer cancel()
		category, err := registry.Load(ctx, family)
		if err != nil {
			log.Printf("loading font %q: %v", family, err)
		}
		return fontLoadedMsg{family: family, category: category, err: err}
	}
}
