// Package barcode genera etiquetas Code 128 en PNG para los envases de
// reactivos (la contraparte imprimible del escaneo en recepción).
package barcode

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// LabelPNG genera un código Code 128 de width x height píxeles.
func LabelPNG(value string, width, height int) ([]byte, error) {
	if value == "" {
		return nil, fmt.Errorf("barcode: valor vacío")
	}
	code, err := code128.Encode(value)
	if err != nil {
		return nil, fmt.Errorf("barcode: codificar: %w", err)
	}
	scaled, err := barcode.Scale(code, width, height)
	if err != nil {
		return nil, fmt.Errorf("barcode: escalar: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("barcode: png: %w", err)
	}
	return buf.Bytes(), nil
}
