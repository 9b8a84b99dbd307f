package render

import (
	"errors"

	"github.com/boombuler/barcode/code128"
)

var errBarcodeContent = errors.New("barcode_content_not_encodable")

// encodeBarcode encodes the resolved content as Code 128 and extracts the
// module pattern. Rasterization stays with the print dispatcher; the tree
// only carries the bar/space sequence.
func encodeBarcode(content string) (*BarcodeData, error) {
	if content == "" {
		return nil, errBarcodeContent
	}
	bc, err := code128.Encode(content)
	if err != nil {
		return nil, errBarcodeContent
	}

	bounds := bc.Bounds()
	modules := make([]bool, 0, bounds.Dx())
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		r, g, b, _ := bc.At(x, bounds.Min.Y).RGBA()
		modules = append(modules, r == 0 && g == 0 && b == 0)
	}
	return &BarcodeData{Content: content, Modules: modules}, nil
}
