package render

import "github.com/druckwerk/belegdesigner/internal/element"

// TemplateInfo is the header data of the template being rendered.
type TemplateInfo struct {
	ID          string
	Name        string
	PaperFormat string
}

// VisualTree is the resolved projection of one template against one data
// context. Nodes keep the element order of the template, so z-order and
// geometry carry over unchanged and rendering the tree is a pure drawing
// pass.
type VisualTree struct {
	Template TemplateInfo
	Nodes    []Node
	// Warnings collects non-fatal conditions: unresolved tokens, empty table
	// regions, unencodable barcodes. The tree is always complete regardless.
	Warnings []string
}

// Node is one resolved element. Element carries the original geometry and
// style; Text is the final display text. Table and Barcode are set only for
// their respective kinds.
type Node struct {
	Element element.Element
	Text    string
	Table   *TableData
	Barcode *BarcodeData
}

// TableData is a resolved table region: the fixed header row plus one body
// row per line item, in supplied order.
type TableData struct {
	Header []string
	Rows   [][]string
}

// BarcodeData is a Code 128 encoded barcode: Modules is the bar/space
// pattern, one entry per module, true meaning bar.
type BarcodeData struct {
	Content string
	Modules []bool
}
