// Package element defines the positioned layout primitives a document
// template is composed of. Elements are plain value objects; they carry no
// reference back to their template and no rendering state.
package element

// Kind discriminates the element variants.
type Kind string

const (
	KindText    Kind = "text"
	KindField   Kind = "field"
	KindImage   Kind = "image"
	KindBarcode Kind = "barcode"
	KindLine    Kind = "line"
	KindRect    Kind = "rect"
	KindTable   Kind = "table"
)

// Valid reports whether k is a known element kind.
func (k Kind) Valid() bool {
	switch k {
	case KindText, KindField, KindImage, KindBarcode, KindLine, KindRect, KindTable:
		return true
	default:
		return false
	}
}

// TableColumn is one column of a table region. Field names a line-item field
// from the placeholder catalog's Pos group, Title is the printed header cell.
type TableColumn struct {
	Field string  `json:"field"`
	Title string  `json:"title"`
	Width float64 `json:"width"`
}

// Element is a single layout primitive on the design surface. Geometry is in
// paper-space units with the origin at the top-left corner of the page.
//
// Binding is set only on field elements; Columns only on table regions. All
// other attributes apply to every kind, with kind-specific defaults assigned
// at creation time.
type Element struct {
	ID   int  `json:"id"`
	Kind Kind `json:"kind"`

	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	Text    string `json:"text,omitempty"`
	Binding string `json:"binding,omitempty"`

	FontFamily string  `json:"fontFamily,omitempty"`
	FontSize   float64 `json:"fontSize,omitempty"`
	Bold       bool    `json:"bold,omitempty"`
	Italic     bool    `json:"italic,omitempty"`
	Underline  bool    `json:"underline,omitempty"`

	Foreground  string `json:"foreground,omitempty"`
	Background  string `json:"background,omitempty"`
	Transparent bool   `json:"transparent,omitempty"`

	BorderWidth float64 `json:"borderWidth,omitempty"`
	BorderColor string  `json:"borderColor,omitempty"`

	Columns []TableColumn `json:"columns,omitempty"`
}

// MoveBy translates the element by (dx, dy), clamping the resulting position
// so it never goes negative. This is the only geometry invariant the model
// enforces; everything else is accepted as authored.
func (e *Element) MoveBy(dx, dy float64) {
	e.X = clamp(e.X + dx)
	e.Y = clamp(e.Y + dy)
}

// Contains reports whether surface point (px, py) falls inside the element's
// bounding box. Edges count as inside so thin elements like lines stay
// clickable.
func (e *Element) Contains(px, py float64) bool {
	return px >= e.X && px <= e.X+e.Width && py >= e.Y && py <= e.Y+e.Height
}

// Clone returns a deep copy, including the column spec of table regions.
func (e Element) Clone() Element {
	out := e
	if len(e.Columns) > 0 {
		out.Columns = make([]TableColumn, len(e.Columns))
		copy(out.Columns, e.Columns)
	}
	return out
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
