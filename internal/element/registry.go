package element

// defaults describes the creation-time shape of one element kind.
type defaults struct {
	Width   float64
	Height  float64
	Text    string
	Columns []TableColumn
}

// DefaultColumns is the initial column spec of a new table region: one column
// per standard line-item field, keyed into the Pos group.
var DefaultColumns = []TableColumn{
	{Field: "PosNr", Title: "Pos", Width: 30},
	{Field: "ArtNr", Title: "Art-Nr", Width: 70},
	{Field: "Bezeichnung", Title: "Bezeichnung", Width: 150},
	{Field: "Menge", Title: "Menge", Width: 45},
	{Field: "Einzelpreis", Title: "Einzelpreis", Width: 55},
	{Field: "Gesamt", Title: "Gesamt", Width: 55},
}

var kindDefaults = map[Kind]defaults{
	KindText:    {Width: 120, Height: 24, Text: "Text"},
	KindField:   {Width: 120, Height: 24},
	KindImage:   {Width: 100, Height: 50},
	KindBarcode: {Width: 160, Height: 40},
	KindLine:    {Width: 200, Height: 2},
	KindRect:    {Width: 120, Height: 80},
	KindTable:   {Width: 400, Height: 150},
}

const (
	defaultFontFamily = "Arial"
	defaultFontSize   = 10
	defaultForeground = "#000000"
)

// New constructs an element of the given kind at surface position (x, y) with
// the kind's default geometry, text and style. The position is clamped to be
// non-negative; unknown kinds fall back to the text defaults so a stale
// toolbox entry never produces a zero-sized element.
func New(kind Kind, x, y float64) Element {
	d, ok := kindDefaults[kind]
	if !ok {
		kind = KindText
		d = kindDefaults[KindText]
	}

	e := Element{
		Kind:       kind,
		X:          clamp(x),
		Y:          clamp(y),
		Width:      d.Width,
		Height:     d.Height,
		Text:       d.Text,
		FontFamily: defaultFontFamily,
		FontSize:   defaultFontSize,
		Foreground: defaultForeground,
	}
	if kind == KindTable {
		e.Columns = make([]TableColumn, len(DefaultColumns))
		copy(e.Columns, DefaultColumns)
	}
	return e
}

// NewBoundField constructs a field element pre-bound to a placeholder token.
// The token doubles as the display text so the element previews its binding
// before real data exists.
func NewBoundField(token string, x, y float64) Element {
	e := New(KindField, x, y)
	e.Binding = token
	e.Text = token
	return e
}
