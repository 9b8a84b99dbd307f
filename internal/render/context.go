package render

import "github.com/druckwerk/belegdesigner/internal/placeholder"

// DataContext is the document data a template is rendered against. It is
// read-only input: the engine never writes into these maps. Pos holds one
// entry per line item, in print order.
type DataContext struct {
	Firma    map[string]any   `json:"Firma,omitempty"`
	Kunde    map[string]any   `json:"Kunde,omitempty"`
	Dokument map[string]any   `json:"Dokument,omitempty"`
	Versand  map[string]any   `json:"Versand,omitempty"`
	Meta     map[string]any   `json:"Meta,omitempty"`
	Pos      []map[string]any `json:"Pos,omitempty"`
}

// group returns the scalar group for a token's group name. Pos is not
// addressable here; line-item fields only resolve inside a table region.
func (c DataContext) group(name string) (map[string]any, bool) {
	switch name {
	case placeholder.GroupFirma:
		return c.Firma, c.Firma != nil
	case placeholder.GroupKunde:
		return c.Kunde, c.Kunde != nil
	case placeholder.GroupDokument:
		return c.Dokument, c.Dokument != nil
	case placeholder.GroupVersand:
		return c.Versand, c.Versand != nil
	case placeholder.GroupMeta:
		return c.Meta, c.Meta != nil
	default:
		return nil, false
	}
}
