package placeholder

// Group names are the top-level keys of the document-data context. They are
// German because the tokens are typed verbatim into templates by operators
// and must match the printed business vocabulary.
const (
	GroupFirma    = "Firma"
	GroupKunde    = "Kunde"
	GroupDokument = "Dokument"
	GroupPos      = "Pos"
	GroupVersand  = "Versand"
	GroupMeta     = "Meta"
)

// ValueType hints how the render engine should format a resolved field.
type ValueType string

const (
	TypeText     ValueType = "text"
	TypeCurrency ValueType = "currency"
	TypeDate     ValueType = "date"
	TypeQuantity ValueType = "quantity"
)

// Field is one catalog entry: a substitutable field within a group.
type Field struct {
	Name    string    `json:"name"`
	Caption string    `json:"caption"`
	Type    ValueType `json:"type"`
}

// Group is one named section of the catalog. Fields of the Pos group repeat
// per line item inside a table region; all other groups resolve once per
// document.
type Group struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

var catalog = []Group{
	{Name: GroupFirma, Fields: []Field{
		{Name: "Name", Caption: "Firmenname", Type: TypeText},
		{Name: "Strasse", Caption: "Straße", Type: TypeText},
		{Name: "PLZ", Caption: "Postleitzahl", Type: TypeText},
		{Name: "Ort", Caption: "Ort", Type: TypeText},
		{Name: "Telefon", Caption: "Telefon", Type: TypeText},
		{Name: "EMail", Caption: "E-Mail", Type: TypeText},
		{Name: "UStIdNr", Caption: "USt-IdNr", Type: TypeText},
		{Name: "IBAN", Caption: "IBAN", Type: TypeText},
		{Name: "BIC", Caption: "BIC", Type: TypeText},
	}},
	{Name: GroupKunde, Fields: []Field{
		{Name: "Nummer", Caption: "Kundennummer", Type: TypeText},
		{Name: "Name", Caption: "Name", Type: TypeText},
		{Name: "Strasse", Caption: "Straße", Type: TypeText},
		{Name: "PLZ", Caption: "Postleitzahl", Type: TypeText},
		{Name: "Ort", Caption: "Ort", Type: TypeText},
		{Name: "Land", Caption: "Land", Type: TypeText},
	}},
	{Name: GroupDokument, Fields: []Field{
		{Name: "Nummer", Caption: "Belegnummer", Type: TypeText},
		{Name: "Datum", Caption: "Belegdatum", Type: TypeDate},
		{Name: "Faelligkeit", Caption: "Fälligkeitsdatum", Type: TypeDate},
		{Name: "Netto", Caption: "Nettobetrag", Type: TypeCurrency},
		{Name: "MwSt", Caption: "Mehrwertsteuer", Type: TypeCurrency},
		{Name: "Brutto", Caption: "Bruttobetrag", Type: TypeCurrency},
	}},
	{Name: GroupPos, Fields: []Field{
		{Name: "PosNr", Caption: "Position", Type: TypeText},
		{Name: "ArtNr", Caption: "Artikelnummer", Type: TypeText},
		{Name: "Bezeichnung", Caption: "Bezeichnung", Type: TypeText},
		{Name: "Menge", Caption: "Menge", Type: TypeQuantity},
		{Name: "Einzelpreis", Caption: "Einzelpreis", Type: TypeCurrency},
		{Name: "Gesamt", Caption: "Gesamtpreis", Type: TypeCurrency},
	}},
	{Name: GroupVersand, Fields: []Field{
		{Name: "TrackingNr", Caption: "Sendungsnummer", Type: TypeText},
		{Name: "Dienstleister", Caption: "Versanddienstleister", Type: TypeText},
		{Name: "Gewicht", Caption: "Gewicht", Type: TypeQuantity},
	}},
	{Name: GroupMeta, Fields: []Field{
		{Name: "Seite", Caption: "Seitennummer", Type: TypeText},
		{Name: "Seiten", Caption: "Seitenanzahl", Type: TypeText},
		{Name: "Datum", Caption: "Aktuelles Datum", Type: TypeDate},
		{Name: "Zeit", Caption: "Aktuelle Uhrzeit", Type: TypeText},
		{Name: "Bearbeiter", Caption: "Bearbeiter", Type: TypeText},
	}},
}

// Groups returns the full catalog in stable order.
func Groups() []Group {
	out := make([]Group, len(catalog))
	for i, g := range catalog {
		fields := make([]Field, len(g.Fields))
		copy(fields, g.Fields)
		out[i] = Group{Name: g.Name, Fields: fields}
	}
	return out
}

// Lookup finds a catalog field by token. The second return is false for
// tokens outside the catalog; authoring accepts unknown tokens while
// rendering degrades them to literals.
func Lookup(t Token) (Field, bool) {
	for _, g := range catalog {
		if g.Name != t.Group {
			continue
		}
		for _, f := range g.Fields {
			if f.Name == t.Field {
				return f, true
			}
		}
	}
	return Field{}, false
}

// TypeOf returns the formatting hint for a token, TypeText if unknown.
func TypeOf(t Token) ValueType {
	if f, ok := Lookup(t); ok {
		return f.Type
	}
	return TypeText
}
