package domain

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/druckwerk/belegdesigner/internal/element"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	field := element.NewBoundField("{Versand.TrackingNr}", 50, 50)
	field.ID = 1
	field.Bold = true
	field.FontSize = 14
	field.Foreground = "#202020"

	table := element.New(element.KindTable, 20, 120)
	table.ID = 2
	table.Columns = []element.TableColumn{
		{Field: "ArtNr", Title: "Art-Nr", Width: 80},
		{Field: "Menge", Title: "Menge", Width: 40},
	}

	line := element.New(element.KindLine, 0, 280)
	line.ID = 3
	line.BorderWidth = 1.5
	line.BorderColor = "#ff0000"
	line.Background = "#eeeeee"
	line.Transparent = true
	line.Italic = true
	line.Underline = true

	in := []element.Element{field, table, line}

	payload, err := EncodeElements(in)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeElements(payload)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Fatalf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestDecodeEmptyPayload(t *testing.T) {
	for _, payload := range [][]byte{nil, {}} {
		out, err := DecodeElements(payload)
		if err != nil {
			t.Fatalf("decode empty: %v", err)
		}
		if len(out) != 0 {
			t.Fatalf("expected empty element list, got %d", len(out))
		}
	}
}

func TestDecodeCorruptPayloadDegrades(t *testing.T) {
	out, err := DecodeElements([]byte(`{"not":"a list`))
	if !errors.Is(err, ErrCorruptPayload) {
		t.Fatalf("expected ErrCorruptPayload, got %v", err)
	}
	if out == nil || len(out) != 0 {
		t.Fatalf("corrupt payload must decode to an empty list, got %v", out)
	}
}

func TestEncodeNilElements(t *testing.T) {
	payload, err := EncodeElements(nil)
	if err != nil {
		t.Fatalf("encode nil: %v", err)
	}
	if string(payload) != "[]" {
		t.Fatalf("payload %q, want []", payload)
	}
}
