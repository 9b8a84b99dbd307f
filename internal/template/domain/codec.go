package domain

import (
	"encoding/json"

	"gorm.io/datatypes"

	"github.com/druckwerk/belegdesigner/internal/element"
)

// EncodeElements serializes an element list into the stored payload form.
// The encoding is plain JSON so every element attribute survives the round
// trip unchanged.
func EncodeElements(elements []element.Element) (datatypes.JSON, error) {
	if elements == nil {
		elements = []element.Element{}
	}
	raw, err := json.Marshal(elements)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// DecodeElements restores an element list from a stored payload. A missing or
// empty payload yields an empty list; a payload that does not parse yields an
// empty list plus ErrCorruptPayload so callers can degrade to an empty
// surface with a warning instead of failing the load.
func DecodeElements(payload datatypes.JSON) ([]element.Element, error) {
	if len(payload) == 0 {
		return []element.Element{}, nil
	}
	var elements []element.Element
	if err := json.Unmarshal(payload, &elements); err != nil {
		return []element.Element{}, ErrCorruptPayload
	}
	if elements == nil {
		elements = []element.Element{}
	}
	return elements, nil
}
