package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"

	"github.com/druckwerk/belegdesigner/internal/element"
)

type ListRequest struct {
	DocumentType    string `form:"document_type"`
	IncludeInactive bool   `form:"include_inactive"`
}

// SaveRequest persists a design session. An empty or "0" ID inserts a new
// template and returns its generated ID; a non-zero ID updates only the
// element payload of the existing row.
type SaveRequest struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	DocumentType string            `json:"document_type"`
	PaperFormat  string            `json:"paper_format"`
	Elements     []element.Element `json:"elements"`
}

type Response struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	DocumentType string            `json:"document_type"`
	PaperFormat  string            `json:"paper_format"`
	Elements     []element.Element `json:"elements"`
	Active       bool              `json:"active"`
	// Warning is set when the stored payload could not be decoded and the
	// template degraded to an empty surface.
	Warning   string    `json:"warning,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Service interface {
	Save(ctx context.Context, req SaveRequest) (*Response, error)
	Load(ctx context.Context, id string) (*Response, error)
	List(ctx context.Context, req ListRequest) ([]Response, error)
	Deactivate(ctx context.Context, id string) (*Response, error)
}

// ParseID parses a request-level template ID. "" and "0" mean unsaved.
func ParseID(raw string) (snowflake.ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "0" {
		return 0, nil
	}
	return snowflake.ParseString(raw)
}

var (
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidName         = errors.New("invalid_name")
	ErrInvalidDocumentType = errors.New("invalid_document_type")
	ErrNotFound            = errors.New("not_found")
	ErrCorruptPayload      = errors.New("corrupt_element_payload")
)
