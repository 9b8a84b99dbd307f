package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Document type tags. A template belongs to exactly one document type; the
// catalog lists templates per type.
const (
	DocTypeRechnung          = "Rechnung"
	DocTypeLieferschein      = "Lieferschein"
	DocTypeMahnung           = "Mahnung"
	DocTypeVersandetikett    = "Versandetikett"
	DocTypeArtikeletikett    = "Artikeletikett"
	DocTypeKommissionierlist = "Kommissionierliste"
)

// DefaultPaperFormat is applied when a template is saved without one.
const DefaultPaperFormat = "A4"

// Template is the persisted layout of one printable business document.
// Elements holds the serialized element list; templates are never hard
// deleted, only deactivated.
type Template struct {
	ID           snowflake.ID   `gorm:"primaryKey"`
	Name         string         `gorm:"type:text;not null"`
	DocumentType string         `gorm:"type:text;not null;index"`
	PaperFormat  string         `gorm:"type:text;not null;default:'A4'"`
	Elements     datatypes.JSON `gorm:"type:jsonb"`
	Active       bool           `gorm:"not null;default:true"`
	CreatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName sets the database table name.
func (Template) TableName() string { return "document_templates" }
