package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, tmpl *Template) error
	// UpdateElements rewrites only the serialized element payload of an
	// existing row. Name, document type and paper format are untouched so a
	// geometry edit never requires re-supplying template metadata.
	UpdateElements(ctx context.Context, db *gorm.DB, id snowflake.ID, payload datatypes.JSON) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Template, error)
	List(ctx context.Context, db *gorm.DB, filter ListRequest) ([]Template, error)
	Deactivate(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
