package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/druckwerk/belegdesigner/internal/template/domain"
)

type templateRepository struct{}

// Provide constructs the gorm-backed template repository.
func Provide() domain.Repository {
	return &templateRepository{}
}

func (r *templateRepository) Insert(ctx context.Context, db *gorm.DB, tmpl *domain.Template) error {
	return db.WithContext(ctx).Create(tmpl).Error
}

func (r *templateRepository) UpdateElements(ctx context.Context, db *gorm.DB, id snowflake.ID, payload datatypes.JSON) error {
	res := db.WithContext(ctx).
		Model(&domain.Template{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"elements":   payload,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *templateRepository) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Template, error) {
	var tmpl domain.Template
	err := db.WithContext(ctx).First(&tmpl, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tmpl, nil
}

func (r *templateRepository) List(ctx context.Context, db *gorm.DB, filter domain.ListRequest) ([]domain.Template, error) {
	query := db.WithContext(ctx).Model(&domain.Template{})
	if filter.DocumentType != "" {
		query = query.Where("document_type = ?", filter.DocumentType)
	}
	if !filter.IncludeInactive {
		query = query.Where("active = ?", true)
	}
	var templates []domain.Template
	if err := query.Order("name").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepository) Deactivate(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	res := db.WithContext(ctx).
		Model(&domain.Template{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"active":     false,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
