package repository

import (
	"context"
	"errors"

	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/factura/factura-api/internal/domain/enum"
	domainRepo "github.com/factura/factura-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository(db *gorm.DB) domainRepo.TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, template *entity.Template) error {
	return r.db.WithContext(ctx).Create(template).Error
}

func (r *templateRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Template, error) {
	var template entity.Template
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		First(&template, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &template, err
}

func (r *templateRepository) GetDefault(ctx context.Context, userID uuid.UUID, docType enum.TemplateType) (*entity.Template, error) {
	var template entity.Template
	err := r.db.WithContext(ctx).
		First(&template, "user_id = ? AND type = ? AND is_default = ?", userID, docType, true).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &template, err
}

func (r *templateRepository) Update(ctx context.Context, template *entity.Template) error {
	return r.db.WithContext(ctx).Save(template).Error
}

func (r *templateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Delete(&entity.Template{}, "id = ?", id).Error
}

func (r *templateRepository) List(ctx context.Context, userID uuid.UUID) ([]entity.Template, error) {
	var templates []entity.Template
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&templates).Error
	return templates, err
}

// SetDefault unsets the previous default of the same type and marks the new
// one inside a single transaction. Either both writes land or neither does.
func (r *templateRepository) SetDefault(ctx context.Context, userID, id uuid.UUID, docType enum.TemplateType) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Template{}).
			Where("user_id = ? AND type = ? AND id <> ?", userID, docType, id).
			Update("is_default", false).Error; err != nil {
			return err
		}
		return tx.Model(&entity.Template{}).
			Where("user_id = ? AND id = ?", userID, id).
			Update("is_default", true).Error
	})
}
