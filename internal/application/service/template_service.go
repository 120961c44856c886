package service

import (
	"context"
	"encoding/json"

	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/factura/factura-api/internal/domain/repository"
	"github.com/factura/factura-api/pkg/apperror"
	"github.com/google/uuid"
)

// TemplateService handles document template operations
type TemplateService struct {
	templateRepo repository.TemplateRepository
}

// NewTemplateService creates a new template service
func NewTemplateService(templateRepo repository.TemplateRepository) *TemplateService {
	return &TemplateService{templateRepo: templateRepo}
}

// CreateTemplateInput represents the input for creating a template
type CreateTemplateInput struct {
	UserID    uuid.UUID
	Type      enum.TemplateType
	Name      string
	Content   string
	IsDefault bool
}

// CreateTemplate creates a new template. Content is layout data only and
// must be a valid JSON document.
func (s *TemplateService) CreateTemplate(ctx context.Context, input *CreateTemplateInput) (*entity.Template, error) {
	if input.Content == "" {
		input.Content = "{}"
	}
	if !json.Valid([]byte(input.Content)) {
		return nil, apperror.NewBadRequestError("Template content must be valid JSON")
	}

	template := &entity.Template{
		UserID:  input.UserID,
		Type:    input.Type,
		Name:    input.Name,
		Content: input.Content,
	}

	if err := s.templateRepo.Create(ctx, template); err != nil {
		return nil, err
	}

	if input.IsDefault {
		if err := s.templateRepo.SetDefault(ctx, input.UserID, template.ID, template.Type); err != nil {
			return nil, err
		}
		template.IsDefault = true
	}

	return template, nil
}

// GetTemplate retrieves a template by ID
func (s *TemplateService) GetTemplate(ctx context.Context, id uuid.UUID) (*entity.Template, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, apperror.NewNotFoundError("Template")
	}
	return template, nil
}

// ListTemplates lists the user's templates
func (s *TemplateService) ListTemplates(ctx context.Context, userID uuid.UUID) ([]entity.Template, error) {
	return s.templateRepo.List(ctx, userID)
}

// UpdateTemplateInput represents the input for updating a template
type UpdateTemplateInput struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	Name    string
	Content *string
}

// UpdateTemplate updates a template's name and content
func (s *TemplateService) UpdateTemplate(ctx context.Context, input *UpdateTemplateInput) (*entity.Template, error) {
	template, err := s.templateRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, apperror.NewNotFoundError("Template")
	}

	if input.Name != "" {
		template.Name = input.Name
	}
	if input.Content != nil {
		if !json.Valid([]byte(*input.Content)) {
			return nil, apperror.NewBadRequestError("Template content must be valid JSON")
		}
		template.Content = *input.Content
	}

	if err := s.templateRepo.Update(ctx, template); err != nil {
		return nil, err
	}

	return template, nil
}

// DeleteTemplate deletes a template
func (s *TemplateService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if template == nil {
		return apperror.NewNotFoundError("Template")
	}

	return s.templateRepo.Delete(ctx, id)
}

// SetDefaultTemplate marks a template as the default for its type. The swap
// with the previous default is atomic; readers never observe zero or two
// defaults for the same (user, type).
func (s *TemplateService) SetDefaultTemplate(ctx context.Context, userID, id uuid.UUID) (*entity.Template, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if template == nil {
		return nil, apperror.NewNotFoundError("Template")
	}

	if err := s.templateRepo.SetDefault(ctx, userID, id, template.Type); err != nil {
		return nil, err
	}

	template.IsDefault = true
	return template, nil
}

// GetDefaultTemplate returns the default template for a document type, or
// nil when none is set.
func (s *TemplateService) GetDefaultTemplate(ctx context.Context, userID uuid.UUID, docType enum.TemplateType) (*entity.Template, error) {
	return s.templateRepo.GetDefault(ctx, userID, docType)
}
