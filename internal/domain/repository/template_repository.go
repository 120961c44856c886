package repository

import (
	"context"

	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/google/uuid"
)

// TemplateRepository defines the interface for document template operations.
// SetDefault must unset any other default of the same (user, type) pair and
// set the new one in a single transaction, so concurrent callers can never
// leave zero or two defaults behind.
type TemplateRepository interface {
	Create(ctx context.Context, template *entity.Template) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Template, error)
	GetDefault(ctx context.Context, userID uuid.UUID, docType enum.TemplateType) (*entity.Template, error)
	Update(ctx context.Context, template *entity.Template) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]entity.Template, error)
	SetDefault(ctx context.Context, userID, id uuid.UUID, docType enum.TemplateType) error
}
