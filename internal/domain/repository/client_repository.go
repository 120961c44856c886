package repository

import (
	"context"

	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/factura/factura-api/pkg/pagination"
	"github.com/google/uuid"
)

// ClientRepository defines the interface for client data operations.
// All reads are scoped to the owning user via the context owner scope.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ClientFilterParams) ([]entity.Client, int64, error)
}

// ClientFilterParams contains filtering parameters for client queries
type ClientFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	SortBy     string
	SortOrder  string
}
