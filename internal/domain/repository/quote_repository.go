package repository

import (
	"context"

	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/factura/factura-api/pkg/pagination"
	"github.com/google/uuid"
)

// QuoteRepository defines the interface for quote data operations. Writes
// that touch a quote together with its lines are atomic: either the document
// and all its lines land, or nothing does.
type QuoteRepository interface {
	CreateWithLines(ctx context.Context, quote *entity.Quote, lines []entity.QuoteItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	UpdateWithLines(ctx context.Context, quote *entity.Quote, lines []entity.QuoteItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *QuoteFilterParams) ([]entity.Quote, int64, error)
	ListAll(ctx context.Context) ([]entity.Quote, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error

	// Convert persists the invoice with its lines and updates the quote in
	// one transaction, so a conversion can never half-land.
	Convert(ctx context.Context, quote *entity.Quote, invoice *entity.Invoice, lines []entity.InvoiceItem) error
}

// QuoteFilterParams contains filtering parameters for quote queries
type QuoteFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuoteStatus
	ClientID   *uuid.UUID
	SortBy     string
	SortOrder  string
}
