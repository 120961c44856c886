package repository

import (
	"context"

	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/factura/factura-api/pkg/pagination"
	"github.com/google/uuid"
)

// InvoiceRepository defines the interface for invoice data operations.
// Writes that touch an invoice together with its lines are atomic.
type InvoiceRepository interface {
	CreateWithLines(ctx context.Context, invoice *entity.Invoice, lines []entity.InvoiceItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	UpdateWithLines(ctx context.Context, invoice *entity.Invoice, lines []entity.InvoiceItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *InvoiceFilterParams) ([]entity.Invoice, int64, error)
	ListAll(ctx context.Context) ([]entity.Invoice, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.InvoiceStatus) error
}

// InvoiceFilterParams contains filtering parameters for invoice queries.
// Status filters on the stored status; Overdue narrows pending invoices to
// those past their due date.
type InvoiceFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	Overdue    bool
	ClientID   *uuid.UUID
	SortBy     string
	SortOrder  string
}

// PaymentRepository defines the interface for payment ledger operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error)
	SumByInvoiceID(ctx context.Context, invoiceID uuid.UUID) (float64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
