package service

import (
	"context"
	"time"

	"github.com/factura/factura-api/internal/domain/billing"
	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/factura/factura-api/internal/domain/repository"
	"github.com/factura/factura-api/pkg/apperror"
	"github.com/factura/factura-api/pkg/pagination"
	"github.com/google/uuid"
)

// MinPaymentAmount is the smallest payment the ledger accepts, one cent.
const MinPaymentAmount = 0.01

// InvoiceService handles invoice and payment operations
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	paymentRepo repository.PaymentRepository
	itemRepo    repository.ItemRepository
	clientRepo  repository.ClientRepository
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	paymentRepo repository.PaymentRepository,
	itemRepo repository.ItemRepository,
	clientRepo repository.ClientRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		itemRepo:    itemRepo,
		clientRepo:  clientRepo,
	}
}

// CreateInvoiceInput represents the input for creating an invoice
type CreateInvoiceInput struct {
	UserID        uuid.UUID
	ClientID      uuid.UUID
	Date          time.Time
	DueDate       time.Time
	VATRate       float64
	DiscountType  *enum.DiscountType
	DiscountValue float64
	Note          *string
	Lines         []DocumentLineInput
}

// CreateInvoice creates a new PENDING invoice with computed totals
func (s *InvoiceService) CreateInvoice(ctx context.Context, input *CreateInvoiceInput) (*entity.Invoice, error) {
	client, err := s.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, apperror.NewNotFoundError("Client")
	}

	lines, billingLines, err := s.resolveLines(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	discount := documentDiscount(input.DiscountType, input.DiscountValue)
	totals := billing.ComputeTotals(billingLines, input.VATRate, discount)

	invoice := &entity.Invoice{
		UserID:         input.UserID,
		ClientID:       input.ClientID,
		Status:         enum.InvoiceStatusPending,
		Date:           input.Date,
		DueDate:        input.DueDate,
		TotalHT:        totals.Subtotal,
		VATRate:        input.VATRate,
		VATAmount:      totals.TaxAmount,
		DiscountType:   input.DiscountType,
		DiscountValue:  input.DiscountValue,
		DiscountAmount: totals.DiscountAmount,
		Total:          totals.Total,
		Note:           input.Note,
	}

	if err := s.invoiceRepo.CreateWithLines(ctx, invoice, lines); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithDetails(ctx, invoice.ID)
}

// GetInvoice retrieves an invoice with lines and payments
func (s *InvoiceService) GetInvoice(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return invoice, nil
}

// ListInvoicesInput represents the input for listing invoices
type ListInvoicesInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.InvoiceStatus
	ClientID   *uuid.UUID
	SortBy     string
	SortOrder  string
}

// ListInvoices lists invoices with filtering. An OVERDUE status filter is
// translated to pending-and-past-due since OVERDUE is never stored.
func (s *InvoiceService) ListInvoices(ctx context.Context, input *ListInvoicesInput) (*pagination.PaginatedResult[entity.Invoice], error) {
	params := &repository.InvoiceFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		ClientID:   input.ClientID,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	}

	if input.Status != nil {
		if *input.Status == enum.InvoiceStatusOverdue {
			params.Overdue = true
		} else {
			params.Status = input.Status
		}
	}

	invoices, total, err := s.invoiceRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(invoices, pag), nil
}

// ExportInvoices returns every invoice of the current user for spreadsheet
// export
func (s *InvoiceService) ExportInvoices(ctx context.Context) ([]entity.Invoice, error) {
	return s.invoiceRepo.ListAll(ctx)
}

// UpdateInvoiceInput represents the input for updating an invoice
type UpdateInvoiceInput struct {
	ID            uuid.UUID
	ClientID      uuid.UUID
	Date          time.Time
	DueDate       time.Time
	VATRate       float64
	DiscountType  *enum.DiscountType
	DiscountValue float64
	Note          *string
	Lines         []DocumentLineInput
}

// UpdateInvoice replaces an invoice's content and recomputes its totals.
// Only PENDING invoices without recorded payments can be edited.
func (s *InvoiceService) UpdateInvoice(ctx context.Context, input *UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status != enum.InvoiceStatusPending {
		return nil, apperror.NewBadRequestError("Only pending invoices can be edited")
	}

	paid, err := s.paymentRepo.SumByInvoiceID(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}
	if paid > 0 {
		return nil, apperror.NewBadRequestError("Invoices with recorded payments cannot be edited")
	}

	if input.ClientID != invoice.ClientID {
		client, err := s.clientRepo.GetByID(ctx, input.ClientID)
		if err != nil {
			return nil, err
		}
		if client == nil {
			return nil, apperror.NewNotFoundError("Client")
		}
	}

	lines, billingLines, err := s.resolveLines(ctx, input.Lines)
	if err != nil {
		return nil, err
	}

	discount := documentDiscount(input.DiscountType, input.DiscountValue)
	totals := billing.ComputeTotals(billingLines, input.VATRate, discount)

	invoice.ClientID = input.ClientID
	invoice.Date = input.Date
	invoice.DueDate = input.DueDate
	invoice.VATRate = input.VATRate
	invoice.DiscountType = input.DiscountType
	invoice.DiscountValue = input.DiscountValue
	invoice.TotalHT = totals.Subtotal
	invoice.VATAmount = totals.TaxAmount
	invoice.DiscountAmount = totals.DiscountAmount
	invoice.Total = totals.Total
	invoice.Note = input.Note

	if err := s.invoiceRepo.UpdateWithLines(ctx, invoice, lines); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithDetails(ctx, invoice.ID)
}

// DeleteInvoice deletes an invoice, its lines and its payments
func (s *InvoiceService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if invoice == nil {
		return apperror.NewNotFoundError("Invoice")
	}

	return s.invoiceRepo.Delete(ctx, id)
}

// UpdateInvoiceStatus moves an invoice along its stored lifecycle. OVERDUE
// is derived and can never be requested.
func (s *InvoiceService) UpdateInvoiceStatus(ctx context.Context, id uuid.UUID, requested enum.InvoiceStatus) (*entity.Invoice, error) {
	if !requested.Stored() {
		return nil, apperror.NewBadRequestError("Overdue is derived from the due date and cannot be set")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	next, err := billing.TransitionInvoice(invoice.Status, requested)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithDetails(ctx, id)
}

// AddPaymentInput represents the input for recording a payment
type AddPaymentInput struct {
	InvoiceID uuid.UUID
	UserID    uuid.UUID
	Amount    float64
	Method    string
	PaidAt    time.Time
}

// AddPayment records a payment against an invoice. When the accumulated
// payments cover the total the invoice flips to PAID; overpayment is
// accepted and leaves a negative remaining amount.
func (s *InvoiceService) AddPayment(ctx context.Context, input *AddPaymentInput) (*entity.Invoice, error) {
	if input.Amount < MinPaymentAmount {
		return nil, apperror.NewBadRequestError("Payment amount must be at least 0.01")
	}

	invoice, err := s.invoiceRepo.GetByID(ctx, input.InvoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	if invoice.Status == enum.InvoiceStatusCanceled {
		return nil, apperror.NewBadRequestError("Payments cannot be recorded on a canceled invoice")
	}

	paidAt := input.PaidAt
	if paidAt.IsZero() {
		paidAt = time.Now()
	}

	payment := &entity.Payment{
		InvoiceID: input.InvoiceID,
		UserID:    input.UserID,
		Amount:    billing.RoundCents(input.Amount),
		Method:    input.Method,
		PaidAt:    paidAt,
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}

	return s.reconcileStatus(ctx, invoice)
}

// ListPayments returns the payments recorded against an invoice, newest first
func (s *InvoiceService) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]entity.Payment, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	return s.paymentRepo.ListByInvoiceID(ctx, invoiceID)
}

// DeletePayment removes a recorded payment and reconciles the invoice
// status against the corrected ledger.
func (s *InvoiceService) DeletePayment(ctx context.Context, invoiceID, paymentID uuid.UUID) (*entity.Invoice, error) {
	invoice, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment == nil || payment.InvoiceID != invoiceID {
		return nil, apperror.NewNotFoundError("Payment")
	}

	if err := s.paymentRepo.Delete(ctx, paymentID); err != nil {
		return nil, err
	}

	return s.reconcileStatus(ctx, invoice)
}

// reconcileStatus re-reads the ledger and aligns the stored status with it:
// a covered pending invoice becomes PAID, a no-longer-covered paid invoice
// reverts to PENDING. Canceled invoices are left alone.
func (s *InvoiceService) reconcileStatus(ctx context.Context, invoice *entity.Invoice) (*entity.Invoice, error) {
	paid, err := s.paymentRepo.SumByInvoiceID(ctx, invoice.ID)
	if err != nil {
		return nil, err
	}

	covered := paid >= invoice.Total
	switch {
	case covered && invoice.Status == enum.InvoiceStatusPending:
		if err := s.invoiceRepo.UpdateStatus(ctx, invoice.ID, enum.InvoiceStatusPaid); err != nil {
			return nil, err
		}
	case !covered && invoice.Status == enum.InvoiceStatusPaid:
		if err := s.invoiceRepo.UpdateStatus(ctx, invoice.ID, enum.InvoiceStatusPending); err != nil {
			return nil, err
		}
	}

	return s.invoiceRepo.GetWithDetails(ctx, invoice.ID)
}

func (s *InvoiceService) resolveLines(ctx context.Context, inputs []DocumentLineInput) ([]entity.InvoiceItem, []billing.Line, error) {
	if len(inputs) == 0 {
		return nil, nil, apperror.NewBadRequestError("At least one line is required")
	}

	ids := make([]uuid.UUID, len(inputs))
	for i, in := range inputs {
		if in.Quantity < 1 {
			return nil, nil, apperror.NewBadRequestError("Line quantity must be at least 1")
		}
		ids[i] = in.ItemID
	}

	items, err := s.itemRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[uuid.UUID]entity.Item, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	lines := make([]entity.InvoiceItem, len(inputs))
	billingLines := make([]billing.Line, len(inputs))
	for i, in := range inputs {
		item, ok := byID[in.ItemID]
		if !ok {
			return nil, nil, apperror.NewNotFoundError("Item")
		}

		unitPrice := item.UnitPrice
		if in.UnitPrice != nil {
			if *in.UnitPrice < 0 {
				return nil, nil, apperror.NewBadRequestError("Unit price cannot be negative")
			}
			unitPrice = *in.UnitPrice
		}

		line := billing.Line{Quantity: in.Quantity, UnitPrice: unitPrice}
		lines[i] = entity.InvoiceItem{
			ItemID:    in.ItemID,
			ItemName:  item.Name,
			Quantity:  in.Quantity,
			UnitPrice: unitPrice,
			LineTotal: billing.LineTotal(line),
		}
		billingLines[i] = line
	}

	return lines, billingLines, nil
}
