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

// QuoteService handles quote-related operations
type QuoteService struct {
	quoteRepo   repository.QuoteRepository
	invoiceRepo repository.InvoiceRepository
	itemRepo    repository.ItemRepository
	clientRepo  repository.ClientRepository
}

// NewQuoteService creates a new quote service
func NewQuoteService(
	quoteRepo repository.QuoteRepository,
	invoiceRepo repository.InvoiceRepository,
	itemRepo repository.ItemRepository,
	clientRepo repository.ClientRepository,
) *QuoteService {
	return &QuoteService{
		quoteRepo:   quoteRepo,
		invoiceRepo: invoiceRepo,
		itemRepo:    itemRepo,
		clientRepo:  clientRepo,
	}
}

// DocumentLineInput represents a line item input for quotes and invoices
type DocumentLineInput struct {
	ItemID    uuid.UUID
	Quantity  int
	UnitPrice *float64
}

// CreateQuoteInput represents the input for creating a quote
type CreateQuoteInput struct {
	UserID        uuid.UUID
	ClientID      uuid.UUID
	Date          time.Time
	ValidUntil    time.Time
	TaxRate       float64
	DiscountType  *enum.DiscountType
	DiscountValue float64
	Note          *string
	Lines         []DocumentLineInput
}

// CreateQuote creates a new quote in DRAFT status with computed totals
func (s *QuoteService) CreateQuote(ctx context.Context, input *CreateQuoteInput) (*entity.Quote, error) {
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
	totals := billing.ComputeTotals(billingLines, input.TaxRate, discount)

	quote := &entity.Quote{
		UserID:         input.UserID,
		ClientID:       input.ClientID,
		Status:         enum.QuoteStatusDraft,
		Date:           input.Date,
		ValidUntil:     input.ValidUntil,
		TaxRate:        input.TaxRate,
		DiscountType:   input.DiscountType,
		DiscountValue:  input.DiscountValue,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		DiscountAmount: totals.DiscountAmount,
		Total:          totals.Total,
		Note:           input.Note,
	}

	if err := s.quoteRepo.CreateWithLines(ctx, quote, lines); err != nil {
		return nil, err
	}

	return s.quoteRepo.GetWithLines(ctx, quote.ID)
}

// GetQuote retrieves a quote with its lines
func (s *QuoteService) GetQuote(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	return quote, nil
}

// ListQuotesInput represents the input for listing quotes
type ListQuotesInput struct {
	Pagination *pagination.PaginationParams
	Search     string
	Status     *enum.QuoteStatus
	ClientID   *uuid.UUID
	SortBy     string
	SortOrder  string
}

// ListQuotes lists quotes with filtering
func (s *QuoteService) ListQuotes(ctx context.Context, input *ListQuotesInput) (*pagination.PaginatedResult[entity.Quote], error) {
	params := &repository.QuoteFilterParams{
		Pagination: input.Pagination,
		Search:     input.Search,
		Status:     input.Status,
		ClientID:   input.ClientID,
		SortBy:     input.SortBy,
		SortOrder:  input.SortOrder,
	}

	quotes, total, err := s.quoteRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(input.Pagination.Page, input.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(quotes, pag), nil
}

// ExportQuotes returns every quote of the current user for spreadsheet export
func (s *QuoteService) ExportQuotes(ctx context.Context) ([]entity.Quote, error) {
	return s.quoteRepo.ListAll(ctx)
}

// UpdateQuoteInput represents the input for updating a quote
type UpdateQuoteInput struct {
	ID            uuid.UUID
	ClientID      uuid.UUID
	Date          time.Time
	ValidUntil    time.Time
	TaxRate       float64
	DiscountType  *enum.DiscountType
	DiscountValue float64
	Note          *string
	Lines         []DocumentLineInput
}

// UpdateQuote replaces a quote's content and recomputes its totals. Only
// DRAFT quotes can be edited.
func (s *QuoteService) UpdateQuote(ctx context.Context, input *UpdateQuoteInput) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	if quote.Status != enum.QuoteStatusDraft {
		return nil, apperror.NewBadRequestError("Only draft quotes can be edited")
	}

	if input.ClientID != quote.ClientID {
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
	totals := billing.ComputeTotals(billingLines, input.TaxRate, discount)

	quote.ClientID = input.ClientID
	quote.Date = input.Date
	quote.ValidUntil = input.ValidUntil
	quote.TaxRate = input.TaxRate
	quote.DiscountType = input.DiscountType
	quote.DiscountValue = input.DiscountValue
	quote.Subtotal = totals.Subtotal
	quote.TaxAmount = totals.TaxAmount
	quote.DiscountAmount = totals.DiscountAmount
	quote.Total = totals.Total
	quote.Note = input.Note

	if err := s.quoteRepo.UpdateWithLines(ctx, quote, lines); err != nil {
		return nil, err
	}

	return s.quoteRepo.GetWithLines(ctx, quote.ID)
}

// DeleteQuote deletes a quote and its lines
func (s *QuoteService) DeleteQuote(ctx context.Context, id uuid.UUID) error {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if quote == nil {
		return apperror.NewNotFoundError("Quote")
	}

	return s.quoteRepo.Delete(ctx, id)
}

// UpdateQuoteStatus moves a quote along its lifecycle. Off-graph moves are
// rejected; the quote keeps its current status.
func (s *QuoteService) UpdateQuoteStatus(ctx context.Context, id uuid.UUID, requested enum.QuoteStatus) (*entity.Quote, error) {
	quote, err := s.quoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}

	next, err := billing.TransitionQuote(quote.Status, requested)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	if err := s.quoteRepo.UpdateStatus(ctx, id, next); err != nil {
		return nil, err
	}

	quote.Status = next
	return quote, nil
}

// ConvertToInvoice turns an ACCEPTED quote into a PENDING invoice, copying
// lines and amounts verbatim, then marks the quote CONVERTED.
func (s *QuoteService) ConvertToInvoice(ctx context.Context, id uuid.UUID, dueDate time.Time) (*entity.Invoice, error) {
	quote, err := s.quoteRepo.GetWithLines(ctx, id)
	if err != nil {
		return nil, err
	}
	if quote == nil {
		return nil, apperror.NewNotFoundError("Quote")
	}
	if quote.Status != enum.QuoteStatusAccepted {
		return nil, apperror.NewBadRequestError("Only accepted quotes can be converted")
	}

	if dueDate.IsZero() {
		dueDate = time.Now().AddDate(0, 0, 30)
	}

	invoice := &entity.Invoice{
		UserID:         quote.UserID,
		ClientID:       quote.ClientID,
		Status:         enum.InvoiceStatusPending,
		Date:           time.Now(),
		DueDate:        dueDate,
		TotalHT:        quote.Subtotal,
		VATRate:        quote.TaxRate,
		VATAmount:      quote.TaxAmount,
		DiscountType:   quote.DiscountType,
		DiscountValue:  quote.DiscountValue,
		DiscountAmount: quote.DiscountAmount,
		Total:          quote.Total,
		Note:           quote.Note,
		QuoteID:        &quote.ID,
	}

	lines := make([]entity.InvoiceItem, len(quote.Lines))
	for i, l := range quote.Lines {
		lines[i] = entity.InvoiceItem{
			ItemID:    l.ItemID,
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal,
		}
	}

	// The repository writes everything in one transaction, so a failed
	// conversion leaves the quote ACCEPTED with no invoice and a retry
	// cannot mint a second invoice.
	quote.Status = enum.QuoteStatusConverted
	if err := s.quoteRepo.Convert(ctx, quote, invoice, lines); err != nil {
		return nil, err
	}

	return s.invoiceRepo.GetWithDetails(ctx, invoice.ID)
}

// resolveLines validates line inputs against the catalog and returns both
// the persistable lines and the billing lines for totals computation.
func (s *QuoteService) resolveLines(ctx context.Context, inputs []DocumentLineInput) ([]entity.QuoteItem, []billing.Line, error) {
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

	lines := make([]entity.QuoteItem, len(inputs))
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
		lines[i] = entity.QuoteItem{
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

// documentDiscount maps the persisted (type, value) pair to a billing
// discount, treating an absent type as no discount.
func documentDiscount(t *enum.DiscountType, value float64) *billing.Discount {
	if t == nil || value == 0 {
		return nil
	}
	return &billing.Discount{Type: *t, Value: value}
}
