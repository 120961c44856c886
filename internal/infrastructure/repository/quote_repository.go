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

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates a new quote repository
func NewQuoteRepository(db *gorm.DB) domainRepo.QuoteRepository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) CreateWithLines(ctx context.Context, quote *entity.Quote, lines []entity.QuoteItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quote).Error; err != nil {
			return err
		}
		return createQuoteLines(tx, quote.ID, lines)
	})
}

func (r *quoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Preload("Client").
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) GetWithLines(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quote entity.Quote
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Preload("Client").
		Preload("Lines").
		First(&quote, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &quote, err
}

func (r *quoteRepository) UpdateWithLines(ctx context.Context, quote *entity.Quote, lines []entity.QuoteItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(quote).Error; err != nil {
			return err
		}
		if err := tx.Delete(&entity.QuoteItem{}, "quote_id = ?", quote.ID).Error; err != nil {
			return err
		}
		return createQuoteLines(tx, quote.ID, lines)
	})
}

func createQuoteLines(tx *gorm.DB, quoteID uuid.UUID, lines []entity.QuoteItem) error {
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		lines[i].QuoteID = quoteID
	}
	return tx.Create(&lines).Error
}

func (r *quoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.QuoteItem{}, "quote_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Scopes(OwnerScope(ctx)).Delete(&entity.Quote{}, "id = ?", id).Error
	})
}

func (r *quoteRepository) List(ctx context.Context, params *domainRepo.QuoteFilterParams) ([]entity.Quote, int64, error) {
	var quotes []entity.Quote
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Quote{}).Scopes(OwnerScope(ctx))

	if params.Search != "" {
		query = query.Joins("LEFT JOIN clients ON clients.id = quotes.client_id").
			Where("clients.name ILIKE ? OR quotes.note ILIKE ?",
				"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.Status != nil {
		query = query.Where("quotes.status = ?", *params.Status)
	}

	if params.ClientID != nil {
		query = query.Where("quotes.client_id = ?", *params.ClientID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := sortColumn(quoteSortColumns, params.SortBy, "quotes.created_at")
	sortOrder := "DESC"
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Client").
		Order(sortBy + " " + sortOrder).
		Find(&quotes).Error

	return quotes, total, err
}

func (r *quoteRepository) ListAll(ctx context.Context) ([]entity.Quote, error) {
	var quotes []entity.Quote
	err := r.db.WithContext(ctx).
		Scopes(OwnerScope(ctx)).
		Preload("Client").
		Order("created_at DESC").
		Find(&quotes).Error
	return quotes, err
}

func (r *quoteRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.QuoteStatus) error {
	return r.db.WithContext(ctx).Model(&entity.Quote{}).
		Scopes(OwnerScope(ctx)).
		Where("id = ?", id).
		Update("status", status).Error
}

// Convert writes the invoice, its lines and the updated quote in a single
// transaction. The invoice id only exists after the insert, so the back-link
// on the quote is set here rather than by the caller.
func (r *quoteRepository) Convert(ctx context.Context, quote *entity.Quote, invoice *entity.Invoice, lines []entity.InvoiceItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(invoice).Error; err != nil {
			return err
		}
		if len(lines) > 0 {
			for i := range lines {
				lines[i].InvoiceID = invoice.ID
			}
			if err := tx.Create(&lines).Error; err != nil {
				return err
			}
		}
		quote.InvoiceID = &invoice.ID
		return tx.Save(quote).Error
	})
}
