package repository

import (
	"context"
	"time"

	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/factura/factura-api/internal/domain/enum"
	domainRepo "github.com/factura/factura-api/internal/domain/repository"
	"gorm.io/gorm"
)

type analyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) domainRepo.AnalyticsRepository {
	return &analyticsRepository{db: db}
}

func (r *analyticsRepository) RevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&entity.Payment{}).
		Scopes(OwnerScope(ctx)).
		Where("paid_at >= ? AND paid_at <= ?", from, to).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *analyticsRepository) ClientsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Client{}).
		Scopes(OwnerScope(ctx)).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) QuotesCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Quote{}).
		Scopes(OwnerScope(ctx)).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) UnpaidTotalBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Scopes(OwnerScope(ctx)).
		Where("invoices.status <> ?", enum.InvoiceStatusCanceled).
		Where("invoices.created_at >= ? AND invoices.created_at <= ?", from, to).
		Select("COALESCE(SUM(invoices.total - (SELECT COALESCE(SUM(p.amount), 0) FROM payments p WHERE p.invoice_id = invoices.id AND p.deleted_at IS NULL)), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *analyticsRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&entity.Payment{}).
		Scopes(OwnerScope(ctx)).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *analyticsRepository) CountClients(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Client{}).
		Scopes(OwnerScope(ctx)).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountQuotes(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Quote{}).
		Scopes(OwnerScope(ctx)).
		Count(&count).Error
	return count, err
}

func (r *analyticsRepository) CountInvoices(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Invoice{}).
		Scopes(OwnerScope(ctx)).
		Count(&count).Error
	return count, err
}
