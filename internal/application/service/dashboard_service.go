package service

import (
	"context"
	"time"

	"github.com/factura/factura-api/internal/domain/billing"
	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/factura/factura-api/internal/domain/repository"
	"github.com/google/uuid"
)

// DashboardService aggregates the home screen metrics
type DashboardService struct {
	analyticsRepo   repository.AnalyticsRepository
	businessService *BusinessService
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	analyticsRepo repository.AnalyticsRepository,
	businessService *BusinessService,
) *DashboardService {
	return &DashboardService{
		analyticsRepo:   analyticsRepo,
		businessService: businessService,
	}
}

// TrendCard is one dashboard metric with its month-over-month trend. The
// current window is the month so far; the previous window is the whole
// prior month.
type TrendCard struct {
	Value     float64 `json:"value"`
	Previous  float64 `json:"previous"`
	Trend     float64 `json:"trend"`
	Favorable bool    `json:"favorable"`
}

// DashboardStats is the full dashboard payload
type DashboardStats struct {
	Revenue    TrendCard `json:"revenue"`
	NewClients TrendCard `json:"new_clients"`
	Quotes     TrendCard `json:"quotes"`
	Unpaid     TrendCard `json:"unpaid"`

	TotalRevenue float64 `json:"total_revenue"`
	ClientCount  int64   `json:"client_count"`
	QuoteCount   int64   `json:"quote_count"`
	InvoiceCount int64   `json:"invoice_count"`

	Business     *entity.Business     `json:"business"`
	Subscription *entity.Subscription `json:"subscription"`
}

// GetStats computes the dashboard cards for a user. Loading the dashboard
// also provisions the business profile and subscription when missing.
func (s *DashboardService) GetStats(ctx context.Context, userID uuid.UUID) (*DashboardStats, error) {
	business, err := s.businessService.GetOrCreateBusiness(ctx, userID)
	if err != nil {
		return nil, err
	}
	subscription, err := s.businessService.GetOrCreateSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	current, previous := billing.TrendPeriods(time.Now())

	revenue, err := s.revenueCard(ctx, current, previous)
	if err != nil {
		return nil, err
	}
	clients, err := s.clientsCard(ctx, current, previous)
	if err != nil {
		return nil, err
	}
	quotes, err := s.quotesCard(ctx, current, previous)
	if err != nil {
		return nil, err
	}
	unpaid, err := s.unpaidCard(ctx, current, previous)
	if err != nil {
		return nil, err
	}

	totalRevenue, err := s.analyticsRepo.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}
	clientCount, err := s.analyticsRepo.CountClients(ctx)
	if err != nil {
		return nil, err
	}
	quoteCount, err := s.analyticsRepo.CountQuotes(ctx)
	if err != nil {
		return nil, err
	}
	invoiceCount, err := s.analyticsRepo.CountInvoices(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Revenue:      revenue,
		NewClients:   clients,
		Quotes:       quotes,
		Unpaid:       unpaid,
		TotalRevenue: totalRevenue,
		ClientCount:  clientCount,
		QuoteCount:   quoteCount,
		InvoiceCount: invoiceCount,
		Business:     business,
		Subscription: subscription,
	}, nil
}

func (s *DashboardService) revenueCard(ctx context.Context, current, previous billing.Period) (TrendCard, error) {
	cur, err := s.analyticsRepo.RevenueBetween(ctx, current.From, current.To)
	if err != nil {
		return TrendCard{}, err
	}
	prev, err := s.analyticsRepo.RevenueBetween(ctx, previous.From, previous.To)
	if err != nil {
		return TrendCard{}, err
	}
	return newTrendCard(cur, prev, billing.PolarityGrowthIsGood), nil
}

func (s *DashboardService) clientsCard(ctx context.Context, current, previous billing.Period) (TrendCard, error) {
	cur, err := s.analyticsRepo.ClientsCreatedBetween(ctx, current.From, current.To)
	if err != nil {
		return TrendCard{}, err
	}
	prev, err := s.analyticsRepo.ClientsCreatedBetween(ctx, previous.From, previous.To)
	if err != nil {
		return TrendCard{}, err
	}
	return newTrendCard(float64(cur), float64(prev), billing.PolarityGrowthIsGood), nil
}

func (s *DashboardService) quotesCard(ctx context.Context, current, previous billing.Period) (TrendCard, error) {
	cur, err := s.analyticsRepo.QuotesCreatedBetween(ctx, current.From, current.To)
	if err != nil {
		return TrendCard{}, err
	}
	prev, err := s.analyticsRepo.QuotesCreatedBetween(ctx, previous.From, previous.To)
	if err != nil {
		return TrendCard{}, err
	}
	return newTrendCard(float64(cur), float64(prev), billing.PolarityGrowthIsGood), nil
}

func (s *DashboardService) unpaidCard(ctx context.Context, current, previous billing.Period) (TrendCard, error) {
	cur, err := s.analyticsRepo.UnpaidTotalBetween(ctx, current.From, current.To)
	if err != nil {
		return TrendCard{}, err
	}
	prev, err := s.analyticsRepo.UnpaidTotalBetween(ctx, previous.From, previous.To)
	if err != nil {
		return TrendCard{}, err
	}
	return newTrendCard(cur, prev, billing.PolarityDeclineIsGood), nil
}

func newTrendCard(current, previous float64, p billing.Polarity) TrendCard {
	trend := billing.Trend(current, previous)
	return TrendCard{
		Value:     current,
		Previous:  previous,
		Trend:     trend,
		Favorable: billing.Favorable(trend, p),
	}
}
