package repository

import (
	"context"
	"time"
)

// AnalyticsRepository defines the aggregation queries behind the dashboard
// cards. All queries are scoped to the owning user via the context owner
// scope; amounts are decimal euros.
type AnalyticsRepository interface {
	// RevenueBetween sums payments received inside the window.
	RevenueBetween(ctx context.Context, from, to time.Time) (float64, error)

	// ClientsCreatedBetween counts clients created inside the window.
	ClientsCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)

	// QuotesCreatedBetween counts quotes created inside the window.
	QuotesCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)

	// UnpaidTotalBetween sums outstanding amounts (invoice total minus
	// recorded payments) for non-canceled invoices issued in the window.
	UnpaidTotalBetween(ctx context.Context, from, to time.Time) (float64, error)

	// TotalRevenue sums all payments ever received.
	TotalRevenue(ctx context.Context) (float64, error)

	// CountClients, CountQuotes and CountInvoices return overall totals.
	CountClients(ctx context.Context) (int64, error)
	CountQuotes(ctx context.Context) (int64, error)
	CountInvoices(ctx context.Context) (int64, error)
}
