package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/factura/factura-api/internal/domain/billing"
	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestInvoicesXLSX(t *testing.T) {
	client := &entity.Client{ID: uuid.New(), Name: "Acme SARL"}
	invoice := entity.Invoice{
		ID:        uuid.New(),
		ClientID:  client.ID,
		Client:    client,
		Status:    enum.InvoiceStatusPending,
		Date:      time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		DueDate:   time.Now().AddDate(0, 1, 0),
		TotalHT:   1000.00,
		VATAmount: 200.00,
		Total:     1200.00,
		Payments:  []entity.Payment{{Amount: 300.00}},
	}

	buf, err := InvoicesXLSX([]entity.Invoice{invoice})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Number", rows[0][0])
	assert.Equal(t, billing.InvoiceNumber(invoice.ID), rows[1][0])
	assert.Equal(t, "Acme SARL", rows[1][1])
	assert.Equal(t, "2026-01-10", rows[1][2])
	assert.Equal(t, "PENDING", rows[1][4])
	assert.Equal(t, "300", rows[1][9])
	assert.Equal(t, "900", rows[1][10])
}

func TestInvoicesXLSXOverdueStatus(t *testing.T) {
	invoice := entity.Invoice{
		ID:      uuid.New(),
		Status:  enum.InvoiceStatusPending,
		Date:    time.Now().AddDate(0, -2, 0),
		DueDate: time.Now().AddDate(0, -1, 0),
		Total:   100.00,
	}

	buf, err := InvoicesXLSX([]entity.Invoice{invoice})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "OVERDUE", rows[1][4])
}

func TestQuotesXLSX(t *testing.T) {
	quote := entity.Quote{
		ID:       uuid.New(),
		Status:   enum.QuoteStatusSent,
		Date:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
		Subtotal: 500.00,
		Total:    600.00,
	}

	buf, err := QuotesXLSX([]entity.Quote{quote})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Quotes")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, billing.QuoteNumber(quote.ID), rows[1][0])
	assert.Equal(t, "SENT", rows[1][4])
}

func TestFilename(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "invoices-20260115.xlsx", Filename("invoices", now))
}
