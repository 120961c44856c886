package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quoteFixture struct {
	svc      *QuoteService
	quotes   *fakeQuoteRepo
	invoices *fakeInvoiceRepo
	userID   uuid.UUID
	clientID uuid.UUID
	itemID   uuid.UUID
}

func newQuoteFixture(t *testing.T) *quoteFixture {
	t.Helper()

	userID := uuid.New()
	client := entity.Client{ID: uuid.New(), UserID: userID, Name: "Acme SARL"}
	item := entity.Item{ID: uuid.New(), UserID: userID, Name: "Consulting day", UnitPrice: 500.00}

	invoices := newFakeInvoiceRepo(newFakePaymentRepo())
	quotes := newFakeQuoteRepo(invoices)

	svc := NewQuoteService(
		quotes,
		invoices,
		newFakeItemRepo(item),
		newFakeClientRepo(client),
	)

	return &quoteFixture{
		svc:      svc,
		quotes:   quotes,
		invoices: invoices,
		userID:   userID,
		clientID: client.ID,
		itemID:   item.ID,
	}
}

func (f *quoteFixture) createQuote(t *testing.T, input *CreateQuoteInput) *entity.Quote {
	t.Helper()
	quote, err := f.svc.CreateQuote(context.Background(), input)
	require.NoError(t, err)
	return quote
}

func (f *quoteFixture) defaultInput() *CreateQuoteInput {
	return &CreateQuoteInput{
		UserID:   f.userID,
		ClientID: f.clientID,
		Date:     time.Now(),
		TaxRate:  20,
		Lines:    []DocumentLineInput{{ItemID: f.itemID, Quantity: 2}},
	}
}

func TestCreateQuoteComputesTotals(t *testing.T) {
	f := newQuoteFixture(t)

	quote := f.createQuote(t, f.defaultInput())

	assert.Equal(t, enum.QuoteStatusDraft, quote.Status)
	assert.Equal(t, 1000.00, quote.Subtotal)
	assert.Equal(t, 200.00, quote.TaxAmount)
	assert.Equal(t, 1200.00, quote.Total)
	require.Len(t, quote.Lines, 1)
	assert.Equal(t, "Consulting day", quote.Lines[0].ItemName)
	assert.Equal(t, 500.00, quote.Lines[0].UnitPrice)
}

func TestCreateQuotePercentageDiscount(t *testing.T) {
	f := newQuoteFixture(t)
	discountType := enum.DiscountTypePercentage

	input := f.defaultInput()
	input.DiscountType = &discountType
	input.DiscountValue = 10

	quote := f.createQuote(t, input)

	assert.Equal(t, 100.00, quote.DiscountAmount)
	assert.Equal(t, 1100.00, quote.Total)
}

func TestCreateQuotePriceOverride(t *testing.T) {
	f := newQuoteFixture(t)
	override := 450.00

	input := f.defaultInput()
	input.Lines[0].UnitPrice = &override

	quote := f.createQuote(t, input)

	assert.Equal(t, 900.00, quote.Subtotal)
	assert.Equal(t, 450.00, quote.Lines[0].UnitPrice)
}

func TestCreateQuoteUnknownItem(t *testing.T) {
	f := newQuoteFixture(t)

	input := f.defaultInput()
	input.Lines[0].ItemID = uuid.New()

	_, err := f.svc.CreateQuote(context.Background(), input)
	assert.Error(t, err)
}

func TestCreateQuoteRejectsZeroQuantity(t *testing.T) {
	f := newQuoteFixture(t)

	input := f.defaultInput()
	input.Lines[0].Quantity = 0

	_, err := f.svc.CreateQuote(context.Background(), input)
	assert.Error(t, err)
}

func TestCreateQuoteUnknownClient(t *testing.T) {
	f := newQuoteFixture(t)

	input := f.defaultInput()
	input.ClientID = uuid.New()

	_, err := f.svc.CreateQuote(context.Background(), input)
	assert.Error(t, err)
}

func TestQuoteLifecycleHappyPath(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()
	quote := f.createQuote(t, f.defaultInput())

	quote, err := f.svc.UpdateQuoteStatus(ctx, quote.ID, enum.QuoteStatusSent)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusSent, quote.Status)

	quote, err = f.svc.UpdateQuoteStatus(ctx, quote.ID, enum.QuoteStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusAccepted, quote.Status)
}

func TestQuoteStatusRejectsOffGraphMove(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()
	quote := f.createQuote(t, f.defaultInput())

	// DRAFT cannot jump straight to ACCEPTED
	_, err := f.svc.UpdateQuoteStatus(ctx, quote.ID, enum.QuoteStatusAccepted)
	assert.Error(t, err)

	stored, err := f.quotes.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusDraft, stored.Status)
}

func TestQuoteStatusConvertedOnlyFromAccepted(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()
	quote := f.createQuote(t, f.defaultInput())

	_, err := f.svc.UpdateQuoteStatus(ctx, quote.ID, enum.QuoteStatusConverted)
	assert.Error(t, err)
}

func TestUpdateQuoteOnlyWhenDraft(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()
	quote := f.createQuote(t, f.defaultInput())

	_, err := f.svc.UpdateQuoteStatus(ctx, quote.ID, enum.QuoteStatusSent)
	require.NoError(t, err)

	_, err = f.svc.UpdateQuote(ctx, &UpdateQuoteInput{
		ID:       quote.ID,
		ClientID: f.clientID,
		Date:     time.Now(),
		Lines:    []DocumentLineInput{{ItemID: f.itemID, Quantity: 1}},
	})
	assert.Error(t, err)
}

func TestConvertToInvoiceCopiesAmounts(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()
	discountType := enum.DiscountTypeFixed

	input := f.defaultInput()
	input.DiscountType = &discountType
	input.DiscountValue = 50
	quote := f.createQuote(t, input)

	_, err := f.svc.UpdateQuoteStatus(ctx, quote.ID, enum.QuoteStatusSent)
	require.NoError(t, err)
	_, err = f.svc.UpdateQuoteStatus(ctx, quote.ID, enum.QuoteStatusAccepted)
	require.NoError(t, err)

	due := time.Now().AddDate(0, 1, 0)
	invoice, err := f.svc.ConvertToInvoice(ctx, quote.ID, due)
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, quote.Subtotal, invoice.TotalHT)
	assert.Equal(t, quote.TaxAmount, invoice.VATAmount)
	assert.Equal(t, quote.DiscountAmount, invoice.DiscountAmount)
	assert.Equal(t, quote.Total, invoice.Total)
	require.NotNil(t, invoice.QuoteID)
	assert.Equal(t, quote.ID, *invoice.QuoteID)
	require.Len(t, invoice.Lines, 1)
	assert.Equal(t, quote.Lines[0].LineTotal, invoice.Lines[0].LineTotal)

	converted, err := f.quotes.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusConverted, converted.Status)
	require.NotNil(t, converted.InvoiceID)
	assert.Equal(t, invoice.ID, *converted.InvoiceID)
}

func TestConvertToInvoiceRequiresAccepted(t *testing.T) {
	f := newQuoteFixture(t)
	quote := f.createQuote(t, f.defaultInput())

	_, err := f.svc.ConvertToInvoice(context.Background(), quote.ID, time.Time{})
	assert.Error(t, err)
}

func TestConvertToInvoiceRetryAfterFailedWrite(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()
	quote := f.createQuote(t, f.defaultInput())

	_, err := f.svc.UpdateQuoteStatus(ctx, quote.ID, enum.QuoteStatusSent)
	require.NoError(t, err)
	_, err = f.svc.UpdateQuoteStatus(ctx, quote.ID, enum.QuoteStatusAccepted)
	require.NoError(t, err)

	f.quotes.failNextWrite = errors.New("connection reset by peer")
	_, err = f.svc.ConvertToInvoice(ctx, quote.ID, time.Time{})
	require.Error(t, err)

	// The failed conversion leaves no invoice behind and keeps the quote
	// convertible.
	all, err := f.invoices.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	stored, err := f.quotes.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusAccepted, stored.Status)
	assert.Nil(t, stored.InvoiceID)

	// The retry mints exactly one invoice and links it.
	invoice, err := f.svc.ConvertToInvoice(ctx, quote.ID, time.Time{})
	require.NoError(t, err)

	all, err = f.invoices.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	stored, err = f.quotes.GetByID(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, enum.QuoteStatusConverted, stored.Status)
	require.NotNil(t, stored.InvoiceID)
	assert.Equal(t, invoice.ID, *stored.InvoiceID)
}

func TestUpdateQuoteFailedWriteLeavesQuoteIntact(t *testing.T) {
	f := newQuoteFixture(t)
	ctx := context.Background()
	quote := f.createQuote(t, f.defaultInput())

	f.quotes.failNextWrite = errors.New("connection reset by peer")
	_, err := f.svc.UpdateQuote(ctx, &UpdateQuoteInput{
		ID:       quote.ID,
		ClientID: f.clientID,
		Date:     time.Now(),
		TaxRate:  10,
		Lines:    []DocumentLineInput{{ItemID: f.itemID, Quantity: 5}},
	})
	require.Error(t, err)

	stored, err := f.quotes.GetWithLines(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, quote.Total, stored.Total)
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, 2, stored.Lines[0].Quantity)
}
