package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/factura/factura-api/internal/domain/entity"
	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/factura/factura-api/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type invoiceFixture struct {
	svc      *InvoiceService
	invoices *fakeInvoiceRepo
	payments *fakePaymentRepo
	userID   uuid.UUID
	clientID uuid.UUID
	itemID   uuid.UUID
}

func newInvoiceFixture(t *testing.T) *invoiceFixture {
	t.Helper()

	userID := uuid.New()
	client := entity.Client{ID: uuid.New(), UserID: userID, Name: "Dupont SAS"}
	item := entity.Item{ID: uuid.New(), UserID: userID, Name: "Hosting", UnitPrice: 100.00}

	payments := newFakePaymentRepo()
	invoices := newFakeInvoiceRepo(payments)

	svc := NewInvoiceService(
		invoices,
		payments,
		newFakeItemRepo(item),
		newFakeClientRepo(client),
	)

	return &invoiceFixture{
		svc:      svc,
		invoices: invoices,
		payments: payments,
		userID:   userID,
		clientID: client.ID,
		itemID:   item.ID,
	}
}

func (f *invoiceFixture) createInvoice(t *testing.T) *entity.Invoice {
	t.Helper()
	invoice, err := f.svc.CreateInvoice(context.Background(), &CreateInvoiceInput{
		UserID:   f.userID,
		ClientID: f.clientID,
		Date:     time.Now(),
		DueDate:  time.Now().AddDate(0, 0, 30),
		VATRate:  20,
		Lines:    []DocumentLineInput{{ItemID: f.itemID, Quantity: 3}},
	})
	require.NoError(t, err)
	return invoice
}

func TestCreateInvoiceComputesTotals(t *testing.T) {
	f := newInvoiceFixture(t)

	invoice := f.createInvoice(t)

	assert.Equal(t, enum.InvoiceStatusPending, invoice.Status)
	assert.Equal(t, 300.00, invoice.TotalHT)
	assert.Equal(t, 60.00, invoice.VATAmount)
	assert.Equal(t, 360.00, invoice.Total)
}

func TestAddPaymentPartial(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	invoice := f.createInvoice(t)

	got, err := f.svc.AddPayment(ctx, &AddPaymentInput{
		InvoiceID: invoice.ID,
		UserID:    f.userID,
		Amount:    100.00,
		Method:    "transfer",
	})
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceStatusPending, got.Status)
	ledger := got.Ledger()
	assert.Equal(t, 100.00, ledger.PaidAmount)
	assert.Equal(t, 260.00, ledger.RemainingAmount)
	assert.False(t, ledger.IsPaid)
}

func TestAddPaymentCoveringTotalMarksPaid(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	invoice := f.createInvoice(t)

	_, err := f.svc.AddPayment(ctx, &AddPaymentInput{
		InvoiceID: invoice.ID, UserID: f.userID, Amount: 200.00,
	})
	require.NoError(t, err)

	got, err := f.svc.AddPayment(ctx, &AddPaymentInput{
		InvoiceID: invoice.ID, UserID: f.userID, Amount: 160.00,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceStatusPaid, got.Status)
	assert.True(t, got.Ledger().IsPaid)
}

func TestAddPaymentOverpaymentAllowed(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createInvoice(t)

	got, err := f.svc.AddPayment(context.Background(), &AddPaymentInput{
		InvoiceID: invoice.ID, UserID: f.userID, Amount: 400.00,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceStatusPaid, got.Status)
	assert.Equal(t, -40.00, got.Ledger().RemainingAmount)
}

func TestAddPaymentBelowMinimumRejected(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createInvoice(t)

	_, err := f.svc.AddPayment(context.Background(), &AddPaymentInput{
		InvoiceID: invoice.ID, UserID: f.userID, Amount: 0.001,
	})
	assert.Error(t, err)
}

func TestAddPaymentOnCanceledInvoiceRejected(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	invoice := f.createInvoice(t)

	_, err := f.svc.UpdateInvoiceStatus(ctx, invoice.ID, enum.InvoiceStatusCanceled)
	require.NoError(t, err)

	_, err = f.svc.AddPayment(ctx, &AddPaymentInput{
		InvoiceID: invoice.ID, UserID: f.userID, Amount: 50.00,
	})
	assert.Error(t, err)
}

func TestDeletePaymentRevertsPaidToPending(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	invoice := f.createInvoice(t)

	paid, err := f.svc.AddPayment(ctx, &AddPaymentInput{
		InvoiceID: invoice.ID, UserID: f.userID, Amount: 360.00,
	})
	require.NoError(t, err)
	require.Equal(t, enum.InvoiceStatusPaid, paid.Status)
	require.Len(t, paid.Payments, 1)

	got, err := f.svc.DeletePayment(ctx, invoice.ID, paid.Payments[0].ID)
	require.NoError(t, err)

	assert.Equal(t, enum.InvoiceStatusPending, got.Status)
	assert.Empty(t, got.Payments)
}

func TestDeletePaymentWrongInvoiceRejected(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	invoice := f.createInvoice(t)

	paid, err := f.svc.AddPayment(ctx, &AddPaymentInput{
		InvoiceID: invoice.ID, UserID: f.userID, Amount: 100.00,
	})
	require.NoError(t, err)
	require.Len(t, paid.Payments, 1)

	_, err = f.svc.DeletePayment(ctx, uuid.New(), paid.Payments[0].ID)
	assert.Error(t, err)
}

func TestUpdateInvoiceStatusRejectsOverdue(t *testing.T) {
	f := newInvoiceFixture(t)
	invoice := f.createInvoice(t)

	// OVERDUE is derived at read time, never stored
	_, err := f.svc.UpdateInvoiceStatus(context.Background(), invoice.ID, enum.InvoiceStatusOverdue)
	assert.Error(t, err)
}

func TestUpdateInvoiceStatusRejectsOffGraphMove(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	invoice := f.createInvoice(t)

	_, err := f.svc.UpdateInvoiceStatus(ctx, invoice.ID, enum.InvoiceStatusCanceled)
	require.NoError(t, err)

	_, err = f.svc.UpdateInvoiceStatus(ctx, invoice.ID, enum.InvoiceStatusPaid)
	assert.Error(t, err)
}

func TestUpdateInvoiceRejectedAfterPayment(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	invoice := f.createInvoice(t)

	_, err := f.svc.AddPayment(ctx, &AddPaymentInput{
		InvoiceID: invoice.ID, UserID: f.userID, Amount: 50.00,
	})
	require.NoError(t, err)

	_, err = f.svc.UpdateInvoice(ctx, &UpdateInvoiceInput{
		ID:       invoice.ID,
		ClientID: f.clientID,
		Date:     time.Now(),
		DueDate:  time.Now().AddDate(0, 0, 30),
		Lines:    []DocumentLineInput{{ItemID: f.itemID, Quantity: 1}},
	})
	assert.Error(t, err)
}

func TestListInvoicesOverdueFilter(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()

	pastDue, err := f.svc.CreateInvoice(ctx, &CreateInvoiceInput{
		UserID:   f.userID,
		ClientID: f.clientID,
		Date:     time.Now().AddDate(0, -2, 0),
		DueDate:  time.Now().AddDate(0, -1, 0),
		Lines:    []DocumentLineInput{{ItemID: f.itemID, Quantity: 1}},
	})
	require.NoError(t, err)
	f.createInvoice(t)

	overdue := enum.InvoiceStatusOverdue
	result, err := f.svc.ListInvoices(ctx, &ListInvoicesInput{
		Pagination: &pagination.PaginationParams{Page: 1, PerPage: 15},
		Status:     &overdue,
	})
	require.NoError(t, err)

	require.Len(t, result.Items, 1)
	assert.Equal(t, pastDue.ID, result.Items[0].ID)
}

func TestUpdateInvoiceFailedWriteLeavesInvoiceIntact(t *testing.T) {
	f := newInvoiceFixture(t)
	ctx := context.Background()
	invoice := f.createInvoice(t)

	f.invoices.failNextWrite = errors.New("connection reset by peer")
	_, err := f.svc.UpdateInvoice(ctx, &UpdateInvoiceInput{
		ID:       invoice.ID,
		ClientID: f.clientID,
		Date:     time.Now(),
		DueDate:  time.Now().AddDate(0, 0, 15),
		VATRate:  10,
		Lines:    []DocumentLineInput{{ItemID: f.itemID, Quantity: 1}},
	})
	require.Error(t, err)

	stored, err := f.invoices.GetWithDetails(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, 360.00, stored.Total)
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, 3, stored.Lines[0].Quantity)
}
