package billing

import (
	"testing"
	"time"

	"github.com/factura/factura-api/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionQuoteAllowedEdges(t *testing.T) {
	cases := []struct {
		from, to enum.QuoteStatus
	}{
		{enum.QuoteStatusDraft, enum.QuoteStatusSent},
		{enum.QuoteStatusSent, enum.QuoteStatusAccepted},
		{enum.QuoteStatusSent, enum.QuoteStatusRejected},
		{enum.QuoteStatusAccepted, enum.QuoteStatusConverted},
	}
	for _, tc := range cases {
		got, err := TransitionQuote(tc.from, tc.to)
		require.NoError(t, err, "%s -> %s", tc.from, tc.to)
		assert.Equal(t, tc.to, got)
	}
}

func TestTransitionQuoteRejectedEdges(t *testing.T) {
	cases := []struct {
		from, to enum.QuoteStatus
	}{
		{enum.QuoteStatusDraft, enum.QuoteStatusConverted},
		{enum.QuoteStatusDraft, enum.QuoteStatusAccepted},
		{enum.QuoteStatusSent, enum.QuoteStatusConverted},
		{enum.QuoteStatusRejected, enum.QuoteStatusSent},
		{enum.QuoteStatusConverted, enum.QuoteStatusDraft},
		{enum.QuoteStatusSent, enum.QuoteStatusDraft},
	}
	for _, tc := range cases {
		got, err := TransitionQuote(tc.from, tc.to)
		require.Error(t, err, "%s -> %s must be rejected", tc.from, tc.to)
		assert.Equal(t, tc.from, got, "status must not change on rejection")

		var invalid *InvalidTransitionError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "quote", invalid.Document)
	}
}

func TestTransitionInvoice(t *testing.T) {
	got, err := TransitionInvoice(enum.InvoiceStatusPending, enum.InvoiceStatusPaid)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusPaid, got)

	got, err = TransitionInvoice(enum.InvoiceStatusPending, enum.InvoiceStatusCanceled)
	require.NoError(t, err)
	assert.Equal(t, enum.InvoiceStatusCanceled, got)

	// terminal states have no outgoing edges
	_, err = TransitionInvoice(enum.InvoiceStatusPaid, enum.InvoiceStatusPending)
	assert.Error(t, err)
	_, err = TransitionInvoice(enum.InvoiceStatusCanceled, enum.InvoiceStatusPaid)
	assert.Error(t, err)

	// OVERDUE is derived, never a transition target
	_, err = TransitionInvoice(enum.InvoiceStatusPending, enum.InvoiceStatusOverdue)
	assert.Error(t, err)
}

func TestEffectiveInvoiceStatus(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	past := now.AddDate(0, 0, -5)
	future := now.AddDate(0, 0, 5)

	assert.Equal(t, enum.InvoiceStatusOverdue,
		EffectiveInvoiceStatus(enum.InvoiceStatusPending, past, now))
	assert.Equal(t, enum.InvoiceStatusPending,
		EffectiveInvoiceStatus(enum.InvoiceStatusPending, future, now))

	// paid and canceled invoices never read as overdue
	assert.Equal(t, enum.InvoiceStatusPaid,
		EffectiveInvoiceStatus(enum.InvoiceStatusPaid, past, now))
	assert.Equal(t, enum.InvoiceStatusCanceled,
		EffectiveInvoiceStatus(enum.InvoiceStatusCanceled, past, now))
}
