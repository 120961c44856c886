package billing

import (
	"fmt"
	"time"

	"github.com/factura/factura-api/internal/domain/enum"
)

// InvalidTransitionError reports a status change that is not on the allowed
// edge list for its document type.
type InvalidTransitionError struct {
	Document string
	From     string
	To       string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s status cannot change from %s to %s", e.Document, e.From, e.To)
}

// Quote lifecycle: DRAFT -> SENT -> {ACCEPTED, REJECTED}; ACCEPTED -> CONVERTED.
// REJECTED and CONVERTED are terminal.
var quoteEdges = map[enum.QuoteStatus][]enum.QuoteStatus{
	enum.QuoteStatusDraft:    {enum.QuoteStatusSent},
	enum.QuoteStatusSent:     {enum.QuoteStatusAccepted, enum.QuoteStatusRejected},
	enum.QuoteStatusAccepted: {enum.QuoteStatusConverted},
}

// Invoice lifecycle over stored states: PENDING -> {PAID, CANCELED}.
// OVERDUE is never stored; see EffectiveInvoiceStatus.
var invoiceEdges = map[enum.InvoiceStatus][]enum.InvoiceStatus{
	enum.InvoiceStatusPending: {enum.InvoiceStatusPaid, enum.InvoiceStatusCanceled},
}

// TransitionQuote validates a requested quote status change and returns the
// new status, or an InvalidTransitionError for any edge not on the graph.
func TransitionQuote(current, requested enum.QuoteStatus) (enum.QuoteStatus, error) {
	for _, next := range quoteEdges[current] {
		if next == requested {
			return requested, nil
		}
	}
	return current, &InvalidTransitionError{
		Document: "quote",
		From:     current.String(),
		To:       requested.String(),
	}
}

// TransitionInvoice validates a requested invoice status change over the
// stored state set.
func TransitionInvoice(current, requested enum.InvoiceStatus) (enum.InvoiceStatus, error) {
	for _, next := range invoiceEdges[current] {
		if next == requested {
			return requested, nil
		}
	}
	return current, &InvalidTransitionError{
		Document: "invoice",
		From:     current.String(),
		To:       requested.String(),
	}
}

// EffectiveInvoiceStatus derives the status shown to callers. A pending
// invoice past its due date reads as OVERDUE; nothing is written back.
func EffectiveInvoiceStatus(stored enum.InvoiceStatus, dueDate time.Time, now time.Time) enum.InvoiceStatus {
	if stored == enum.InvoiceStatusPending && dueDate.Before(now) {
		return enum.InvoiceStatusOverdue
	}
	return stored
}
