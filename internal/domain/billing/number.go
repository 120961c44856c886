package billing

import "github.com/google/uuid"

// Display numbers are derived from the entity id, never stored. The first 8
// hex characters of a v4 UUID give enough entropy that collisions are
// accepted as negligible.
const (
	invoicePrefix = "FAC-"
	quotePrefix   = "DEV-"
)

func shortID(id uuid.UUID) string {
	return id.String()[:8]
}

// InvoiceNumber returns the display number for an invoice, e.g. FAC-1a2b3c4d.
func InvoiceNumber(id uuid.UUID) string {
	return invoicePrefix + shortID(id)
}

// QuoteNumber returns the display number for a quote, e.g. DEV-1a2b3c4d.
func QuoteNumber(id uuid.UUID) string {
	return quotePrefix + shortID(id)
}
