package billing

import (
	"math"

	"github.com/factura/factura-api/internal/domain/enum"
)

// Line is a single billable line: a quantity of something at a unit price.
// Prices are decimal euros; quantities are whole units.
type Line struct {
	Quantity  int
	UnitPrice float64
}

// Discount describes an optional document-level discount.
type Discount struct {
	Type  enum.DiscountType
	Value float64
}

// Totals holds the derived amounts for a quote or invoice.
type Totals struct {
	Subtotal       float64 `json:"subtotal"`
	TaxAmount      float64 `json:"tax_amount"`
	DiscountAmount float64 `json:"discount_amount"`
	Total          float64 `json:"total"`
}

// RoundCents rounds a decimal amount to the currency's minor unit.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// LineTotal returns quantity x unit price for one line, rounded to cents.
func LineTotal(l Line) float64 {
	return RoundCents(float64(l.Quantity) * l.UnitPrice)
}

// ComputeTotals derives subtotal, tax, discount and grand total from a set of
// lines, a uniform tax rate (percent, e.g. 20 for 20%) and an optional
// discount. The result depends only on the inputs; line order is irrelevant.
//
//	subtotal = sum(qty_i * price_i)
//	tax      = subtotal * rate / 100
//	discount = subtotal * value / 100  (percentage)  |  value  (fixed)
//	total    = subtotal + tax - discount
func ComputeTotals(lines []Line, taxRate float64, discount *Discount) Totals {
	var subtotal float64
	for _, l := range lines {
		subtotal += float64(l.Quantity) * l.UnitPrice
	}
	subtotal = RoundCents(subtotal)

	taxAmount := RoundCents(subtotal * taxRate / 100)

	var discountAmount float64
	if discount != nil {
		switch discount.Type {
		case enum.DiscountTypePercentage:
			discountAmount = RoundCents(subtotal * discount.Value / 100)
		case enum.DiscountTypeFixed:
			discountAmount = RoundCents(discount.Value)
		}
	}

	return Totals{
		Subtotal:       subtotal,
		TaxAmount:      taxAmount,
		DiscountAmount: discountAmount,
		Total:          RoundCents(subtotal + taxAmount - discountAmount),
	}
}
