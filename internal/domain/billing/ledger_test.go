package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSettlePartialPayments(t *testing.T) {
	got := Settle(300.00, []float64{100.00, 50.00})

	assert.Equal(t, 150.00, got.PaidAmount)
	assert.Equal(t, 150.00, got.RemainingAmount)
	assert.False(t, got.IsPaid)
}

func TestSettleExactCoverage(t *testing.T) {
	got := Settle(300.00, []float64{100.00, 50.00, 150.00})

	assert.Equal(t, 300.00, got.PaidAmount)
	assert.Equal(t, 0.00, got.RemainingAmount)
	assert.True(t, got.IsPaid)
}

func TestSettleOverpayment(t *testing.T) {
	// overpayment is not capped: remaining goes negative, still paid
	got := Settle(100.00, []float64{80.00, 40.00})

	assert.Equal(t, 120.00, got.PaidAmount)
	assert.Equal(t, -20.00, got.RemainingAmount)
	assert.True(t, got.IsPaid)
}

func TestSettleNoPayments(t *testing.T) {
	got := Settle(250.00, nil)

	assert.Equal(t, 0.00, got.PaidAmount)
	assert.Equal(t, 250.00, got.RemainingAmount)
	assert.False(t, got.IsPaid)
}

func TestSettleOrderIndependent(t *testing.T) {
	a := Settle(300.00, []float64{100.00, 50.00, 25.00})
	b := Settle(300.00, []float64{25.00, 100.00, 50.00})

	assert.Equal(t, a, b)
}

func TestSettleZeroTotal(t *testing.T) {
	// a zero-total invoice counts as paid with no payments at all
	got := Settle(0, nil)

	assert.True(t, got.IsPaid)
	assert.Equal(t, 0.00, got.RemainingAmount)
}
