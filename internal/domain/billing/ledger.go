package billing

// LedgerState summarizes the payments recorded against an invoice total.
type LedgerState struct {
	PaidAmount      float64 `json:"paid_amount"`
	RemainingAmount float64 `json:"remaining_amount"`
	IsPaid          bool    `json:"is_paid"`
}

// Settle folds a list of payment amounts against an invoice total.
// A payment order change never changes the outcome. Overpayment is not
// capped: remaining goes negative and the invoice still counts as paid.
func Settle(total float64, amounts []float64) LedgerState {
	var paid float64
	for _, a := range amounts {
		paid += a
	}
	paid = RoundCents(paid)

	return LedgerState{
		PaidAmount:      paid,
		RemainingAmount: RoundCents(total - paid),
		IsPaid:          paid >= total,
	}
}
