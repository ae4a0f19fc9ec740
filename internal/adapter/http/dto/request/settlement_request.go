package request

// SettleQuoteRequest asks the platform to charge the client for an accepted
// quote. ExternalReference is the caller's idempotency key towards the
// payment provider.
type SettleQuoteRequest struct {
	Method            string `json:"method" binding:"required"` // pix, credit_card, debit_card, boleto
	ExternalReference string `json:"external_reference" binding:"required"`
}
