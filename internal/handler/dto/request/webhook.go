package request

// PaymentWebhookRequest is the provider's asynchronous payment notification.
// Status is decoded against the known provider statuses; anything unknown is
// logged and ignored rather than guessed at.
type PaymentWebhookRequest struct {
	PaymentID         string `json:"payment_id" binding:"required"`
	ExternalReference string `json:"external_reference" binding:"required,uuid"`
	Status            string `json:"status" binding:"required"`
	AmountCents       int64  `json:"amount_cents"`
}
