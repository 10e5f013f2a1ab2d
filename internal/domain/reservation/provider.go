package reservation

// ProviderOutcome is the decoded form of a payment-provider status string:
// the reservation status and payment status pair it maps to.
type ProviderOutcome struct {
	Reservation Status
	Payment     PaymentStatus
}

var providerStatusMap = map[string]ProviderOutcome{
	"approved":   {Reservation: StatusConfirmed, Payment: PaymentApproved},
	"rejected":   {Reservation: StatusCancelled, Payment: PaymentRejected},
	"cancelled":  {Reservation: StatusCancelled, Payment: PaymentRejected},
	"refunded":   {Reservation: StatusCancelled, Payment: PaymentRefunded},
	"pending":    {Reservation: StatusPendingPayment, Payment: PaymentPending},
	"in_process": {Reservation: StatusPendingPayment, Payment: PaymentPending},
}

// MapProviderStatus decodes a provider status string. Unknown statuses return
// ok=false; callers log and leave the reservation untouched rather than guess.
func MapProviderStatus(s string) (ProviderOutcome, bool) {
	outcome, ok := providerStatusMap[s]
	return outcome, ok
}
