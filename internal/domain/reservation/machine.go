package reservation

// Edge is a single allowed transition in the reservation lifecycle.
type Edge struct {
	From Status
	To   Status
}

// Creation is the only way into pending_payment; cancelled and expired are
// terminal. Confirmed can still be cancelled by an admin or a refund.
var transitions = []Edge{
	{From: StatusPendingPayment, To: StatusConfirmed},
	{From: StatusPendingPayment, To: StatusCancelled},
	{From: StatusPendingPayment, To: StatusExpired},
	{From: StatusConfirmed, To: StatusCancelled},
}

func CanTransition(from, to Status) bool {
	for _, e := range transitions {
		if e.From == from && e.To == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from the given one in one step.
func NextStatuses(from Status) []Status {
	var out []Status
	for _, e := range transitions {
		if e.From == from {
			out = append(out, e.To)
		}
	}
	return out
}
