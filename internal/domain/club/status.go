package club

// ===============================
// Subscription Status
// ===============================

type SubscriptionStatus string

const (
	StatusPending  SubscriptionStatus = "pending"
	StatusActive   SubscriptionStatus = "active"
	StatusOverdue  SubscriptionStatus = "overdue"
	StatusCanceled SubscriptionStatus = "canceled"
)

const (
	OriginGateway = "gateway"
	OriginManual  = "manual"
)

// FromGateway maps a preapproval status reported by the payment gateway.
func FromGateway(status string) (SubscriptionStatus, bool) {
	switch status {
	case "authorized":
		return StatusActive, true
	case "paused":
		return StatusOverdue, true
	case "cancelled":
		return StatusCanceled, true
	case "pending":
		return StatusPending, true
	}
	return "", false
}

func (s SubscriptionStatus) IsTerminal() bool {
	switch s {
	case StatusCanceled:
		return true
	case StatusPending, StatusActive, StatusOverdue:
		return false
	}
	return false
}
