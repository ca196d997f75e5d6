package usecase

import "context"

// Payment intent statuses the engine cares about. Anything else blocks
// confirmation.
const (
	IntentStatusSucceeded  = "succeeded"
	IntentStatusProcessing = "processing"
)

// PaymentProvider is the contract the engine requires from the external
// capture provider. Capture itself is driven elsewhere; the engine only
// verifies intents and attaches methods.
type PaymentProvider interface {
	RetrievePaymentIntent(ctx context.Context, intentID string) (status string, err error)
	AttachPaymentMethod(ctx context.Context, methodRef, customerRef string) error
}

// CapturePolicy names the business decision of which provider statuses count
// as "captured enough" to book. Accepting processing lets ACH-style delayed
// settlement book optimistically before final settlement.
type CapturePolicy struct {
	AcceptProcessing bool
}

func (p CapturePolicy) Accepts(status string) bool {
	if status == IntentStatusSucceeded {
		return true
	}
	return p.AcceptProcessing && status == IntentStatusProcessing
}
