package request

type CaptureEventRequest struct {
	RentPaymentID    string  `json:"rent_payment_id" validate:"required,uuid4"`
	Outcome          string  `json:"outcome" validate:"required,oneof=succeeded failed"`
	ProviderChargeID *string `json:"provider_charge_id,omitempty"`
	FailureReason    string  `json:"failure_reason,omitempty"`
	FailureCode      *string `json:"failure_code,omitempty"`
}
