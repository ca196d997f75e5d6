package stripe

import (
	"context"
	"fmt"

	stripego "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"go.uber.org/zap"
)

// Client wraps the Stripe SDK behind the two capabilities the payment engine
// needs. It is injected per service rather than shared as a package global,
// so tests can swap in a fake provider.
type Client struct {
	api *client.API
	log *zap.Logger
}

func NewClient(apiKey string, log *zap.Logger) *Client {
	api := &client.API{}
	api.Init(apiKey, nil)

	return &Client{
		api: api,
		log: log.With(zap.String("client", "stripe")),
	}
}

// RetrievePaymentIntent returns the provider-side status of a payment intent.
func (c *Client) RetrievePaymentIntent(ctx context.Context, intentID string) (string, error) {
	params := &stripego.PaymentIntentParams{
		Params: stripego.Params{Context: ctx},
	}

	intent, err := c.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		c.log.Error("Failed to retrieve payment intent",
			zap.Error(err),
			zap.String("payment_intent_id", intentID),
		)
		return "", fmt.Errorf("retrieve payment intent %s: %w", intentID, err)
	}

	return string(intent.Status), nil
}

// AttachPaymentMethod attaches a payment method to a customer so later
// installments can be captured off-session.
func (c *Client) AttachPaymentMethod(ctx context.Context, methodRef, customerRef string) error {
	params := &stripego.PaymentMethodAttachParams{
		Params:   stripego.Params{Context: ctx},
		Customer: stripego.String(customerRef),
	}

	if _, err := c.api.PaymentMethods.Attach(methodRef, params); err != nil {
		c.log.Error("Failed to attach payment method",
			zap.Error(err),
			zap.String("payment_method_id", methodRef),
			zap.String("customer_id", customerRef),
		)
		return fmt.Errorf("attach payment method %s to customer %s: %w", methodRef, customerRef, err)
	}

	return nil
}
