// Package stripe implements the payment gateway port against the Stripe
// API. One Charge call maps to one confirmed PaymentIntent.
package stripe

import (
	"context"
	"errors"

	"ecommerce/internal/pkg/errs"

	stripesdk "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
)

// Gateway charges orders through Stripe PaymentIntents. Intents are created
// already confirmed; redirect-based payment methods are disabled since the
// engine has no browser flow to continue them in.
type Gateway struct {
	defaultPaymentMethod string
}

// NewGateway creates a Stripe gateway. The API key is installed globally for
// the stripe client. defaultPaymentMethod is used when a charge arrives
// without one.
func NewGateway(apiKey string, defaultPaymentMethod string) *Gateway {
	stripesdk.Key = apiKey
	return &Gateway{defaultPaymentMethod: defaultPaymentMethod}
}

// Charge creates and confirms a PaymentIntent for the given amount. A card
// failure maps to ErrGatewayDeclined; transport and API errors map to
// ErrGatewayUnavailable so callers know the charge outcome is unknown and a
// blind retry is unsafe.
func (g *Gateway) Charge(ctx context.Context, amountMinorUnits int64, currency string, paymentMethod string) error {
	if paymentMethod == "" {
		paymentMethod = g.defaultPaymentMethod
	}

	params := &stripesdk.PaymentIntentParams{
		Amount:        stripesdk.Int64(amountMinorUnits),
		Currency:      stripesdk.String(currency),
		PaymentMethod: stripesdk.String(paymentMethod),
		Confirm:       stripesdk.Bool(true),
		AutomaticPaymentMethods: &stripesdk.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripesdk.Bool(true),
			AllowRedirects: stripesdk.String("never"),
		},
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return mapStripeError(err)
	}

	if pi.Status != stripesdk.PaymentIntentStatusSucceeded {
		return errs.NewGatewayDeclinedError(string(pi.Status), nil)
	}

	return nil
}

// mapStripeError translates a Stripe SDK error into the gateway error
// taxonomy. Card errors are declines; everything else, including timeouts
// and 5xx responses, is unavailability.
func mapStripeError(err error) error {
	var stripeErr *stripesdk.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Type == stripesdk.ErrorTypeCard {
			return errs.NewGatewayDeclinedError(string(stripeErr.Code), err)
		}
		return errs.NewGatewayUnavailableError(string(stripeErr.Type), err)
	}

	return errs.NewGatewayUnavailableError("transport", err)
}
