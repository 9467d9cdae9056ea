package billing

import (
	"context"

	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/client"
)

// Provider is the outbound boundary to the payment provider. The gateway
// and its tests depend on this interface, not on the Stripe SDK directly.
type Provider interface {
	CreateCustomer(ctx context.Context, email string, metadata map[string]string) (string, error)
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (CheckoutSession, error)
}

type CheckoutParams struct {
	CustomerID string
	PriceID    string
	SuccessURL string
	CancelURL  string
	ClientRef  string
	Metadata   map[string]string
}

type CheckoutSession struct {
	ID  string
	URL string
}

type stripeProvider struct {
	api *client.API
}

func NewStripeProvider(secretKey string) Provider {
	return &stripeProvider{api: client.New(secretKey, nil)}
}

func (p *stripeProvider) CreateCustomer(ctx context.Context, email string, metadata map[string]string) (string, error) {
	params := &stripe.CustomerParams{
		Email: stripe.String(email),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	cus, err := p.api.Customers.New(params)
	if err != nil {
		return "", err
	}
	return cus.ID, nil
}

func (p *stripeProvider) CreateCheckoutSession(ctx context.Context, cp CheckoutParams) (CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer:   stripe.String(cp.CustomerID),
		SuccessURL: stripe.String(cp.SuccessURL),
		CancelURL:  stripe.String(cp.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(cp.PriceID), Quantity: stripe.Int64(1)},
		},
	}
	params.Context = ctx
	if cp.ClientRef != "" {
		params.ClientReferenceID = stripe.String(cp.ClientRef)
	}
	for k, v := range cp.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := p.api.CheckoutSessions.New(params)
	if err != nil {
		return CheckoutSession{}, err
	}
	return CheckoutSession{ID: sess.ID, URL: sess.URL}, nil
}
