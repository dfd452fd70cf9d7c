package payment

//go:generate go run go.uber.org/mock/mockgen -source=./payment.go -destination=./mocks/payment_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"

	"agenda/config"
	"agenda/infras/otel"
	"agenda/shared/constant"

	stripe "github.com/stripe/stripe-go/v76"
	stripeclient "github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

// MetadataIntentKey is the checkout-session metadata field carrying our
// booking intent id through the payment provider and back.
const MetadataIntentKey = "booking_intent_id"

// CheckoutSession is the slice of the payment provider's session state this
// pipeline needs: is it paid, which transaction paid it, and which booking
// intent it belongs to.
type CheckoutSession struct {
	ID              string
	Paid            bool
	TransactionID   string
	BookingIntentID string
}

// WebhookEvent is a verified event from the payment provider.
type WebhookEvent struct {
	Type    string
	Session CheckoutSession
}

const EventCheckoutCompleted = "checkout.session.completed"

type Client interface {
	GetCheckoutSession(ctx context.Context, id string) (CheckoutSession, error)
	ParseWebhookEvent(payload []byte, signature string) (WebhookEvent, error)
}

type clientImpl struct {
	cfg  *config.Config
	api  *stripeclient.API
	otel otel.Otel
}

func NewClient(cfg *config.Config, ot otel.Otel) Client {
	api := &stripeclient.API{}
	api.Init(cfg.Payment.SecretKey, nil)

	return &clientImpl{
		cfg:  cfg,
		api:  api,
		otel: ot,
	}
}

func (c *clientImpl) GetCheckoutSession(ctx context.Context, id string) (CheckoutSession, error) {
	_, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".GetCheckoutSession")
	defer scope.End()

	session, err := c.api.CheckoutSessions.Get(id, nil)
	if err != nil {
		scope.TraceError(err)

		return CheckoutSession{}, fmt.Errorf("failed to fetch checkout session: %w", err)
	}

	return fromStripeSession(session), nil
}

// ParseWebhookEvent verifies the payload signature against the configured
// signing secret before trusting any of its content.
func (c *clientImpl) ParseWebhookEvent(payload []byte, signature string) (WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.cfg.Payment.WebhookSecret)
	if err != nil {
		return WebhookEvent{}, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	parsed := WebhookEvent{Type: string(event.Type)}

	if parsed.Type == EventCheckoutCompleted {
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return WebhookEvent{}, fmt.Errorf("failed to decode checkout session event: %w", err)
		}

		parsed.Session = fromStripeSession(&session)
	}

	return parsed, nil
}

func fromStripeSession(session *stripe.CheckoutSession) CheckoutSession {
	result := CheckoutSession{
		ID:              session.ID,
		Paid:            session.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		BookingIntentID: session.Metadata[MetadataIntentKey],
	}

	if session.PaymentIntent != nil {
		result.TransactionID = session.PaymentIntent.ID
	}

	return result
}
