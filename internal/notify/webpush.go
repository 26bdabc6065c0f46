package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/Etherlyvan/movie-mate/internal/utils"
)

// WebPushTransport delivers payloads over the Web Push protocol with VAPID
// authentication. It is the only component that looks inside the stored
// subscription descriptor.
type WebPushTransport struct {
	subscriber      string // contact URI for the push service, e.g. "mailto:ops@example.com"
	vapidPublicKey  string
	vapidPrivateKey string
	ttl             int // seconds the push service may queue the message
}

// NewWebPushTransport creates a VAPID-authenticated transport.
func NewWebPushTransport(subscriber, vapidPublicKey, vapidPrivateKey string, ttl int) *WebPushTransport {
	if ttl <= 0 {
		ttl = 60 * 60 * 24 // one day, matching typical push service defaults
	}
	return &WebPushTransport{
		subscriber:      subscriber,
		vapidPublicKey:  vapidPublicKey,
		vapidPrivateKey: vapidPrivateKey,
		ttl:             ttl,
	}
}

// Send pushes the payload to the endpoint described by the subscription.
func (t *WebPushTransport) Send(ctx context.Context, subscription json.RawMessage, payload []byte) error {
	var sub webpush.Subscription
	if err := json.Unmarshal(subscription, &sub); err != nil {
		return fmt.Errorf("malformed subscription descriptor: %w", err)
	}
	if sub.Endpoint == "" {
		return fmt.Errorf("subscription descriptor has no endpoint")
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, &sub, &webpush.Options{
		Subscriber:      t.subscriber,
		VAPIDPublicKey:  t.vapidPublicKey,
		VAPIDPrivateKey: t.vapidPrivateKey,
		TTL:             t.ttl,
	})
	if err != nil {
		return fmt.Errorf("failed to send push: %w", err)
	}
	defer utils.Close(resp.Body)

	// 404/410 mean the subscription is gone; everything >= 400 is a failure.
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("push service returned %d", resp.StatusCode)
	}
	return nil
}
