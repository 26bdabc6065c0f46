package notify

import (
	"context"
	"encoding/json"
)

// NopTransport accepts every payload and delivers nothing. Used when no
// VAPID keys are configured so the rest of the pipeline still works in
// development.
type NopTransport struct{}

func (NopTransport) Send(_ context.Context, _ json.RawMessage, _ []byte) error {
	return nil
}
