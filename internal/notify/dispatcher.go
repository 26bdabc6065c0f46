package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Etherlyvan/movie-mate/internal/domain"
	"github.com/Etherlyvan/movie-mate/internal/logger"
	"github.com/Etherlyvan/movie-mate/internal/store"
)

// DefaultConcurrency caps in-flight sends during bulk fan-out. A few
// hundred is safe for typical push services; the config can lower it.
const DefaultConcurrency = 64

// Status is the terminal outcome of one delivery attempt.
type Status string

const (
	StatusSent    Status = "sent"
	StatusSkipped Status = "skipped" // ineligible recipient; expected, not an error
	StatusFailed  Status = "failed"
)

// Outcome reports one recipient's terminal state.
type Outcome struct {
	UserID string `json:"userId"`
	Status Status `json:"status"`
	Err    error  `json:"-"`
}

// BulkResult aggregates a fan-out. Succeeded counts only Sent; Skipped and
// Failed are both "not succeeded" in the headline numbers, with per-id
// detail in Outcomes.
type BulkResult struct {
	Total     int       `json:"total"`
	Succeeded int       `json:"succeeded"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
	Outcomes  []Outcome `json:"outcomes"`
}

// TransportError wraps the underlying delivery failure so callers see the
// taxonomy type, never the raw third-party error alone.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("push transport: %v", e.Err) }
func (e *TransportError) Unwrap() error { return e.Err }

// Transport delivers a serialized payload to one subscription endpoint.
// The subscription descriptor is passed through verbatim; only the
// transport understands its structure.
type Transport interface {
	Send(ctx context.Context, subscription json.RawMessage, payload []byte) error
}

// Dispatcher sends notification payloads to users, re-checking eligibility
// before every attempt.
type Dispatcher struct {
	store       store.UserStore
	transport   Transport
	logger      logger.Logger
	concurrency int
}

// NewDispatcher creates a dispatcher. concurrency <= 0 selects
// DefaultConcurrency.
func NewDispatcher(s store.UserStore, t Transport, log logger.Logger, concurrency int) *Dispatcher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Dispatcher{store: s, transport: t, logger: log, concurrency: concurrency}
}

// Eligible reports whether the user may receive push notifications: a
// stored subscription and the push preference enabled. Evaluated fresh on
// every send, never cached, because preferences change between builds.
func Eligible(u *domain.User) bool {
	return len(u.PushSubscription) > 0 && u.Preferences.Notifications.Push
}

// SendToUser attempts one delivery. Ineligibility yields Skipped, a
// transport error yields Failed with the cause attached; neither is ever
// raised as a fault to the caller.
func (d *Dispatcher) SendToUser(ctx context.Context, userID string, p Payload) Outcome {
	u, err := d.store.GetUser(ctx, userID)
	if err != nil {
		return Outcome{UserID: userID, Status: StatusFailed, Err: err}
	}

	if !Eligible(u) {
		d.logger.Debug("push skipped, recipient not eligible",
			logger.String("user_id", userID),
			logger.String("tag", p.Tag))
		return Outcome{UserID: userID, Status: StatusSkipped}
	}

	data, err := json.Marshal(p)
	if err != nil {
		return Outcome{UserID: userID, Status: StatusFailed, Err: fmt.Errorf("failed to marshal payload: %w", err)}
	}

	if err := d.transport.Send(ctx, u.PushSubscription, data); err != nil {
		d.logger.Warn("push delivery failed",
			logger.String("user_id", userID),
			logger.String("tag", p.Tag),
			logger.Error(err))
		return Outcome{UserID: userID, Status: StatusFailed, Err: &TransportError{Err: err}}
	}

	d.logger.Debug("push sent",
		logger.String("user_id", userID),
		logger.String("tag", p.Tag))
	return Outcome{UserID: userID, Status: StatusSent}
}

// SendBulk fans the payload out to every recipient independently and waits
// for all attempts to settle. One recipient's failure or skip never
// cancels or delays its siblings; in-flight sends are not cancelled when
// others fail. The batch completes in time bounded by the slowest single
// send (subject to the concurrency cap), not the sum of all sends.
func (d *Dispatcher) SendBulk(ctx context.Context, userIDs []string, p Payload) BulkResult {
	outcomes := make([]Outcome, len(userIDs))
	sem := make(chan struct{}, d.concurrency)

	var wg sync.WaitGroup
	for i, id := range userIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[i] = d.SendToUser(ctx, id, p)
		}(i, id)
	}
	wg.Wait()

	res := BulkResult{Total: len(userIDs), Outcomes: outcomes}
	for _, o := range outcomes {
		switch o.Status {
		case StatusSent:
			res.Succeeded++
		case StatusSkipped:
			res.Skipped++
		case StatusFailed:
			res.Failed++
		}
	}

	d.logger.Info("bulk push settled",
		logger.String("tag", p.Tag),
		logger.Int("total", res.Total),
		logger.Int("succeeded", res.Succeeded),
		logger.Int("skipped", res.Skipped),
		logger.Int("failed", res.Failed))
	return res
}
