// Package feedback records outcome feedback, keeps the pending counter,
// and drives asynchronous retraining of the scoring models.
package feedback

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	kdb "github.com/pronas-suite/aicore/pkg/db"
	"github.com/pronas-suite/aicore/pkg/domain"
	"github.com/pronas-suite/aicore/pkg/loop"
)

// DefaultRetrainThreshold is how many pending entries schedule a
// retraining run.
const DefaultRetrainThreshold = 100

// retrainPayload is the part of a feedback payload the retraining task
// understands. Entries without a structure are counted but skipped.
type retrainPayload struct {
	Structure *domain.ProjectStructure `json:"structure"`
	Outcome   string                   `json:"outcome"`
}

type Controller struct {
	ledger    kdb.FeedbackInterface
	models    *Models
	threshold int
	logger    *log.Logger
	now       func() time.Time

	trigger chan struct{}

	mu        sync.Mutex
	watermark time.Time
}

type Option func(*Controller) *Controller

func WithThreshold(n int) Option {
	return func(c *Controller) *Controller {
		c.threshold = n
		return c
	}
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) *Controller {
		c.logger = l
		return c
	}
}

// WithNow fixes the clock. For tests.
func WithNow(now func() time.Time) Option {
	return func(c *Controller) *Controller {
		c.now = now
		return c
	}
}

func NewController(ledger kdb.FeedbackInterface, models *Models, options ...Option) *Controller {
	c := &Controller{
		ledger:    ledger,
		models:    models,
		threshold: DefaultRetrainThreshold,
		logger:    log.Default(),
		now:       time.Now,
		trigger:   make(chan struct{}, 1),
	}
	for _, option := range options {
		c = option(c)
	}
	return c
}

// Record appends entry to the ledger and, when the pending count has
// reached the threshold, schedules a retraining run without blocking.
//
// A ledger failure is surfaced to the caller; nothing is retried here.
func (c *Controller) Record(ctx context.Context, entry domain.FeedbackEntry) (pending int, scheduled bool, err error) {
	if err := c.ledger.Append(ctx, entry); err != nil {
		return 0, false, err
	}

	pending, err = c.PendingCount(ctx)
	if err != nil {
		return 0, false, err
	}

	if pending >= c.threshold {
		select {
		case c.trigger <- struct{}{}:
		default:
			// a run is already scheduled
		}
		scheduled = true
	}
	return pending, scheduled, nil
}

// PendingCount is the number of ledger entries not yet consumed by a
// successful retraining run.
func (c *Controller) PendingCount(ctx context.Context) (int, error) {
	c.mu.Lock()
	since := c.watermark
	c.mu.Unlock()

	return c.ledger.CountSince(ctx, since)
}

// Serve runs the retraining worker until ctx is done. Each trigger
// fires one retraining run; failures are logged and never propagate to
// the request which crossed the threshold.
func (c *Controller) Serve(ctx context.Context) error {
	_, err := loop.Start(ctx, struct{}{}, func(ctx context.Context, v struct{}) (struct{}, loop.Next) {
		select {
		case <-ctx.Done():
			return v, loop.Break(ctx.Err())
		case <-c.trigger:
		}

		if err := c.retrain(ctx); err != nil {
			c.logger.Printf("[WARN] retraining failed (feedback is kept): %v", err)
		}
		return v, loop.Continue(0)
	})
	return err
}

// retrain scans the pending ledger entries, fits the models, and moves
// the watermark past the consumed entries. The ledger itself is never
// truncated; a failed fit leaves the watermark where it was.
func (c *Controller) retrain(ctx context.Context) error {
	c.mu.Lock()
	since := c.watermark
	c.mu.Unlock()

	start := c.now()

	samples := [][]float64{}
	approved := []bool{}
	if err := c.ledger.ScanSince(ctx, since, func(entry domain.FeedbackEntry) error {
		payload := retrainPayload{}
		if err := json.Unmarshal(entry.Payload, &payload); err != nil || payload.Structure == nil {
			return nil // not trainable, skip
		}
		samples = append(samples, Extract(*payload.Structure))
		approved = append(approved, payload.Outcome == "approved")
		return nil
	}); err != nil {
		return err
	}

	if err := c.models.Fit(samples, approved); err != nil {
		return err
	}

	c.mu.Lock()
	c.watermark = start
	c.mu.Unlock()

	c.logger.Printf("retrained scoring models on %d feedback entries", len(samples))
	return nil
}
