// Package session holds the lookup controller: the explicit state behind one
// weather widget and the transitions that change it.
package session

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/i474232898/weather-lookup/internal/common"
	"github.com/i474232898/weather-lookup/internal/weather"
)

// Fetcher is satisfied by *weather.Service.
type Fetcher interface {
	FetchForecast(ctx context.Context, location string) (*weather.Report, error)
}

// Outcome is the result of the last applied fetch: a report on success or
// Err on failure, never both.
type Outcome struct {
	Query  string          `json:"query"`
	Report *weather.Report `json:"report,omitempty"`
	Err    error           `json:"-"`
}

// OK reports whether the outcome carries a report.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Report != nil
}

// State is a snapshot of the controller.
type State struct {
	Location  string    `json:"location"`
	Pending   bool      `json:"pending"`
	Token     uint64    `json:"token"`
	Outcome   *Outcome  `json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Controller owns the widget state. Each Submit gets a monotonically
// increasing token; only the fetch holding the latest token may apply its
// result, and starting a new fetch cancels the one it supersedes.
type Controller struct {
	fetcher Fetcher
	timeout time.Duration

	mu        sync.Mutex
	location  string
	token     uint64
	pending   bool
	cancel    context.CancelFunc
	outcome   *Outcome
	updatedAt time.Time
}

// NewController creates a controller whose fetches are bounded by timeout
// (zero means bounded only by the caller's context).
func NewController(fetcher Fetcher, timeout time.Duration) *Controller {
	return &Controller{
		fetcher:   fetcher,
		timeout:   timeout,
		updatedAt: time.Now().UTC(),
	}
}

// Submit runs a lookup for text and blocks until it settles. Blank text is a
// no-op: no fetch is started and the state is left untouched. The returned
// bool reports whether this call's result was applied; it is false for blank
// input and for fetches superseded by a later Submit.
func (c *Controller) Submit(ctx context.Context, text string) (State, bool) {
	if common.IsBlank(text) {
		return c.State(), false
	}
	location := common.NormalizeLocation(text)

	fetchCtx, cancel := c.fetchContext(ctx)
	defer cancel()

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.token++
	token := c.token
	c.location = location
	c.pending = true
	c.cancel = cancel
	c.updatedAt = time.Now().UTC()
	c.mu.Unlock()

	report, err := c.fetcher.FetchForecast(fetchCtx, location)
	applied := c.onFetchSettled(token, location, report, err)

	return c.State(), applied
}

// onFetchSettled applies a finished fetch if token is still the latest one
// issued, and silently discards it otherwise.
func (c *Controller) onFetchSettled(token uint64, location string, report *weather.Report, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.token {
		log.Printf("DEBUG: discarding stale result for %q (token %d, latest %d)", location, token, c.token)
		return false
	}

	outcome := &Outcome{Query: location}
	if err != nil || report == nil {
		if err == nil {
			err = weather.ErrLookupFailed
		}
		outcome.Err = err
	} else {
		outcome.Report = report
	}

	c.outcome = outcome
	c.pending = false
	c.cancel = nil
	c.updatedAt = time.Now().UTC()
	return true
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return State{
		Location:  c.location,
		Pending:   c.pending,
		Token:     c.token,
		Outcome:   c.outcome,
		UpdatedAt: c.updatedAt,
	}
}

// Close cancels any in-flight fetch and invalidates its token, so nothing
// settles into the controller afterwards.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
		c.token++
		c.pending = false
	}
}

func (c *Controller) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}
