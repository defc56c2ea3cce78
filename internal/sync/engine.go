package sync

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"bridgecal/internal/core"
	"bridgecal/internal/state"
)

// Status is the observable replication state shown to the user.
type Status string

const (
	StatusSynced  Status = "synced"
	StatusPending Status = "pending"
	StatusError   Status = "error"
)

// ErrPullInFlight is returned when a pull is skipped because the previous
// one has not finished.
var ErrPullInFlight = errors.New("pull already in flight")

// Engine coordinates replication for one bridge record. Pushes are fire
// and forget: a failure surfaces only through Status and never rolls back
// or blocks local mutation. Pulls are best-effort background refreshes;
// their failures are logged and do not touch Status.
type Engine struct {
	client   *Client
	bridgeID string
	bridge   *state.Bridge
	clock    core.Clock
	logger   *log.Logger

	mu      sync.Mutex
	status  Status
	pulling bool
}

// NewEngine constructs an engine in the synced state.
func NewEngine(client *Client, bridgeID string, bridge *state.Bridge, clock core.Clock, logger *log.Logger) *Engine {
	if clock == nil {
		clock = core.SystemClock{}
	}
	return &Engine{
		client:   client,
		bridgeID: bridgeID,
		bridge:   bridge,
		clock:    clock,
		logger:   logger,
		status:   StatusSynced,
	}
}

// Status returns the current replication status.
func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.status
}

// BindPush registers the engine's push as the bridge's change hook. Each
// mutation then pushes asynchronously; rapid mutations each push on their
// own and may complete out of order (accepted; the remote record is a
// whole-envelope replace either way).
func (e *Engine) BindPush(ctx context.Context) {
	e.bridge.OnChange(func() {
		go func() { _ = e.Push(ctx) }()
	})
}

// Push replicates the full local envelope to the remote store. The status
// moves to pending immediately, then to synced or error with the outcome.
func (e *Engine) Push(ctx context.Context) error {
	e.setStatus(StatusPending)

	data := e.bridge.Snapshot()
	data.LastUpdated = e.clock.Now().UTC()

	if err := e.client.Put(ctx, e.bridgeID, data); err != nil {
		e.setStatus(StatusError)
		e.logf("push failed: %v", err)
		return err
	}
	e.setStatus(StatusSynced)
	return nil
}

// PullOnce fetches the remote envelope and merges it into local state.
// An absent record and any retrieval failure are diagnostic only: the
// status is left unchanged (deliberate asymmetry with Push). Overlapping
// pulls are skipped via an in-flight flag.
func (e *Engine) PullOnce(ctx context.Context) (state.MergeResult, error) {
	e.mu.Lock()
	if e.pulling {
		e.mu.Unlock()
		return state.MergeResult{}, ErrPullInFlight
	}
	e.pulling = true
	e.mu.Unlock()
	defer func() {
		e.mu.Lock()
		e.pulling = false
		e.mu.Unlock()
	}()

	remote, err := e.client.Get(ctx, e.bridgeID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			e.logf("pull: bridge record %s not created yet", e.bridgeID)
		} else {
			e.logf("pull failed: %v", err)
		}
		return state.MergeResult{}, err
	}

	result := e.bridge.Merge(*remote)
	e.setStatus(StatusSynced)
	return result, nil
}

// Run polls the remote store until ctx is done. Pull failures never stop
// the loop. The optional onPull callback receives each successful merge
// result (the UI uses it for notifications).
func (e *Engine) Run(ctx context.Context, interval time.Duration, onPull func(state.MergeResult)) {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := e.PullOnce(ctx)
			if err != nil {
				continue
			}
			if onPull != nil {
				onPull(result)
			}
		}
	}
}

func (e *Engine) setStatus(s Status) {
	e.mu.Lock()
	e.status = s
	e.mu.Unlock()
}

func (e *Engine) logf(format string, args ...any) {
	if e.logger == nil {
		return
	}
	e.logger.Printf(format, args...)
}
