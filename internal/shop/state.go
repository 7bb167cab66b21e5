package shop

import (
	"sync" // Map guard
	"time" // Terminal state retention
)

// PurchaseState is the progress of a user's purchase of one product.
type PurchaseState string

const (
	StateIdle       PurchaseState = "IDLE"
	StateValidating PurchaseState = "VALIDATING"
	StateCommitting PurchaseState = "COMMITTING"
	StateDone       PurchaseState = "DONE"
	StateFailed     PurchaseState = "FAILED"
)

// DefaultStateRetention is how long Done and Failed stay visible before the pair reads Idle again
const DefaultStateRetention = 5 * time.Minute

// Busy reports whether a purchase in this state is still running.
func (s PurchaseState) Busy() bool {
	return s == StateValidating || s == StateCommitting
}

func (s PurchaseState) terminal() bool {
	return s == StateDone || s == StateFailed
}

var transitions = map[PurchaseState][]PurchaseState{
	StateIdle:       {StateValidating},
	StateDone:       {StateValidating},
	StateFailed:     {StateValidating},
	StateValidating: {StateCommitting, StateFailed},
	StateCommitting: {StateDone, StateFailed},
}

type purchaseKey struct {
	userID    uint
	productID uint
}

type trackedState struct {
	state PurchaseState
	at    time.Time // When the state was entered
}

// Tracker records the last known purchase state per (user, product).
// Finished pairs are forgotten after the retention period.
type Tracker struct {
	mu        sync.Mutex
	states    map[purchaseKey]trackedState
	retention time.Duration
	now       func() time.Time
	lastSweep time.Time
}

// NewTracker returns an empty Tracker where every pair is Idle.
func NewTracker(retention time.Duration, now func() time.Time) *Tracker {
	return &Tracker{
		states:    make(map[purchaseKey]trackedState),
		retention: retention,
		now:       now,
		lastSweep: now(),
	}
}

// State returns the current state for the pair.
func (t *Tracker) State(userID, productID uint) PurchaseState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.get(purchaseKey{userID, productID}, t.now())
}

func (t *Tracker) get(k purchaseKey, now time.Time) PurchaseState {
	ts, ok := t.states[k]
	if !ok || t.expired(ts, now) {
		return StateIdle
	}
	return ts.state
}

func (t *Tracker) expired(ts trackedState, now time.Time) bool {
	return ts.state.terminal() && now.Sub(ts.at) >= t.retention
}

// begin moves the pair to Validating. It fails when a purchase is already running.
func (t *Tracker) begin(userID, productID uint) bool {
	return t.advance(userID, productID, StateValidating)
}

// advance applies a transition, refusing ones the state machine does not allow.
func (t *Tracker) advance(userID, productID uint, next PurchaseState) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.sweep(now)
	k := purchaseKey{userID, productID}
	for _, allowed := range transitions[t.get(k, now)] {
		if allowed == next {
			t.states[k] = trackedState{state: next, at: now}
			return true
		}
	}
	return false
}

// sweep drops expired entries at most once per retention period. Caller holds mu.
func (t *Tracker) sweep(now time.Time) {
	if now.Sub(t.lastSweep) < t.retention {
		return
	}
	for k, ts := range t.states {
		if t.expired(ts, now) {
			delete(t.states, k)
		}
	}
	t.lastSweep = now
}

func (t *Tracker) size() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.states)
}
