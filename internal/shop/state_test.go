package shop

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTrackerTransitions(t *testing.T) {
	tr := NewTracker(time.Hour, time.Now)

	assert.Equal(t, StateIdle, tr.State(1, 1))
	assert.False(t, tr.advance(1, 1, StateCommitting), "cannot commit before validating")

	assert.True(t, tr.begin(1, 1))
	assert.True(t, tr.State(1, 1).Busy())
	assert.False(t, tr.begin(1, 1), "second purchase of the same product is refused")
	assert.True(t, tr.begin(1, 2), "other products are independent")

	assert.True(t, tr.advance(1, 1, StateCommitting))
	assert.False(t, tr.advance(1, 1, StateValidating))
	assert.True(t, tr.advance(1, 1, StateDone))
	assert.False(t, tr.State(1, 1).Busy())

	assert.True(t, tr.begin(1, 1), "a finished purchase can be repeated")
	assert.True(t, tr.advance(1, 1, StateFailed))
	assert.True(t, tr.begin(1, 1))
}

func TestTrackerForgetsFinishedPurchases(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	tr := NewTracker(time.Minute, func() time.Time { return now })

	for product := uint(1); product <= 100; product++ {
		assert.True(t, tr.begin(7, product))
		assert.True(t, tr.advance(7, product, StateCommitting))
		assert.True(t, tr.advance(7, product, StateDone))
	}
	assert.True(t, tr.begin(7, 500)) // Still running when the others expire
	assert.Equal(t, 101, tr.size())
	assert.Equal(t, StateDone, tr.State(7, 1))

	now = now.Add(2 * time.Minute)
	assert.Equal(t, StateIdle, tr.State(7, 1))

	assert.True(t, tr.begin(8, 1)) // Next transition sweeps
	assert.Equal(t, 2, tr.size())
	assert.Equal(t, StateValidating, tr.State(7, 500))
}
