package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kieren92/ColonySim/internal/events"
)

func TestOrderPriorityOrdering(t *testing.T) {
	ob := NewOrderBook(events.NewBus())
	low := ob.Create("farm_work", 10, 1, 0)
	high := ob.Create("farm_work", 5, 9, 0)
	mid := ob.Create("cook_meals", 3, 5, 0)

	open := ob.Open()
	require.Len(t, open, 3)
	assert.Same(t, high, open[0])
	assert.Same(t, mid, open[1])
	assert.Same(t, low, open[2])
}

func TestOrderTiesKeepCreationOrder(t *testing.T) {
	ob := NewOrderBook(events.NewBus())
	a := ob.Create("farm_work", 5, 3, 0)
	b := ob.Create("farm_work", 5, 3, 0)
	open := ob.Open()
	assert.Same(t, a, open[0])
	assert.Same(t, b, open[1])
}

func TestProgressOverflowRollsToNextOrder(t *testing.T) {
	bus := events.NewBus()
	completed := 0
	bus.Subscribe(func(ev events.Event) {
		if ev.Type == events.OrderCompleted {
			completed++
		}
	})

	ob := NewOrderBook(bus)
	first := ob.Create("farm_work", 3, 5, 0)
	second := ob.Create("farm_work", 3, 1, 0)
	worker := uuid.New()
	ob.Assign(first, worker)

	ob.AddProgress("farm_work", 5)

	assert.True(t, first.Completed)
	assert.Equal(t, 3, first.Progress)
	assert.Empty(t, first.Assignees, "completion releases assignments")
	assert.Equal(t, 2, second.Progress, "overflow credits the next order")
	assert.False(t, second.Completed)
	assert.Equal(t, 1, completed)
}

func TestProgressIgnoresOtherActions(t *testing.T) {
	ob := NewOrderBook(events.NewBus())
	o := ob.Create("cook_meals", 4, 1, 0)
	ob.AddProgress("farm_work", 4)
	assert.Equal(t, 0, o.Progress)
}

func TestExpireReleasesPastDeadline(t *testing.T) {
	ob := NewOrderBook(events.NewBus())
	doomed := ob.Create("farm_work", 10, 1, 100)
	open := ob.Create("farm_work", 10, 1, 0)
	ob.Assign(doomed, uuid.New())

	ob.Expire(99)
	assert.False(t, doomed.Expired)

	ob.Expire(100)
	assert.True(t, doomed.Expired)
	assert.Empty(t, doomed.Assignees)
	require.Len(t, ob.Open(), 1)
	assert.Same(t, open, ob.Open()[0])

	ob.AddProgress("farm_work", 2)
	assert.Equal(t, 0, doomed.Progress, "expired orders stop accruing")
	assert.Equal(t, 2, open.Progress)
}

func TestAssignToClosedOrderIgnored(t *testing.T) {
	ob := NewOrderBook(events.NewBus())
	o := ob.Create("farm_work", 1, 1, 0)
	ob.AddProgress("farm_work", 1)
	require.True(t, o.Completed)

	ob.Assign(o, uuid.New())
	assert.Empty(t, o.Assignees)
}
