package bus

import (
	"testing"

	"github.com/findash/findash/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestBus_DeliversInRegistrationOrder(t *testing.T) {
	b := New()

	var order []string
	b.Subscribe(func(model.ChangeEvent) { order = append(order, "first") })
	b.Subscribe(func(model.ChangeEvent) { order = append(order, "second") })
	b.Subscribe(func(model.ChangeEvent) { order = append(order, "third") })

	b.Publish(model.ChangeEvent{Action: model.ChangeCreate, CategoryID: 1})

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestBus_EventPayloadReachesHandler(t *testing.T) {
	b := New()

	var got model.ChangeEvent
	b.Subscribe(func(ev model.ChangeEvent) { got = ev })

	b.Publish(model.ChangeEvent{Action: model.ChangeDelete, CategoryID: 42})

	assert.Equal(t, model.ChangeDelete, got.Action)
	assert.Equal(t, int64(42), got.CategoryID)
}

func TestBus_UnsubscribeStopsDelivery(t *testing.T) {
	b := New()

	var first, second int
	unsubscribe := b.Subscribe(func(model.ChangeEvent) { first++ })
	b.Subscribe(func(model.ChangeEvent) { second++ })

	b.Publish(model.ChangeEvent{Action: model.ChangeCreate})
	unsubscribe()
	b.Publish(model.ChangeEvent{Action: model.ChangeCreate})

	assert.Equal(t, 1, first)
	assert.Equal(t, 2, second)
}

func TestBus_UnsubscribeIsIdempotent(t *testing.T) {
	b := New()

	var calls int
	unsubscribe := b.Subscribe(func(model.ChangeEvent) { calls++ })
	keep := b.Subscribe(func(model.ChangeEvent) { calls++ })

	unsubscribe()
	unsubscribe()
	b.Publish(model.ChangeEvent{Action: model.ChangeUpdate})

	assert.Equal(t, 1, calls)
	_ = keep
}

func TestBus_SubscribeDuringPublishMissesInFlightEvent(t *testing.T) {
	b := New()

	var late int
	b.Subscribe(func(model.ChangeEvent) {
		b.Subscribe(func(model.ChangeEvent) { late++ })
	})

	b.Publish(model.ChangeEvent{Action: model.ChangeCreate})
	assert.Equal(t, 0, late, "handler added mid-publish must not see the in-flight event")

	b.Publish(model.ChangeEvent{Action: model.ChangeCreate})
	assert.Equal(t, 1, late)
}

func TestBus_NoSubscribersIsANoOp(t *testing.T) {
	b := New()
	assert.NotPanics(t, func() {
		b.Publish(model.ChangeEvent{Action: model.ChangeDelete, CategoryID: 9})
	})
}
