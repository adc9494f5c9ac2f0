package event

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestEventManager_PublishReachesSubscribers delivers to every handler of the type.
func TestEventManager_PublishReachesSubscribers(t *testing.T) {
	em := NewEventManager(nil)
	var saved, published atomic.Int32
	em.Subscribe(SnapshotSaved, func(Event) { saved.Add(1) })
	em.Subscribe(SnapshotSaved, func(Event) { saved.Add(1) })
	em.Subscribe(SnapshotPublished, func(Event) { published.Add(1) })

	em.Publish(Event{Type: SnapshotSaved, Data: "doc"})
	em.Wait()

	assert.Equal(t, int32(2), saved.Load())
	assert.Equal(t, int32(0), published.Load())
}

// TestEventManager_HandlerPanicRecovered keeps other handlers running.
func TestEventManager_HandlerPanicRecovered(t *testing.T) {
	em := NewEventManager(nil)
	var ran atomic.Bool
	em.Subscribe(HistoryChanged, func(Event) { panic("boom") })
	em.Subscribe(HistoryChanged, func(Event) { ran.Store(true) })

	assert.NotPanics(t, func() {
		em.Publish(Event{Type: HistoryChanged})
		em.Wait()
	})
	assert.True(t, ran.Load())
}
