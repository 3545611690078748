package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesSessionSubscribers(t *testing.T) {
	h := NewHub()
	a, cleanupA := h.Subscribe("s1")
	defer cleanupA()
	b, cleanupB := h.Subscribe("s2")
	defer cleanupB()

	h.Publish("s1", Event{SessionID: "s1", Event: "state", Data: 1})

	select {
	case ev := <-a:
		assert.Equal(t, "state", ev.Event)
	default:
		t.Fatal("subscriber of s1 got nothing")
	}
	select {
	case <-b:
		t.Fatal("subscriber of s2 got an s1 event")
	default:
	}
	assert.Equal(t, 2, h.TotalSubscribers())
}

func TestHub_PublishDropsWhenFull(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("s1")
	defer cleanup()

	for i := 0; i < 20; i++ {
		h.Publish("s1", Event{Event: "state", Data: i})
	}
	assert.Len(t, ch, cap(ch))
}

func TestHub_CloseEndsSubscriptions(t *testing.T) {
	h := NewHub()
	ch, cleanup := h.Subscribe("s1")

	h.Close("s1")
	_, ok := <-ch
	require.False(t, ok)
	assert.Equal(t, 0, h.SubscriberCount("s1"))

	// Cleanup after Close must not close the channel twice.
	assert.NotPanics(t, cleanup)
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	h := NewHub()
	_, cleanup := h.Subscribe("s1")
	_, cleanup2 := h.Subscribe("s1")
	assert.Equal(t, 2, h.SubscriberCount("s1"))

	cleanup()
	assert.Equal(t, 1, h.SubscriberCount("s1"))
	cleanup2()
	assert.Equal(t, 0, h.TotalSubscribers())
}

func TestHub_CloseAll(t *testing.T) {
	h := NewHub()
	a, cleanupA := h.Subscribe("s1")
	b, cleanupB := h.Subscribe("s2")

	h.CloseAll()
	_, okA := <-a
	_, okB := <-b
	assert.False(t, okA)
	assert.False(t, okB)
	assert.Equal(t, 0, h.TotalSubscribers())
	assert.NotPanics(t, cleanupA)
	assert.NotPanics(t, cleanupB)
}
