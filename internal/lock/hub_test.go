package lock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adriancosta/fitflow/internal/lock"
)

func TestHub_FanOut(t *testing.T) {
	hub := lock.NewHub()

	ch1, cancel1 := hub.Subscribe()
	defer cancel1()
	ch2, cancel2 := hub.Subscribe()
	defer cancel2()

	hub.Publish(lock.Event{Kind: lock.EventProgress, Progress: 30})

	for _, ch := range []<-chan lock.Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, lock.EventProgress, ev.Kind)
			assert.Equal(t, 30, ev.Progress)
		default:
			t.Fatal("expected buffered event")
		}
	}
}

func TestHub_CancelStopsDelivery(t *testing.T) {
	hub := lock.NewHub()

	ch, cancel := hub.Subscribe()
	cancel()

	// Publishing after cancel must not panic on the closed channel.
	hub.Publish(lock.Event{Kind: lock.EventDone})

	_, open := <-ch
	assert.False(t, open)
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := lock.NewHub()

	ch, cancel := hub.Subscribe()
	defer cancel()

	// Overfill the subscriber buffer; Publish must never block.
	for i := 0; i < 200; i++ {
		hub.Publish(lock.Event{Kind: lock.EventProgress, Progress: i})
	}

	ev := <-ch
	require.Equal(t, 0, ev.Progress)
}

func TestHub_CancelIsIdempotent(t *testing.T) {
	hub := lock.NewHub()
	_, cancel := hub.Subscribe()
	cancel()
	cancel()
}
