package lock

import (
	"sync"

	"github.com/adriancosta/fitflow/internal/domain"
)

// EventKind classifies a pipeline event.
type EventKind string

const (
	// EventProgress reports a new overall progress percentage.
	EventProgress EventKind = "progress"
	// EventArtifact reports a sub-plan status change.
	EventArtifact EventKind = "artifact"
	// EventStillWorking reports a soft timeout that is being retried.
	EventStillWorking EventKind = "still_working"
	// EventDone reports successful pipeline completion.
	EventDone EventKind = "done"
	// EventFailed reports terminal pipeline failure.
	EventFailed EventKind = "failed"
)

// Event is a pipeline progress notification.
type Event struct {
	Kind      EventKind
	SessionID string
	Progress  int
	Artifact  domain.ArtifactKind
	Status    domain.SubPlanStatus
	Message   string
}

// Signaler publishes pipeline events to subscribers. Publishing never
// blocks the pipeline: slow subscribers drop events rather than stall
// generation.
type Signaler interface {
	Publish(ev Event)
	Subscribe() (events <-chan Event, cancel func())
}

// Hub is an in-process Signaler fanning events out over channels.
type Hub struct {
	mu   sync.Mutex
	subs map[int]chan Event
	next int
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]chan Event)}
}

func (h *Hub) Publish(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Subscribe registers a buffered subscriber channel. The returned
// cancel function must be called to release it; events sent after
// cancel are discarded.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan Event, 64)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// NoopSignaler discards all events.
type NoopSignaler struct{}

func (NoopSignaler) Publish(Event) {}

func (NoopSignaler) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event)
	close(ch)
	return ch, func() {}
}
