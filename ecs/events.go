package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// AttachmentEventKind identifies attachment transitions.
type AttachmentEventKind string

const (
	AttachmentEventGrounded AttachmentEventKind = "grounded"
	AttachmentEventAirborne AttachmentEventKind = "airborne"
	AttachmentEventJumped   AttachmentEventKind = "jumped"
)

// AttachmentEvent is emitted when an entity's attachment changes.
type AttachmentEvent struct {
	Entity Entity
	Kind   AttachmentEventKind
}

const EventTypeAttachment = "attachment"

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}
