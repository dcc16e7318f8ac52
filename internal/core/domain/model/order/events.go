package order

import (
	"time"

	"github.com/google/uuid"
)

// EventType names a change in an order's life.
type EventType string

const (
	EventPlaced    EventType = "order.placed"
	EventTaken     EventType = "order.taken"
	EventCompleted EventType = "order.completed"
	EventCancelled EventType = "order.cancelled"
)

// Event is emitted after a change to an order has been committed.
// Consumers can order events of one order by Version.
type Event struct {
	ID         uuid.UUID
	Type       EventType
	OrderID    string
	Status     Status
	Version    int64
	OccurredAt time.Time
}

// NewPlacedEvent describes a freshly stored order.
func NewPlacedEvent(o *Order) Event {
	return newEvent(EventPlaced, o)
}

// NewStatusChangedEvent describes the transition op that produced o.
func NewStatusChangedEvent(o *Order, op Operation) Event {
	var t EventType
	switch op {
	case Take:
		t = EventTaken
	case Complete:
		t = EventCompleted
	case Cancel:
		t = EventCancelled
	default:
		t = EventType("order." + op.String())
	}
	return newEvent(t, o)
}

func newEvent(t EventType, o *Order) Event {
	return Event{
		ID:         uuid.New(),
		Type:       t,
		OrderID:    o.ID(),
		Status:     o.Status(),
		Version:    o.Version(),
		OccurredAt: time.Now().UTC(),
	}
}
