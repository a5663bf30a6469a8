package ecs

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/controller"
)

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventCollision = "collision"
	EventTrigger   = "trigger"
)

// CollisionEvent is emitted for every obstacle a character's move touched.
type CollisionEvent struct {
	Entity Entity
	Hit    controller.RaycastHit
}

func (e CollisionEvent) String() string {
	return fmt.Sprintf("entity %s hit normal %v at %v", e.Entity, e.Hit.Normal, e.Hit.Point)
}

// TriggerPhase names one of the three trigger callbacks.
type TriggerPhase string

const (
	TriggerEnter TriggerPhase = "enter"
	TriggerStay  TriggerPhase = "stay"
	TriggerExit  TriggerPhase = "exit"
)

// TriggerEvent is emitted when a character's trigger contacts change or persist.
type TriggerEvent struct {
	Entity Entity
	Phase  TriggerPhase
	Shape  *cp.Shape
	Layer  int
}

func (e TriggerEvent) String() string {
	return fmt.Sprintf("entity %s trigger %s on layer %d", e.Entity, e.Phase, e.Layer)
}

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

func (q *EventQueue) PushCollision(evt CollisionEvent) {
	q.Push(Event{Type: EventCollision, Data: evt})
}

func (q *EventQueue) PushTrigger(evt TriggerEvent) {
	q.Push(Event{Type: EventTrigger, Data: evt})
}

// Len reports the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
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

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
