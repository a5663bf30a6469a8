package component

import (
	"errors"
	"sync/atomic"
)

var (
	ErrEntityNotAlive       = errors.New("ecs: entity not alive")
	ErrNilComponent         = errors.New("ecs: component is nil")
	ErrInvalidComponentKind = errors.New("ecs: invalid component kind")
)

// ComponentID identifies one registered component type.
type ComponentID uint32

var nextComponentID atomic.Uint32

// Key is the untyped view of a component kind, used by multi-kind queries.
type Key interface {
	ID() ComponentID
}

// ComponentKind is the typed key under which values of T are stored.
type ComponentKind[T any] struct {
	id ComponentID
}

func (k ComponentKind[T]) ID() ComponentID {
	return k.id
}

func (k ComponentKind[T]) Valid() bool {
	return k.id != 0
}

// ComponentHandle is what component files export. Each call to NewComponent
// registers a distinct kind, even for the same T.
type ComponentHandle[T any] struct {
	kind ComponentKind[T]
}

func NewComponent[T any]() ComponentHandle[T] {
	return ComponentHandle[T]{kind: ComponentKind[T]{id: ComponentID(nextComponentID.Add(1))}}
}

func (h ComponentHandle[T]) Kind() ComponentKind[T] {
	return h.kind
}
