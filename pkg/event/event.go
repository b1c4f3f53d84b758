// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	SceneReset     Type = "scene_reset"
	ModeChanged    Type = "mode_changed"
	ParamsChanged  Type = "params_changed"
	ContactEntered Type = "contact_entered"
	ContactExited  Type = "contact_exited"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, handler := range handlers {
		handler(event)
	}
}

// SceneEvent is published when the obstacle layout is regenerated.
type SceneEvent struct {
	BaseEvent
	ObstacleCount int
	SpawnX        float64
	SpawnY        float64
}

// NewSceneEvent creates a scene-reset event.
func NewSceneEvent(source interface{}, obstacleCount int, spawnX, spawnY float64) *SceneEvent {
	return &SceneEvent{
		BaseEvent: BaseEvent{
			EventType: SceneReset,
			Source:    source,
		},
		ObstacleCount: obstacleCount,
		SpawnX:        spawnX,
		SpawnY:        spawnY,
	}
}

// ModeEvent is published when the active control law changes.
type ModeEvent struct {
	BaseEvent
	Previous int
	Current  int
}

// NewModeEvent creates a mode-change event.
func NewModeEvent(source interface{}, previous, current int) *ModeEvent {
	return &ModeEvent{
		BaseEvent: BaseEvent{
			EventType: ModeChanged,
			Source:    source,
		},
		Previous: previous,
		Current:  current,
	}
}

// ParamsEvent is published when a control parameter is accepted by a
// validated setter. It carries the clamped values actually in effect.
type ParamsEvent struct {
	BaseEvent
	StopDistance  float64
	SlowDistance  float64
	RepulsionGain float64
}

// NewParamsEvent creates a parameter-change event.
func NewParamsEvent(source interface{}, stop, slow, gain float64) *ParamsEvent {
	return &ParamsEvent{
		BaseEvent: BaseEvent{
			EventType: ParamsChanged,
			Source:    source,
		},
		StopDistance:  stop,
		SlowDistance:  slow,
		RepulsionGain: gain,
	}
}

// ContactEvent is published when the agent crosses the stop-distance
// threshold in either direction.
type ContactEvent struct {
	BaseEvent
	Distance float64
}

// NewContactEvent creates a contact-zone event of the given type.
func NewContactEvent(eventType Type, source interface{}, distance float64) *ContactEvent {
	return &ContactEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Distance: distance,
	}
}
