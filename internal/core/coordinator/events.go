package coordinator

import (
	"time"

	"loook/internal/core/model"
)

// EventType defines the type of Coordinator event.
type EventType string

const (
	EventShow      EventType = "show"
	EventCountdown EventType = "countdown"
	EventHide      EventType = "hide"
	EventProgress  EventType = "progress"
	EventIdleReset EventType = "idle_reset"
	EventIdleError EventType = "idle_error"
)

// Event represents a Coordinator update for observers.
type Event struct {
	Type        EventType
	Kind        model.Kind
	SecondsLeft int
	Remaining   time.Duration
	Message     string
	At          time.Time
}
