package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSessionStart  EventType = "session_start"
	EventSessionDelete EventType = "session_delete"
	EventDispatch      EventType = "dispatch"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// SessionEvent marks the creation or removal of a session.
type SessionEvent struct {
	EventBase
	DocumentID string `json:"document_id,omitempty"`
}

// DispatchEvent describes one dispatched batch of actions.
type DispatchEvent struct {
	EventBase
	Actions  []ActionKind  `json:"actions"`
	Change   string        `json:"change"`
	Cursor   int           `json:"cursor"`
	Length   int           `json:"length"`
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// LifecycleHooks defines callbacks for editor observability.
// Nil hooks are skipped.
type LifecycleHooks struct {
	OnSessionStart  func(context.Context, *SessionEvent)
	OnSessionDelete func(context.Context, *SessionEvent)
	OnDispatch      func(context.Context, *DispatchEvent)
}
