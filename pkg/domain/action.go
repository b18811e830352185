package domain

// ActionKind is the discriminator shared by every edit action.
// History coalescing compares kinds, never payloads.
type ActionKind string

// Action is the minimal contract the history log needs from an edit.
// The closed set of concrete actions lives in package action.
type Action interface {
	Kind() ActionKind
}
