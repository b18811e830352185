package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrUnknownAction is returned when decoding an action whose type is not part of the action set.
var ErrUnknownAction = errors.New("unknown action type")

// ErrUnsupportedAction is returned when an action kind cannot be built from the given encoding.
var ErrUnsupportedAction = errors.New("action not supported in this encoding")

// ErrLastScene is returned by callers that refuse to delete the only remaining scene.
// The data model itself never enforces this.
var ErrLastScene = errors.New("cannot delete the last scene")

// ErrInvalidSnapshot is returned when restored state breaks a structural invariant,
// such as an empty history or a cursor outside the revision list.
var ErrInvalidSnapshot = errors.New("invalid snapshot")

// ErrInvalidSessionID is returned by stores that cannot address the given session id.
var ErrInvalidSessionID = errors.New("invalid session id")
