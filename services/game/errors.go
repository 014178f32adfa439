package game

import "errors"

// Named rejection categories surfaced at the event boundary. Apart from the
// name collision on join, all of these are lenient: the offending event is
// logged and dropped, never fatal to the session.
var (
	ErrInvalidPhase   = errors.New("operation not valid in current phase")
	ErrUnknownPlayer  = errors.New("unknown player")
	ErrUnknownSession = errors.New("unknown session")
	ErrWordNotOffered = errors.New("word was not among the offered options")
	ErrNotDrawer      = errors.New("player is not the current drawer")
)
