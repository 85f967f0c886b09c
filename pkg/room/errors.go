package room

import "errors"

// ErrTableNotFound is returned when a game id does not match an open table
var ErrTableNotFound = errors.New("table not found")

// ErrInvalidToken is returned when a seat token is unknown
var ErrInvalidToken = errors.New("invalid token")

// ErrNotHost is returned when someone other than the host tries a host-only action
var ErrNotHost = errors.New("only the host can do that")
