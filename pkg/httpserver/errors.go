package httpserver

import "errors"

var (
	ErrStart          = errors.New("failed to start ops server")
	ErrAlreadyStarted = errors.New("ops server already started")
	ErrShutdown       = errors.New("failed to shut down ops server")
)
