package eventbus

import "errors"

var (
	// ErrBusClosed is returned when publishing to or subscribing on a closed bus.
	ErrBusClosed = errors.New("eventbus: bus is closed")

	// ErrNilHandler is returned when subscribing without a handler.
	ErrNilHandler = errors.New("eventbus: handler is nil")

	// ErrEmptyTopic is returned when subscribing or publishing without a topic.
	ErrEmptyTopic = errors.New("eventbus: topic is empty")

	// ErrShutdownTimeout is returned when consumers do not finish within the shutdown timeout.
	ErrShutdownTimeout = errors.New("eventbus: shutdown timeout exceeded")
)
