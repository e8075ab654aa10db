package notifications

import "errors"

var (
	// ErrNotificationNotFound is returned when a notification is not found.
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrInvalidData is returned when a notification payload is not a JSON object.
	ErrInvalidData = errors.New("invalid notification data")

	// ErrIDRequired is returned when storing a notification without an ID.
	ErrIDRequired = errors.New("notification ID is required")

	// ErrUnknownAudience is returned when a notification cannot be routed to a topic.
	ErrUnknownAudience = errors.New("unknown notification audience")
)
