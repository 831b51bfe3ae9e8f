package notifier

import "errors"

var (
	// ErrEncode returned when the event could not be serialized
	ErrEncode = errors.New("notifier: failed to encode event")

	// ErrPublish returned when the broker rejected or did not receive the event
	ErrPublish = errors.New("notifier: failed to publish event")
)
