package domain

import "github.com/google/uuid"

// Notifier pushes an event to a user's connected dashboard clients.
// Delivery is best effort: implementations must never fail the
// operation that triggered the event.
type Notifier interface {
	Notify(userID uuid.UUID, event string, payload interface{})
}

// Event names pushed over the dashboard stream.
const (
	EventRequestReceived   = "friend_request.received"
	EventRequestAccepted   = "friend_request.accepted"
	EventConnectionUpdated = "connection.updated"
	EventConnectionRemoved = "connection.removed"
)
