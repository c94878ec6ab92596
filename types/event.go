package types

import "time"

// Event kinds published to the change-event channel.
const (
	EventUserRegistered  = "user.registered"
	EventMushroomCreated = "mushroom.created"
	EventMushroomUpdated = "mushroom.updated"
	EventMushroomDeleted = "mushroom.deleted"
)

// Event is the envelope published to the message broker whenever the
// knowledge base changes. Consumers (search indexers, audit sinks) key off
// Kind and SubjectID.
type Event struct {
	// Kind identifies the change, one of the Event* constants.
	Kind string `json:"kind"`

	// SubjectID identifies the changed entity: a mushroom UUID or a
	// user id rendered as a string.
	SubjectID string `json:"subject_id"`

	// Actor identifies the user that caused the change, when known.
	Actor string `json:"actor,omitempty"`

	// OccurredAt is when the change was committed.
	OccurredAt time.Time `json:"occurred_at"`
}
