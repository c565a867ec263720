// Package queue defines message payloads exchanged over the message broker.
package queue

// Catalog mutation actions carried in CatalogChangedEvent.Action.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// CatalogChangedEvent is published after a movie is created, updated or
// deleted. It carries enough information for downstream consumers to log,
// invalidate caches or trigger re-syncs without querying the database.
type CatalogChangedEvent struct {
	Action     string `json:"action"`   // created | updated | deleted
	MovieID    string `json:"movie_id"` // catalog identifier of the movie
	Title      string `json:"title"`    // title at the time of the change
	ActorID    uint64 `json:"actor_id"` // admin who performed the mutation
	OccurredAt string `json:"occurred_at"`
}
