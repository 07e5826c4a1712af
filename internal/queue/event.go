// Package queue carries layout lifecycle events over RabbitMQ: a publisher
// used by the layout service and an audit consumer that appends one line
// per event to a log file.
package queue

// Layout lifecycle actions.
const (
	ActionCreated    = "created"
	ActionUpdated    = "updated"
	ActionDuplicated = "duplicated"
	ActionDeleted    = "deleted"
)

// LayoutEvent is published after a layout write succeeds. It carries enough
// for downstream consumers to log or index without querying MySQL.
type LayoutEvent struct {
	Action     string `json:"action"`
	LayoutID   uint64 `json:"layout_id"`
	OwnerID    uint64 `json:"owner_id"`
	Name       string `json:"name"`
	ItemCount  int    `json:"item_count"`
	SeatCount  int    `json:"seat_count"`
	SourceID   uint64 `json:"source_id,omitempty"` // set for duplicated
	OccurredAt string `json:"occurred_at"`         // RFC3339, UTC
}
