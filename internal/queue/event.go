// Package queue defines message payloads exchanged over the message broker
// together with the RabbitMQ publisher and consumer that carry them.
package queue

// TicketsIssuedEvent is published after a booking commits.  It contains
// enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type TicketsIssuedEvent struct {
	EventID    uint64   `json:"event_id"`
	EventName  string   `json:"event_name"`
	EventDate  string   `json:"event_date"`
	UserID     string   `json:"user_id"`
	Tickets    []string `json:"tickets"`
	SeatLabels []string `json:"seats"`
	TotalCents int64    `json:"total_cents"`
	PaymentRef string   `json:"payment_ref,omitempty"`
	IssuedAt   string   `json:"issued_at"`
}
