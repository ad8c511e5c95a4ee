package model

import "time"

// GeneralAdmission is the seat label shown for tickets without a seat.
const GeneralAdmission = "General"

// Ticket is the persisted proof of one claimed seat.  Tickets are never
// updated; they disappear only when their event is deleted.
type Ticket struct {
	ID         uint64    // tickets.id
	Code       string    // tickets.code, public identifier
	UserID     string    // tickets.user_id
	EventID    uint64    // tickets.event_id
	SeatID     *uint64   // tickets.seat_id, nil for general admission
	PriceCents int64     // tickets.price_cents
	PaymentRef *string   // tickets.payment_ref
	CreatedAt  time.Time // tickets.created_at
}

// TicketView is a ticket joined with its event and seat, as presented to the
// buyer on the tickets screen.
type TicketView struct {
	TicketID   uint64    `json:"ticket_id"`
	Code       string    `json:"code"`
	EventID    uint64    `json:"event_id"`
	EventName  string    `json:"event_name"`
	EventDate  string    `json:"event_date"`
	EventTime  string    `json:"event_time"`
	Image      string    `json:"image"`
	Location   string    `json:"location"`
	Category   string    `json:"category"`
	Seat       string    `json:"seat"`
	PriceCents int64     `json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`
}
