package model

import "time"

// Seat is one position in an event's seat map.  Seats are uniquely
// identified by their event and label.  UserID is nil while the seat is
// free and holds the buyer once claimed.
type Seat struct {
	ID         uint64    `json:"id"`          // seats.id
	EventID    uint64    `json:"-"`           // seats.event_id
	RowLabel   string    `json:"-"`           // seats.row_label
	SeatCol    int       `json:"-"`           // seats.seat_col
	SeatNumber string    `json:"seat_number"` // seats.seat_number, e.g. "B3"
	UserID     *string   `json:"user_id"`     // seats.user_id
	UpdatedAt  time.Time `json:"-"`           // seats.updated_at
}

// Free reports whether nobody owns the seat.
func (s Seat) Free() bool { return s.UserID == nil }
