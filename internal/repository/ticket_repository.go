package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// TicketRepo persists issued tickets and serves the buyer's ticket list.
type TicketRepo struct {
	db *sql.DB
}

// NewTicketRepo returns a new TicketRepo bound to the given database.
func NewTicketRepo(db *sql.DB) *TicketRepo { return &TicketRepo{db: db} }

// CreateBulkTx inserts tickets in one statement inside tx.  The
// UNIQUE(seat_id) constraint rejects a second ticket for the same seat.
func (r *TicketRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, tickets []model.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString(`INSERT INTO tickets (code, user_id, event_id, seat_id, price_cents, payment_ref) VALUES `)
	args := make([]any, 0, len(tickets)*6)
	for i, t := range tickets {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?, ?, ?, ?, ?)")
		args = append(args, t.Code, t.UserID, t.EventID, t.SeatID, t.PriceCents, t.PaymentRef)
	}
	_, err := tx.ExecContext(ctx, b.String(), args...)
	return err
}

// ListByUser returns the buyer's tickets joined with event and seat data,
// soonest event first.  Tickets without a seat carry the label "General".
func (r *TicketRepo) ListByUser(ctx context.Context, userID string) ([]model.TicketView, error) {
	const q = `SELECT t.id, t.code, e.id, e.name, DATE_FORMAT(e.event_date, '%Y-%m-%d'), e.event_time,
	                  e.banner_url, e.location, e.category, s.seat_number, t.price_cents, t.created_at
	           FROM tickets t
	           JOIN events e ON e.id = t.event_id
	           LEFT JOIN seats s ON s.id = t.seat_id
	           WHERE t.user_id = ?
	           ORDER BY e.event_date ASC, t.id ASC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.TicketView, 0)
	for rows.Next() {
		var (
			v    model.TicketView
			seat sql.NullString
		)
		if err := rows.Scan(
			&v.TicketID, &v.Code, &v.EventID, &v.EventName, &v.EventDate, &v.EventTime,
			&v.Image, &v.Location, &v.Category, &seat, &v.PriceCents, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		v.Seat = model.GeneralAdmission
		if seat.Valid {
			v.Seat = seat.String
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
