package repository // repository defines data access for seats

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// SeatRepo provides methods to work with an event's seat inventory.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo constructs a SeatRepo with the given DB handle.
func NewSeatRepo(db *sql.DB) *SeatRepo {
	return &SeatRepo{db: db}
}

// seatOrder sorts "B" before "AA" and "A2" before "A10".
const seatOrder = `ORDER BY CHAR_LENGTH(row_label), row_label, seat_col`

// placeholders returns "?,?,?" for n values.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?,", n-1) + "?"
}

func seatIDArgs(ids []uint64) []any {
	args := make([]any, 0, len(ids))
	for _, id := range ids {
		args = append(args, id)
	}
	return args
}

// CreateBulkTx inserts seats in a single statement inside tx.  IDs of the
// passed seats are not populated.
func (r *SeatRepo) CreateBulkTx(ctx context.Context, tx *sql.Tx, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString(`INSERT INTO seats (event_id, row_label, seat_col, seat_number) VALUES `)
	args := make([]any, 0, len(seats)*4)
	for i, s := range seats {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("(?, ?, ?, ?)")
		args = append(args, s.EventID, s.RowLabel, s.SeatCol, s.SeatNumber)
	}
	_, err := tx.ExecContext(ctx, b.String(), args...)
	return err
}

// ListByEvent returns every seat of an event in label order.
func (r *SeatRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.Seat, error) {
	q := `SELECT id, event_id, row_label, seat_col, seat_number, user_id, updated_at
	      FROM seats WHERE event_id = ? ` + seatOrder
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]model.Seat, 0)
	for rows.Next() {
		var (
			s     model.Seat
			owner sql.NullString
		)
		if err := rows.Scan(&s.ID, &s.EventID, &s.RowLabel, &s.SeatCol, &s.SeatNumber, &owner, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if owner.Valid {
			s.UserID = &owner.String
		}
		seats = append(seats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return seats, nil
}

// CountInEvent reports how many of ids belong to eventID.
func (r *SeatRepo) CountInEvent(ctx context.Context, eventID uint64, ids []uint64) (int, error) {
	return countInEvent(ctx, r.db, eventID, ids)
}

// CountInEventTx is CountInEvent inside a transaction.
func (r *SeatRepo) CountInEventTx(ctx context.Context, tx *sql.Tx, eventID uint64, ids []uint64) (int, error) {
	return countInEvent(ctx, tx, eventID, ids)
}

func countInEvent(ctx context.Context, q rowQuerier, eventID uint64, ids []uint64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `SELECT COUNT(*) FROM seats WHERE event_id = ? AND id IN (` + placeholders(len(ids)) + `)`
	args := append([]any{eventID}, seatIDArgs(ids)...)
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ClaimTx assigns every free seat among ids to userID with one conditional
// UPDATE and returns the number of rows changed.  A result smaller than
// len(ids) means at least one seat was already owned; the caller must then
// roll back tx so the claim stays all-or-nothing.
func (r *SeatRepo) ClaimTx(ctx context.Context, tx *sql.Tx, eventID uint64, userID string, ids []uint64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	query := `UPDATE seats SET user_id = ? WHERE event_id = ? AND user_id IS NULL AND id IN (` + placeholders(len(ids)) + `)`
	args := append([]any{userID, eventID}, seatIDArgs(ids)...)
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// LabelsByIDsTx returns id and label of the given seats in label order.
func (r *SeatRepo) LabelsByIDsTx(ctx context.Context, tx *sql.Tx, ids []uint64) ([]model.Seat, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT id, event_id, row_label, seat_col, seat_number FROM seats WHERE id IN (` +
		placeholders(len(ids)) + `) ` + seatOrder
	rows, err := tx.QueryContext(ctx, query, seatIDArgs(ids)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seats []model.Seat
	for rows.Next() {
		var s model.Seat
		if err := rows.Scan(&s.ID, &s.EventID, &s.RowLabel, &s.SeatCol, &s.SeatNumber); err != nil {
			return nil, err
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}
