// Package repository contains data access logic for events, seats and
// tickets.  Every method takes a context so request deadlines reach the
// driver; the Tx variants participate in a caller-owned transaction.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/event-ticketing/internal/model"
)

// EventRepo manages persistence for events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the given DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

// DB exposes the underlying sql.DB so callers can begin transactions that
// span the event, seat and ticket repositories.
func (r *EventRepo) DB() *sql.DB {
	return r.db
}

// rowQuerier is satisfied by both *sql.DB and *sql.Tx.
type rowQuerier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const eventColumns = `id, name, location, link, banner_url, DATE_FORMAT(event_date, '%Y-%m-%d'), event_time,
	created_by, category, price_cents, total_seats, lat, lon, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*model.Event, error) {
	var (
		e        model.Event
		lat, lon sql.NullFloat64
	)
	if err := s.Scan(
		&e.ID, &e.Name, &e.Location, &e.Link, &e.BannerURL, &e.EventDate, &e.EventTime,
		&e.CreatedBy, &e.Category, &e.PriceCents, &e.TotalSeats, &lat, &lon, &e.CreatedAt,
	); err != nil {
		return nil, err
	}
	if lat.Valid {
		e.Lat = &lat.Float64
	}
	if lon.Valid {
		e.Lon = &lon.Float64
	}
	return &e, nil
}

// CreateTx inserts a new event using the provided transaction.  The caller
// must commit or roll back.  On success the generated ID and created_at are
// populated on e.
func (r *EventRepo) CreateTx(ctx context.Context, tx *sql.Tx, e *model.Event) error {
	const q = `INSERT INTO events
	           (name, location, link, banner_url, event_date, event_time, created_by, category, price_cents, total_seats, lat, lon)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		e.Name, e.Location, e.Link, e.BannerURL, e.EventDate, e.EventTime,
		e.CreatedBy, e.Category, e.PriceCents, e.TotalSeats, e.Lat, e.Lon,
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)
	return tx.QueryRowContext(ctx, `SELECT created_at FROM events WHERE id = ?`, e.ID).Scan(&e.CreatedAt)
}

// GetByID returns the event with the given id or ErrEventNotFound.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	return r.get(ctx, r.db, id)
}

// GetByIDTx is GetByID inside a transaction.
func (r *EventRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Event, error) {
	return r.get(ctx, tx, id)
}

func (r *EventRepo) get(ctx context.Context, q rowQuerier, id uint64) (*model.Event, error) {
	e, err := scanEvent(q.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return e, nil
}

// List returns up to limit events, newest first.
func (r *EventRepo) List(ctx context.Context, limit, offset int) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY id DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}

// DeleteByIDAndCreator removes an event provided it was created by userID.
// Seats and tickets go with it through ON DELETE CASCADE.  ErrEventNotFound
// is returned for a missing event and ErrForbidden when another user created
// it.
func (r *EventRepo) DeleteByIDAndCreator(ctx context.Context, id uint64, userID string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	var createdBy string
	if err = tx.QueryRowContext(ctx, `SELECT created_by FROM events WHERE id = ? FOR UPDATE`, id).Scan(&createdBy); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}
	if createdBy != userID {
		return ErrForbidden
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return err
}
