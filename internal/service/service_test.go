package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

var eventCols = []string{
	"id", "name", "location", "link", "banner_url", "event_date", "event_time",
	"created_by", "category", "price_cents", "total_seats", "lat", "lon", "created_at",
}

func eventRow(id uint64, price int64, total int) *sqlmock.Rows {
	return sqlmock.NewRows(eventCols).AddRow(
		id, "Jazz night", "Hall 1", "", "", "2026-10-01", "20:00",
		"org-1", "music", price, total, nil, nil, time.Now(),
	)
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

type fakePublisher struct {
	mu      sync.Mutex
	events  []queue.TicketsIssuedEvent
	err     error
	release chan struct{} // when set, publishes block until it is closed
}

func (p *fakePublisher) PublishTicketsIssued(ctx context.Context, ev queue.TicketsIssuedEvent) error {
	if p.release != nil {
		select {
		case <-p.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *fakePublisher) published() []queue.TicketsIssuedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]queue.TicketsIssuedEvent(nil), p.events...)
}

func newBookingService(db *sql.DB, pub Publisher) *BookingService {
	svc := NewBookingService(
		repository.NewEventRepo(db), repository.NewSeatRepo(db), repository.NewTicketRepo(db),
		pub, nil, BookingOptions{MaxSeatsPerBooking: 4, Timeout: time.Second},
	)
	n := 0
	svc.newCode = func() string {
		n++
		return "code-" + string(rune('0'+n))
	}
	return svc
}

var errStore = errors.New("connection reset")
