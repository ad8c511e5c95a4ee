package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-ticketing/internal/model"
)

func TestTicketRepoCreateBulkTx(t *testing.T) {
	db, mock := newMock(t)
	seat := uint64(10)
	ref := "pi_123"

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO tickets (code, user_id, event_id, seat_id, price_cents, payment_ref) VALUES (?, ?, ?, ?, ?, ?)")).
		WithArgs("code-1", "u-1", 3, 10, 1500, "pi_123").
		WillReturnResult(sqlmock.NewResult(1, 1))

	tx, err := db.Begin()
	require.NoError(t, err)
	err = NewTicketRepo(db).CreateBulkTx(context.Background(), tx, []model.Ticket{
		{Code: "code-1", UserID: "u-1", EventID: 3, SeatID: &seat, PriceCents: 1500, PaymentRef: &ref},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTicketRepoListByUser(t *testing.T) {
	db, mock := newMock(t)
	cols := []string{"id", "code", "eid", "name", "date", "time", "banner", "location", "category", "seat", "price", "created_at"}
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY e.event_date ASC, t.id ASC")).WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, "c1", 3, "Jazz", "2026-10-01", "20:00", "b.png", "Hall", "music", "A1", 1500, now).
			AddRow(2, "c2", 4, "Talk", "2026-10-05", "", "", "", "", nil, 0, now))

	views, err := NewTicketRepo(db).ListByUser(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "A1", views[0].Seat)
	assert.Equal(t, model.GeneralAdmission, views[1].Seat)
	assert.Equal(t, "b.png", views[0].Image)
}

func TestTicketRepoListByUserEmpty(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("FROM tickets t").WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	views, err := NewTicketRepo(db).ListByUser(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.NotNil(t, views)
}
