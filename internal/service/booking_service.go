package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/queue"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

// Publisher delivers tickets-issued messages after a booking commits.
type Publisher interface {
	PublishTicketsIssued(ctx context.Context, ev queue.TicketsIssuedEvent) error
}

// BookingRequest is a buyer's seat selection for one event.
type BookingRequest struct {
	EventID    uint64
	UserID     string
	SeatIDs    []uint64
	PaymentRef string
}

// BookingResult describes a committed booking.
type BookingResult struct {
	Booked     int      `json:"booked"`
	TotalCents int64    `json:"total_cents"`
	Tickets    []string `json:"tickets"`
	Seats      []string `json:"seats"`
}

// Quote is the price of a selection before it is claimed.
type Quote struct {
	Count      int   `json:"count"`
	UnitCents  int64 `json:"unit_cents"`
	TotalCents int64 `json:"total_cents"`
}

// BookingService converts a seat selection into owned seats and tickets.
type BookingService struct {
	events    *repository.EventRepo
	seats     *repository.SeatRepo
	tickets   *repository.TicketRepo
	publisher Publisher
	log       *zap.Logger

	maxSeats int
	timeout  time.Duration
	newCode  func() string

	// in-flight tickets-issued publishes
	pending sync.WaitGroup
}

// BookingOptions bounds a single booking.
type BookingOptions struct {
	MaxSeatsPerBooking int
	Timeout            time.Duration
}

// NewBookingService wires a BookingService.  publisher may be nil, in which
// case no message is sent after commit.
func NewBookingService(events *repository.EventRepo, seats *repository.SeatRepo, tickets *repository.TicketRepo,
	publisher Publisher, log *zap.Logger, opts BookingOptions) *BookingService {
	if events == nil || seats == nil || tickets == nil {
		panic("nil repository passed to NewBookingService")
	}
	if log == nil {
		log = zap.NewNop()
	}
	if opts.MaxSeatsPerBooking < 1 {
		opts.MaxSeatsPerBooking = 10
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 5 * time.Second
	}
	return &BookingService{
		events:    events,
		seats:     seats,
		tickets:   tickets,
		publisher: publisher,
		log:       log,
		maxSeats:  opts.MaxSeatsPerBooking,
		timeout:   opts.Timeout,
		newCode:   uuid.NewString,
	}
}

// normalize validates req and returns the de-duplicated seat ids in request
// order.
func (s *BookingService) normalize(req BookingRequest) ([]uint64, error) {
	if req.EventID == 0 {
		return nil, validationf("invalid event id")
	}
	if strings.TrimSpace(req.UserID) == "" {
		return nil, validationf("userId is required")
	}
	if len(req.SeatIDs) == 0 {
		return nil, validationf("seatIds must not be empty")
	}
	seen := make(map[uint64]struct{}, len(req.SeatIDs))
	ids := make([]uint64, 0, len(req.SeatIDs))
	for _, id := range req.SeatIDs {
		if id == 0 {
			return nil, validationf("seat ids must be positive")
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) > s.maxSeats {
		return nil, validationf("at most %d seats per booking", s.maxSeats)
	}
	return ids, nil
}

// Quote prices a selection without claiming anything.  The seats must
// belong to the event; ownership is not checked since it may change before
// the claim.
func (s *BookingService) Quote(ctx context.Context, req BookingRequest) (*Quote, error) {
	ids, err := s.normalize(req)
	if err != nil {
		return nil, err
	}
	e, err := s.events.GetByID(ctx, req.EventID)
	if err != nil {
		return nil, translate(err)
	}
	n, err := s.seats.CountInEvent(ctx, req.EventID, ids)
	if err != nil {
		return nil, translate(err)
	}
	if n != len(ids) {
		return nil, translate(repository.ErrSeatNotFound)
	}
	return &Quote{Count: n, UnitCents: e.PriceCents, TotalCents: int64(n) * e.PriceCents}, nil
}

// BookSeats claims every requested seat for the buyer and issues one ticket
// per seat, or changes nothing.  A seat already owned by anyone yields
// ErrConflict; a seat outside the event yields ErrNotFound.  Store failures
// and deadline expiry yield ErrTransient and are safe to retry.
func (s *BookingService) BookSeats(ctx context.Context, req BookingRequest) (*BookingResult, error) {
	ids, err := s.normalize(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	tx, err := s.events.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, translate(err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	e, err := s.events.GetByIDTx(ctx, tx, req.EventID)
	if err != nil {
		return nil, translate(err)
	}

	n, err := s.seats.CountInEventTx(ctx, tx, req.EventID, ids)
	if err != nil {
		return nil, translate(err)
	}
	if n != len(ids) {
		return nil, translate(repository.ErrSeatNotFound)
	}

	affected, err := s.seats.ClaimTx(ctx, tx, req.EventID, req.UserID, ids)
	if err != nil {
		return nil, translate(err)
	}
	if affected != int64(len(ids)) {
		s.log.Info("seat claim conflict",
			zap.Uint64("event_id", req.EventID),
			zap.String("user_id", req.UserID),
			zap.Uint64s("seats", ids),
			zap.Int64("claimed", affected))
		return nil, fmt.Errorf("%w: one or more seats are already taken", ErrConflict)
	}

	claimed, err := s.seats.LabelsByIDsTx(ctx, tx, ids)
	if err != nil {
		return nil, translate(err)
	}

	var paymentRef *string
	if ref := strings.TrimSpace(req.PaymentRef); ref != "" {
		paymentRef = &ref
	}
	tickets := make([]model.Ticket, 0, len(claimed))
	res := &BookingResult{
		Tickets: make([]string, 0, len(claimed)),
		Seats:   make([]string, 0, len(claimed)),
	}
	for _, seat := range claimed {
		seatID := seat.ID
		code := s.newCode()
		tickets = append(tickets, model.Ticket{
			Code:       code,
			UserID:     req.UserID,
			EventID:    req.EventID,
			SeatID:     &seatID,
			PriceCents: e.PriceCents,
			PaymentRef: paymentRef,
		})
		res.Tickets = append(res.Tickets, code)
		res.Seats = append(res.Seats, seat.SeatNumber)
	}
	if err := s.tickets.CreateBulkTx(ctx, tx, tickets); err != nil {
		if isMySQLError(err, mysqlDuplicateEntry) {
			return nil, fmt.Errorf("%w: one or more seats are already taken", ErrConflict)
		}
		return nil, translate(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, translate(err)
	}
	committed = true

	res.Booked = len(tickets)
	res.TotalCents = int64(res.Booked) * e.PriceCents

	s.log.Info("seats booked",
		zap.Uint64("event_id", req.EventID),
		zap.String("user_id", req.UserID),
		zap.Strings("seats", res.Seats),
		zap.Int64("total_cents", res.TotalCents))

	if s.publisher != nil {
		ev := issuedEvent(e, req, res)
		s.pending.Add(1)
		go func() {
			defer s.pending.Done()
			s.publish(context.WithoutCancel(ctx), ev)
		}()
	}
	return res, nil
}

// Wait blocks until every tickets-issued publish started by BookSeats has
// finished.  The server calls it during shutdown.
func (s *BookingService) Wait() {
	s.pending.Wait()
}

// publish sends the tickets-issued message.  It runs after the response
// has been decided; the booking is already committed, so failures are only
// logged.
func (s *BookingService) publish(ctx context.Context, ev queue.TicketsIssuedEvent) {
	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := s.publisher.PublishTicketsIssued(pubCtx, ev); err != nil {
		s.log.Warn("publish tickets.issued failed", zap.Uint64("event_id", ev.EventID), zap.Error(err))
	}
}

func issuedEvent(e *model.Event, req BookingRequest, res *BookingResult) queue.TicketsIssuedEvent {
	return queue.TicketsIssuedEvent{
		EventID:    e.ID,
		EventName:  e.Name,
		EventDate:  e.EventDate,
		UserID:     req.UserID,
		Tickets:    res.Tickets,
		SeatLabels: res.Seats,
		TotalCents: res.TotalCents,
		PaymentRef: strings.TrimSpace(req.PaymentRef),
		IssuedAt:   time.Now().UTC().Format(time.RFC3339),
	}
}
