package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/event-ticketing/internal/model"
	"github.com/iliyamo/event-ticketing/internal/repository"
)

// CreateEventInput carries the organizer-supplied fields of a new event.
type CreateEventInput struct {
	Name       string
	Location   string
	Link       string
	BannerURL  string
	EventDate  string // YYYY-MM-DD
	EventTime  string // HH:MM, optional
	Category   string
	PriceCents int64
	TotalSeats int
	Lat, Lon   *float64
	CreatedBy  string
}

// EventDetail is an event together with its seat map.
type EventDetail struct {
	model.Event
	Seats []model.Seat `json:"seats"`
}

// EventService creates, reads and deletes events.
type EventService struct {
	events   *repository.EventRepo
	seats    *repository.SeatRepo
	log      *zap.Logger
	maxSeats int
}

// NewEventService wires an EventService.  maxSeats caps total_seats on
// creation; zero disables the cap.
func NewEventService(events *repository.EventRepo, seats *repository.SeatRepo, log *zap.Logger, maxSeats int) *EventService {
	if events == nil || seats == nil {
		panic("nil repository passed to NewEventService")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &EventService{events: events, seats: seats, log: log, maxSeats: maxSeats}
}

func (s *EventService) validate(in *CreateEventInput) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return validationf("name is required")
	}
	if strings.TrimSpace(in.CreatedBy) == "" {
		return validationf("creator is required")
	}
	if _, err := time.Parse("2006-01-02", in.EventDate); err != nil {
		return validationf("event_date must be YYYY-MM-DD")
	}
	if in.EventTime != "" {
		if _, err := time.Parse("15:04", in.EventTime); err != nil {
			return validationf("event_time must be HH:MM")
		}
	}
	if in.PriceCents < 0 {
		return validationf("price_cents must be >= 0")
	}
	if in.TotalSeats < 0 {
		return validationf("total_seats must be >= 0")
	}
	if s.maxSeats > 0 && in.TotalSeats > s.maxSeats {
		return validationf("total_seats must be <= %d", s.maxSeats)
	}
	return nil
}

// CreateEvent inserts the event and its generated seat map in one
// transaction.  Either both exist afterwards or neither does.
func (s *EventService) CreateEvent(ctx context.Context, in CreateEventInput) (*model.Event, error) {
	if err := s.validate(&in); err != nil {
		return nil, err
	}

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

	e := &model.Event{
		Name:       in.Name,
		Location:   in.Location,
		Link:       in.Link,
		BannerURL:  in.BannerURL,
		EventDate:  in.EventDate,
		EventTime:  in.EventTime,
		CreatedBy:  in.CreatedBy,
		Category:   in.Category,
		PriceCents: in.PriceCents,
		TotalSeats: in.TotalSeats,
		Lat:        in.Lat,
		Lon:        in.Lon,
	}
	if err := s.events.CreateTx(ctx, tx, e); err != nil {
		return nil, translate(err)
	}
	if err := s.seats.CreateBulkTx(ctx, tx, GenerateSeatMap(e.ID, e.TotalSeats)); err != nil {
		s.log.Warn("seat map insert failed", zap.Uint64("event_id", e.ID), zap.Error(err))
		return nil, translate(err)
	}
	if err := tx.Commit(); err != nil {
		return nil, translate(err)
	}
	committed = true

	s.log.Info("event created",
		zap.Uint64("event_id", e.ID),
		zap.String("created_by", e.CreatedBy),
		zap.Int("total_seats", e.TotalSeats))
	return e, nil
}

// GetEvent returns the event with its seats in label order.
func (s *EventService) GetEvent(ctx context.Context, id uint64) (*EventDetail, error) {
	if id == 0 {
		return nil, validationf("invalid event id")
	}
	e, err := s.events.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	seats, err := s.seats.ListByEvent(ctx, id)
	if err != nil {
		return nil, translate(err)
	}
	return &EventDetail{Event: *e, Seats: seats}, nil
}

// ListEvents returns a page of events, newest first.
func (s *EventService) ListEvents(ctx context.Context, limit, offset int) ([]model.Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	events, err := s.events.List(ctx, limit, offset)
	if err != nil {
		return nil, translate(err)
	}
	return events, nil
}

// DeleteEvent removes an event created by userID along with its seats and
// tickets.
func (s *EventService) DeleteEvent(ctx context.Context, id uint64, userID string) error {
	if id == 0 {
		return validationf("invalid event id")
	}
	if err := s.events.DeleteByIDAndCreator(ctx, id, userID); err != nil {
		return translate(err)
	}
	s.log.Info("event deleted", zap.Uint64("event_id", id), zap.String("user_id", userID))
	return nil
}
