package model

import "time"

// Event is a dated happening with a fixed seat map.  TotalSeats is set once
// at creation; zero means general admission with no assigned seats.
//
// Fields:
//  ID         – primary key identifier.
//  Name       – display name.
//  Location   – free-form venue text.
//  Link       – external link (tickets page, stream).
//  BannerURL  – opaque image URL produced by the upload service.
//  EventDate  – calendar date, "YYYY-MM-DD".
//  EventTime  – local start time, "HH:MM".
//  CreatedBy  – user id of the organizer who created the event.
//  Category   – free-form category tag.
//  PriceCents – price of one seat in minor currency units.
//  TotalSeats – number of seats generated for the event.
//  Lat, Lon   – optional coordinates for map previews.
//  CreatedAt  – creation timestamp.
type Event struct {
	ID         uint64    `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location"`
	Link       string    `json:"link"`
	BannerURL  string    `json:"banner_url"`
	EventDate  string    `json:"event_date"`
	EventTime  string    `json:"event_time"`
	CreatedBy  string    `json:"created_by"`
	Category   string    `json:"category"`
	PriceCents int64     `json:"price_cents"`
	TotalSeats int       `json:"total_seats"`
	Lat        *float64  `json:"lat,omitempty"`
	Lon        *float64  `json:"lon,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
