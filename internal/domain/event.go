package domain

import "time"

// Event is a published gathering with a fixed number of seats.
type Event struct {
	ID          string
	Title       string
	Description string
	StartsAt    time.Time
	Location    string
	Capacity    int
	Category    Category
	ImageURL    string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// AttendeeCount is derived from the roster on read paths; it is not
	// part of the stored record.
	AttendeeCount int
}
