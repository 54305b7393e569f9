package events

import "time"

// RoutingKeyBookingConfirmed is the topic a confirmed booking is published on.
const RoutingKeyBookingConfirmed = "booking.confirmed"

// BookingConfirmedV1 is emitted once per successful wizard submission.
type BookingConfirmedV1 struct {
	SessionID       string    `json:"session_id"`
	DestinationID   string    `json:"destination_id"`
	DestinationName string    `json:"destination_name"`
	DepartureDate   string    `json:"departure_date"`
	Travelers       int       `json:"travelers"`
	Tier            string    `json:"tier"`
	GuideIncluded   bool      `json:"guide_included"`
	Extras          []string  `json:"extras"`
	PriceEUR        int64     `json:"price_eur"`
	ContactName     string    `json:"contact_name,omitempty"`
	ContactEmail    string    `json:"contact_email,omitempty"`
	ConfirmedAt     time.Time `json:"confirmed_at"`
}

func (BookingConfirmedV1) EventType() string {
	return "booking.confirmed.v1"
}
