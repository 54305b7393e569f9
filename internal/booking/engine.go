// Package booking models the three-step reservation wizard: pricing, step
// transitions, submission and the session layer that hosts it.
package booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SteveHoareau18/timetravelagency/internal/catalog"
)

// Tier is the protection level sold with a trip.
type Tier string

const (
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
	TierUltimate Tier = "ultimate"
)

// Pricing constants. Base catalog prices already include the premium tier and
// the guide, so adjustments are relative to that baseline.
const (
	StandardDiscountPerTraveler  int64 = 500
	UltimateSurchargePerTraveler int64 = 500
	GuideFee                     int64 = 800
	ExtraSurcharge               int64 = 400
)

// Wizard bounds.
const (
	MinStep      = 1
	MaxStep      = 3
	MinTravelers = 1
	MaxTravelers = 4
)

var (
	ErrNotFinalStep         = errors.New("booking: submission is only allowed on the final step")
	ErrMissingDepartureDate = errors.New("booking: departure date is required")
	ErrTravelersOutOfRange  = fmt.Errorf("booking: travelers must be between %d and %d", MinTravelers, MaxTravelers)
	ErrDepartureInPast      = errors.New("booking: departure date is before today")
	ErrUnknownTier          = errors.New("booking: unknown protection tier")
)

// RejectedSubmission is returned when Submit refuses the current state.
type RejectedSubmission struct {
	Step   int
	Reason error
}

func (r *RejectedSubmission) Error() string {
	return fmt.Sprintf("submission rejected at step %d: %v", r.Step, r.Reason)
}

func (r *RejectedSubmission) Unwrap() error { return r.Reason }

// State is one wizard's inputs. Values are treated as immutable: every
// transition returns a new State.
type State struct {
	Step          int        `json:"step"`
	Travelers     int        `json:"travelers"`
	DepartureDate *time.Time `json:"departure_date,omitempty"`
	Tier          Tier       `json:"tier"`
	GuideIncluded bool       `json:"guide_included"`
	Extras        []string   `json:"extras"`
	Confirmed     bool       `json:"confirmed"`
}

// NewState returns the defaults a wizard opens with.
func NewState() State {
	return State{
		Step:          MinStep,
		Travelers:     MinTravelers,
		Tier:          TierPremium,
		GuideIncluded: true,
		Extras:        []string{},
	}
}

// Reset is the state restored once a confirmation has been displayed.
func Reset() State {
	return NewState()
}

// HasExtra reports whether id is selected.
func (s State) HasExtra(id string) bool {
	for _, e := range s.Extras {
		if e == id {
			return true
		}
	}
	return false
}

// ComputePrice returns the raw signed quote for s. A nil destination or an
// unparseable catalog price yields a zero base.
func ComputePrice(dest *catalog.Destination, s State) int64 {
	if dest == nil {
		return 0
	}
	travelers := int64(s.Travelers)
	total := dest.BasePrice() * travelers

	switch s.Tier {
	case TierStandard:
		total -= StandardDiscountPerTraveler * travelers
	case TierUltimate:
		total += UltimateSurchargePerTraveler * travelers
	}

	if !s.GuideIncluded {
		total -= GuideFee
	}

	total += ExtraSurcharge * int64(len(s.Extras))
	return total
}

// DisplayPrice clamps a quote for presentation.
func DisplayPrice(amount int64) int64 {
	if amount < 0 {
		return 0
	}
	return amount
}

// Advance moves to the next step. No-op on the last step.
func Advance(s State) State {
	if s.Step < MaxStep {
		s.Step++
	}
	return s
}

// Retreat moves to the previous step. No-op on the first step.
func Retreat(s State) State {
	if s.Step > MinStep {
		s.Step--
	}
	return s
}

// ToggleExtra adds id when absent and removes it when present.
func ToggleExtra(s State, id string) State {
	next := make([]string, 0, len(s.Extras)+1)
	removed := false
	for _, e := range s.Extras {
		if e == id {
			removed = true
			continue
		}
		next = append(next, e)
	}
	if !removed {
		next = append(next, id)
	}
	s.Extras = next
	return s
}

// ConfirmationEvent is emitted by a successful submission.
type ConfirmationEvent struct {
	SessionID       string    `json:"session_id,omitempty"`
	Contact         Contact   `json:"contact"`
	DestinationID   string    `json:"destination_id"`
	DestinationName string    `json:"destination_name"`
	State           State     `json:"state"`
	Price           int64     `json:"price"`
	ConfirmedAt     time.Time `json:"confirmed_at"`
}

// Submit validates s and returns the confirmation snapshot. The caller's state
// is not modified; the snapshot carries Confirmed = true.
func Submit(s State, dest *catalog.Destination) (ConfirmationEvent, error) {
	if s.Step != MaxStep {
		return ConfirmationEvent{}, &RejectedSubmission{Step: s.Step, Reason: ErrNotFinalStep}
	}
	if s.DepartureDate == nil {
		return ConfirmationEvent{}, &RejectedSubmission{Step: s.Step, Reason: ErrMissingDepartureDate}
	}

	snapshot := s
	snapshot.Extras = append([]string{}, s.Extras...)
	date := *s.DepartureDate
	snapshot.DepartureDate = &date
	snapshot.Confirmed = true

	ev := ConfirmationEvent{
		State:       snapshot,
		Price:       ComputePrice(dest, snapshot),
		ConfirmedAt: time.Now().UTC(),
	}
	if dest != nil {
		ev.DestinationID = dest.ID
		ev.DestinationName = dest.Name
	}
	return ev, nil
}

// ValidateTravelers enforces the input control bounds.
func ValidateTravelers(n int) error {
	if n < MinTravelers || n > MaxTravelers {
		return ErrTravelersOutOfRange
	}
	return nil
}

// ValidateDepartureDate rejects dates before today's calendar day. Both
// values are read as calendar dates in their own location: a departure date
// is a day, not an instant.
func ValidateDepartureDate(d, today time.Time) error {
	if calendarDay(d).Before(calendarDay(today)) {
		return ErrDepartureInPast
	}
	return nil
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseTier accepts the tier names case-insensitively.
func ParseTier(raw string) (Tier, error) {
	switch Tier(strings.ToLower(strings.TrimSpace(raw))) {
	case TierStandard:
		return TierStandard, nil
	case TierPremium:
		return TierPremium, nil
	case TierUltimate:
		return TierUltimate, nil
	}
	return "", ErrUnknownTier
}
