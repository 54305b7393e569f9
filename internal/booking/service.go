package booking

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/SteveHoareau18/timetravelagency/internal/catalog"
	"github.com/SteveHoareau18/timetravelagency/internal/keylock"
	"github.com/SteveHoareau18/timetravelagency/internal/observability/metrics"
	"github.com/SteveHoareau18/timetravelagency/pkg/logging"
)

const defaultConfirmationDisplayDelay = 4 * time.Second

var (
	// ErrAlreadyConfirmed is returned for edits made while a confirmation is on display.
	ErrAlreadyConfirmed = errors.New("booking: session already confirmed")
	ErrInvalidEmail     = errors.New("booking: invalid contact email")
	// ErrNoDestination is returned for sessions whose confirmation was reset;
	// a new booking needs a new session.
	ErrNoDestination = errors.New("booking: session has no destination selected")
)

// Confirmer receives confirmed bookings (email, event bus).
type Confirmer interface {
	NotifyBookingConfirmed(ctx context.Context, event ConfirmationEvent) error
}

// ServiceConfig tunes the session service.
type ServiceConfig struct {
	ConfirmationDisplayDelay time.Duration
	Metrics                  *metrics.BookingMetrics
	Logger                   *logging.Logger
	Now                      func() time.Time
}

// Service hosts booking wizards on top of a SessionStore.
type Service struct {
	store      SessionStore
	confirmer  Confirmer
	metrics    *metrics.BookingMetrics
	logger     *logging.Logger
	now        func() time.Time
	resetDelay time.Duration

	sessions *keylock.Map

	mu     sync.Mutex // guards timers
	timers map[string]*time.Timer
}

func NewService(store SessionStore, confirmer Confirmer, cfg ServiceConfig) *Service {
	if store == nil {
		panic("booking: session store cannot be nil")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.ConfirmationDisplayDelay <= 0 {
		cfg.ConfirmationDisplayDelay = defaultConfirmationDisplayDelay
	}
	return &Service{
		store:      store,
		confirmer:  confirmer,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
		now:        cfg.Now,
		resetDelay: cfg.ConfirmationDisplayDelay,
		sessions:   keylock.New(),
		timers:     make(map[string]*time.Timer),
	}
}

// Start opens a wizard for destinationID with default inputs.
func (s *Service) Start(ctx context.Context, destinationID string) (*Session, error) {
	dest, err := catalog.Lookup(destinationID)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	session := &Session{
		ID:            uuid.NewString(),
		DestinationID: dest.ID,
		State:         NewState(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	s.metrics.ObserveSessionStarted(dest.ID)
	s.logger.Debug("booking session started", "session_id", session.ID, "destination_id", dest.ID)
	return session, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Session, error) {
	return s.store.Get(ctx, id)
}

// Changes are partial edits from the form controls. Nil fields are left as is.
type Changes struct {
	Travelers     *int
	DepartureDate *time.Time
	Tier          *string
	GuideIncluded *bool
	Contact       *Contact
}

// Update applies validated changes. Nothing is saved if any field is invalid.
func (s *Service) Update(ctx context.Context, id string, changes Changes) (*Session, error) {
	return s.mutate(ctx, id, func(session *Session) error {
		next := session.State
		if changes.Travelers != nil {
			if err := ValidateTravelers(*changes.Travelers); err != nil {
				return err
			}
			next.Travelers = *changes.Travelers
		}
		if changes.DepartureDate != nil {
			if err := ValidateDepartureDate(*changes.DepartureDate, s.now()); err != nil {
				return err
			}
			d := *changes.DepartureDate
			next.DepartureDate = &d
		}
		if changes.Tier != nil {
			tier, err := ParseTier(*changes.Tier)
			if err != nil {
				return err
			}
			next.Tier = tier
		}
		if changes.GuideIncluded != nil {
			next.GuideIncluded = *changes.GuideIncluded
		}
		if changes.Contact != nil {
			contact := Contact{
				Name:  strings.TrimSpace(changes.Contact.Name),
				Email: strings.TrimSpace(changes.Contact.Email),
			}
			if contact.Email != "" {
				if _, err := mail.ParseAddress(contact.Email); err != nil {
					return ErrInvalidEmail
				}
			}
			session.Contact = contact
		}
		session.State = next
		return nil
	})
}

func (s *Service) ToggleExtra(ctx context.Context, id, extraID string) (*Session, error) {
	if _, err := catalog.LookupExtra(extraID); err != nil {
		return nil, err
	}
	return s.mutate(ctx, id, func(session *Session) error {
		session.State = ToggleExtra(session.State, extraID)
		return nil
	})
}

func (s *Service) Advance(ctx context.Context, id string) (*Session, error) {
	return s.mutate(ctx, id, func(session *Session) error {
		session.State = Advance(session.State)
		return nil
	})
}

func (s *Service) Retreat(ctx context.Context, id string) (*Session, error) {
	return s.mutate(ctx, id, func(session *Session) error {
		session.State = Retreat(session.State)
		return nil
	})
}

// Quote is the live price shown beside the form.
type Quote struct {
	Amount          int64  `json:"amount"`
	Display         int64  `json:"display"`
	Formatted       string `json:"formatted"`
	Base            int64  `json:"base"`
	TierAdjustment  int64  `json:"tier_adjustment"`
	GuideAdjustment int64  `json:"guide_adjustment"`
	ExtrasTotal     int64  `json:"extras_total"`
	PresentAbsence  int    `json:"present_absence_hours,omitempty"`
}

func (s *Service) Quote(ctx context.Context, id string) (Quote, error) {
	session, err := s.store.Get(ctx, id)
	if err != nil {
		return Quote{}, err
	}
	return QuoteFor(destinationOf(session), session.State), nil
}

// QuoteFor breaks ComputePrice down into its terms.
func QuoteFor(dest *catalog.Destination, st State) Quote {
	amount := ComputePrice(dest, st)
	q := Quote{
		Amount:      amount,
		Display:     DisplayPrice(amount),
		Formatted:   catalog.FormatEUR(DisplayPrice(amount)),
		ExtrasTotal: ExtraSurcharge * int64(len(st.Extras)),
	}
	if dest == nil {
		q.ExtrasTotal = 0
		return q
	}
	travelers := int64(st.Travelers)
	q.Base = dest.BasePrice() * travelers
	switch st.Tier {
	case TierStandard:
		q.TierAdjustment = -StandardDiscountPerTraveler * travelers
	case TierUltimate:
		q.TierAdjustment = UltimateSurchargePerTraveler * travelers
	}
	if !st.GuideIncluded {
		q.GuideAdjustment = -GuideFee
	}
	q.PresentAbsence = dest.PresentAbsence()
	return q
}

// Submit confirms the session, notifies the confirmer and schedules the
// reset that follows the confirmation display.
func (s *Service) Submit(ctx context.Context, id string) (ConfirmationEvent, error) {
	var event ConfirmationEvent
	_, err := s.mutate(ctx, id, func(session *Session) error {
		ev, err := Submit(session.State, destinationOf(session))
		if err != nil {
			return err
		}
		ev.SessionID = session.ID
		ev.Contact = session.Contact
		ev.ConfirmedAt = s.now().UTC()
		confirmedAt := ev.ConfirmedAt
		session.State = ev.State
		session.ConfirmedAt = &confirmedAt
		event = ev
		return nil
	})
	if err != nil {
		var rejected *RejectedSubmission
		if errors.As(err, &rejected) {
			s.metrics.ObserveSubmission(false, 0)
			s.logger.Info("booking submission rejected", "session_id", id, "step", rejected.Step, "reason", rejected.Reason.Error())
		}
		return ConfirmationEvent{}, err
	}

	s.metrics.ObserveSubmission(true, event.Price)
	s.logger.Info("booking confirmed",
		"session_id", id,
		"destination_id", event.DestinationID,
		"travelers", event.State.Travelers,
		"tier", string(event.State.Tier),
		"price", event.Price,
	)

	if s.confirmer != nil {
		if err := s.confirmer.NotifyBookingConfirmed(ctx, event); err != nil {
			s.metrics.ObserveConfirmerFailure()
			s.logger.Error("booking confirmation notification failed", "session_id", id, "error", err)
		}
	}

	s.scheduleReset(id)
	return event, nil
}

// Close discards the session and any pending reset.
func (s *Service) Close(ctx context.Context, id string) error {
	s.mu.Lock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
	s.mu.Unlock()

	unlock := s.sessions.Lock(id)
	defer unlock()
	return s.store.Delete(ctx, id)
}

// Stop cancels every pending reset.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *Service) scheduleReset(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[id]; ok {
		t.Stop()
	}
	s.timers[id] = time.AfterFunc(s.resetDelay, func() {
		s.mu.Lock()
		delete(s.timers, id)
		s.mu.Unlock()
		s.resetAfterConfirmation(id)
	})
}

func (s *Service) resetAfterConfirmation(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.mutateAny(ctx, id, func(session *Session) error {
		if session.ConfirmedAt == nil {
			return nil
		}
		session.State = Reset()
		session.DestinationID = ""
		session.ConfirmedAt = nil
		return nil
	})
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		s.logger.Warn("booking reset failed", "session_id", id, "error", err)
		return
	}
	s.logger.Debug("booking session reset", "session_id", id)
}

// mutate refuses edits to confirmed sessions and to sessions reset after a
// confirmation.
func (s *Service) mutate(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	return s.mutateAny(ctx, id, func(session *Session) error {
		if session.State.Confirmed {
			return ErrAlreadyConfirmed
		}
		if session.DestinationID == "" {
			return ErrNoDestination
		}
		return fn(session)
	})
}

func (s *Service) mutateAny(ctx context.Context, id string, fn func(*Session) error) (*Session, error) {
	unlock := s.sessions.Lock(id)
	defer unlock()

	session, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(session); err != nil {
		return nil, err
	}
	session.UpdatedAt = s.now().UTC()
	if err := s.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("booking: save session %s: %w", id, err)
	}
	return session, nil
}

// location is the zone of the service clock, used to read calendar dates.
func (s *Service) location() *time.Location {
	return s.now().Location()
}

func destinationOf(session *Session) *catalog.Destination {
	if session == nil || session.DestinationID == "" {
		return nil
	}
	dest, err := catalog.Lookup(session.DestinationID)
	if err != nil {
		return nil
	}
	return dest
}
