package booking

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SteveHoareau18/timetravelagency/internal/catalog"
	"github.com/SteveHoareau18/timetravelagency/pkg/logging"
)

const dateLayout = "2006-01-02"

// Handler exposes the booking wizard over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

// Routes mounts the booking endpoints under the caller's prefix.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Start)
	r.Route("/{sessionID}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Patch("/", h.Update)
		r.Delete("/", h.Close)
		r.Post("/extras/{extraID}", h.ToggleExtra)
		r.Post("/advance", h.Advance)
		r.Post("/retreat", h.Retreat)
		r.Post("/submit", h.Submit)
	})
	return r
}

// StartRequest opens a wizard.
type StartRequest struct {
	DestinationID string `json:"destination_id"`
}

// UpdateRequest carries the form fields a client changed.
type UpdateRequest struct {
	Travelers     *int     `json:"travelers,omitempty"`
	DepartureDate *string  `json:"departure_date,omitempty"`
	Tier          *string  `json:"tier,omitempty"`
	GuideIncluded *bool    `json:"guide_included,omitempty"`
	Contact       *Contact `json:"contact,omitempty"`
}

// SessionResponse is a session with its live quote.
type SessionResponse struct {
	*Session
	Quote Quote `json:"quote"`
}

// ConfirmationResponse is returned by a successful submission.
type ConfirmationResponse struct {
	Event     ConfirmationEvent `json:"event"`
	Formatted string            `json:"formatted_price"`
	NextSteps []string          `json:"next_steps"`
}

// NextSteps are shown on the confirmation screen.
var NextSteps = []string{
	"Confirmation envoyée par email",
	"Kit de préparation dans 48h",
	"Briefing prévu 24h avant départ",
}

// Start handles POST /bookings
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	var req StartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	session, err := h.service.Start(r.Context(), req.DestinationID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, h.view(session))
}

// Get handles GET /bookings/{sessionID}
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(session))
}

// Update handles PATCH /bookings/{sessionID}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	changes := Changes{
		Travelers:     req.Travelers,
		Tier:          req.Tier,
		GuideIncluded: req.GuideIncluded,
		Contact:       req.Contact,
	}
	if req.DepartureDate != nil {
		d, err := time.ParseInLocation(dateLayout, *req.DepartureDate, h.service.location())
		if err != nil {
			jsonError(w, http.StatusBadRequest, "departure_date must be YYYY-MM-DD")
			return
		}
		changes.DepartureDate = &d
	}
	session, err := h.service.Update(r.Context(), chi.URLParam(r, "sessionID"), changes)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(session))
}

// ToggleExtra handles POST /bookings/{sessionID}/extras/{extraID}
func (h *Handler) ToggleExtra(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.ToggleExtra(r.Context(), chi.URLParam(r, "sessionID"), chi.URLParam(r, "extraID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(session))
}

// Advance handles POST /bookings/{sessionID}/advance
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Advance(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(session))
}

// Retreat handles POST /bookings/{sessionID}/retreat
func (h *Handler) Retreat(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Retreat(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.view(session))
}

// Submit handles POST /bookings/{sessionID}/submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	event, err := h.service.Submit(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ConfirmationResponse{
		Event:     event,
		Formatted: catalog.FormatEUR(DisplayPrice(event.Price)),
		NextSteps: NextSteps,
	})
}

// Close handles DELETE /bookings/{sessionID}
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Close(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) view(session *Session) SessionResponse {
	return SessionResponse{Session: session, Quote: QuoteFor(destinationOf(session), session.State)}
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var rejected *RejectedSubmission
	switch {
	case errors.As(err, &rejected):
		jsonError(w, http.StatusUnprocessableEntity, rejected.Reason.Error())
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, catalog.ErrDestinationNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrAlreadyConfirmed), errors.Is(err, ErrNoDestination):
		jsonError(w, http.StatusConflict, err.Error())
	case errors.Is(err, ErrTravelersOutOfRange),
		errors.Is(err, ErrDepartureInPast),
		errors.Is(err, ErrUnknownTier),
		errors.Is(err, ErrInvalidEmail),
		errors.Is(err, catalog.ErrExtraNotFound):
		jsonError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("booking request failed", "error", err)
		jsonError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func jsonError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
