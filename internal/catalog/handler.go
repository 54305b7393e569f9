package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/SteveHoareau18/timetravelagency/pkg/logging"
	"github.com/go-chi/chi/v5"
)

// Handler serves the read-only catalog.
type Handler struct {
	logger *logging.Logger
}

// NewHandler creates a catalog handler
func NewHandler(logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{logger: logger}
}

// Routes mounts the catalog endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/destinations", h.ListDestinations)
	r.Get("/destinations/{destinationID}", h.GetDestination)
	r.Get("/extras", h.ListExtras)
	r.Get("/faq", h.ListFAQ)
	return r
}

// DestinationView adds derived pricing fields to a destination.
type DestinationView struct {
	Destination
	BasePrice      int64 `json:"base_price"`
	PresentAbsence int   `json:"present_absence_hours"`
}

func viewOf(d Destination) DestinationView {
	return DestinationView{
		Destination:    d,
		BasePrice:      d.BasePrice(),
		PresentAbsence: d.PresentAbsence(),
	}
}

// ListDestinations handles GET /destinations
func (h *Handler) ListDestinations(w http.ResponseWriter, r *http.Request) {
	all := Destinations()
	views := make([]DestinationView, 0, len(all))
	for _, d := range all {
		views = append(views, viewOf(d))
	}
	writeJSON(w, http.StatusOK, map[string]any{"destinations": views})
}

// GetDestination handles GET /destinations/{destinationID}
func (h *Handler) GetDestination(w http.ResponseWriter, r *http.Request) {
	d, err := Lookup(chi.URLParam(r, "destinationID"))
	if errors.Is(err, ErrDestinationNotFound) {
		http.Error(w, "destination not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, viewOf(*d))
}

// ListExtras handles GET /extras
func (h *Handler) ListExtras(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"extras": Extras()})
}

// ListFAQ handles GET /faq
func (h *Handler) ListFAQ(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"faq": FAQ()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
