package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SteveHoareau18/timetravelagency/internal/advisor"
	"github.com/SteveHoareau18/timetravelagency/internal/booking"
	"github.com/SteveHoareau18/timetravelagency/internal/catalog"
	"github.com/SteveHoareau18/timetravelagency/internal/chat"
	httpmiddleware "github.com/SteveHoareau18/timetravelagency/internal/http/middleware"
	"github.com/SteveHoareau18/timetravelagency/internal/observability/metrics"
	"github.com/SteveHoareau18/timetravelagency/pkg/logging"
)

func newTestRouter(t *testing.T, limiter *httpmiddleware.RateLimiter) http.Handler {
	t.Helper()

	logger := logging.New("error")
	reg := prometheus.NewRegistry()

	bookingSvc := booking.NewService(booking.NewMemoryStore(0), nil, booking.ServiceConfig{
		Metrics: metrics.NewBookingMetrics(reg),
		Logger:  logger,
	})
	t.Cleanup(bookingSvc.Stop)

	responder := advisor.NewResponder(nil, advisor.Config{}, advisor.WithLogger(logger))
	chatSvc := chat.NewService(chat.NewMemoryTranscript(0), responder, chat.ServiceConfig{Logger: logger})

	var chatOpts []chat.HandlerOption
	if limiter != nil {
		chatOpts = append(chatOpts, chat.WithMessageLimiter(limiter))
	}

	return New(&Config{
		Logger:             logger,
		CatalogHandler:     catalog.NewHandler(logger),
		BookingHandler:     booking.NewHandler(bookingSvc, logger),
		ChatHandler:        chat.NewHandler(chatSvc, logger, chatOpts...),
		MetricsHandler:     promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: []string{"http://localhost:5173"},
		AdvisorMode:        responder.Mode(),
		ChatLimiter:        limiter,
	})
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "rules", resp["advisor"])
}

func TestRouterServesCatalog(t *testing.T) {
	router := newTestRouter(t, nil)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/destinations", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Destinations []catalog.DestinationView `json:"destinations"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Len(t, resp.Destinations, 3)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/faq", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRouterBookingFlowAndMetrics(t *testing.T) {
	router := newTestRouter(t, nil)

	body, _ := json.Marshal(map[string]string{"destination_id": "1"})
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(body)))
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "timetravel_booking_sessions_total")
}

func TestRouterCORSPreflight(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodOptions, "/bookings", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "http://localhost:5173", rr.Header().Get("Access-Control-Allow-Origin"))

	patch := httptest.NewRequest(http.MethodOptions, "/bookings/3f6c", nil)
	patch.Header.Set("Origin", "http://localhost:5173")
	patch.Header.Set("Access-Control-Request-Method", "PATCH")
	patch.Header.Set("Access-Control-Request-Headers", "content-type")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, patch)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "PATCH")

	put := httptest.NewRequest(http.MethodOptions, "/bookings/3f6c", nil)
	put.Header.Set("Origin", "http://localhost:5173")
	put.Header.Set("Access-Control-Request-Method", "PUT")
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, put)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

func TestRouterRateLimitsChat(t *testing.T) {
	router := newTestRouter(t, httpmiddleware.NewRateLimiter(0.001, 1))

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/chat/sessions", nil))
	require.Equal(t, http.StatusCreated, first.Code)

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/chat/sessions", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	catalogResp := httptest.NewRecorder()
	router.ServeHTTP(catalogResp, httptest.NewRequest(http.MethodGet, "/extras", nil))
	assert.Equal(t, http.StatusOK, catalogResp.Code, "catalog is not throttled")
}
