package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/net/websocket"

	httpmiddleware "github.com/SteveHoareau18/timetravelagency/internal/http/middleware"
	"github.com/SteveHoareau18/timetravelagency/pkg/logging"
)

// Handler serves the chat widget over HTTP and WebSocket.
type Handler struct {
	service *Service
	logger  *logging.Logger
	limiter MessageLimiter
}

// MessageLimiter budgets messages per client IP. The HTTP rate limit only
// sees the upgrade request, so socket messages are checked one by one.
type MessageLimiter interface {
	Allow(key string) bool
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

func WithMessageLimiter(limiter MessageLimiter) HandlerOption {
	return func(h *Handler) { h.limiter = limiter }
}

// InboundFrame is what the widget sends over the socket.
type InboundFrame struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text"`
}

// OutboundFrame is what the widget receives.
type OutboundFrame struct {
	Type      string    `json:"type"` // "session", "history", "typing", "message", "pong", "error"
	SessionID string    `json:"session_id,omitempty"`
	Message   *Message  `json:"message,omitempty"`
	Messages  []Message `json:"messages,omitempty"`
	Text      string    `json:"text,omitempty"`
}

func NewHandler(service *Service, logger *logging.Logger, opts ...HandlerOption) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	h := &Handler{service: service, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Routes mounts the chat endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/sessions", h.StartSession)
	r.Get("/sessions/{sessionID}/messages", h.ListMessages)
	r.Post("/sessions/{sessionID}/messages", h.PostMessage)
	r.Get("/ws", h.HandleWebSocket)
	return r
}

// StartSession handles POST /chat/sessions
func (h *Handler) StartSession(w http.ResponseWriter, r *http.Request) {
	id, messages, err := h.service.Start(r.Context())
	if err != nil {
		h.logger.Error("chat: failed to start session", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to start session")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"session_id": id, "messages": messages})
}

// ListMessages handles GET /chat/sessions/{sessionID}/messages
func (h *Handler) ListMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := h.service.History(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// PostMessage handles POST /chat/sessions/{sessionID}/messages
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	userMsg, reply, err := h.service.Send(r.Context(), chi.URLParam(r, "sessionID"), req.Text)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": userMsg, "reply": reply})
}

// HandleWebSocket handles GET /chat/ws?session=
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	ctx := r.Context()
	// The server's read/write timeouts survive the hijack and would cut idle sockets.
	_ = conn.SetDeadline(time.Time{})
	sessionID := strings.TrimSpace(r.URL.Query().Get("session"))
	client := httpmiddleware.ClientIP(r)

	var history []Message
	var err error
	if sessionID != "" {
		history, err = h.service.History(ctx, sessionID)
	}
	if sessionID == "" || errors.Is(err, ErrSessionNotFound) {
		sessionID, history, err = h.service.Start(ctx)
	}
	if err != nil {
		h.logger.Error("chat: failed to open socket session", "error", err)
		_ = websocket.JSON.Send(conn, OutboundFrame{Type: "error", Text: "session unavailable"})
		return
	}

	_ = websocket.JSON.Send(conn, OutboundFrame{Type: "session", SessionID: sessionID})
	_ = websocket.JSON.Send(conn, OutboundFrame{Type: "history", Messages: history})
	h.logger.Info("chat: connection opened", "session_id", sessionID)

	for {
		var frame InboundFrame
		if err := websocket.JSON.Receive(conn, &frame); err != nil {
			h.logger.Debug("chat: connection closed", "session_id", sessionID, "error", err)
			return
		}

		switch frame.Type {
		case "ping":
			_ = websocket.JSON.Send(conn, OutboundFrame{Type: "pong"})
			continue
		case "message":
		default:
			continue
		}
		if strings.TrimSpace(frame.Text) == "" {
			continue
		}
		if h.limiter != nil && !h.limiter.Allow(client) {
			h.logger.Warn("chat: rate limit exceeded", "session_id", sessionID, "ip", client)
			_ = websocket.JSON.Send(conn, OutboundFrame{Type: "error", Text: "rate limit exceeded"})
			continue
		}

		_ = websocket.JSON.Send(conn, OutboundFrame{Type: "typing"})
		h.replyOverSocket(ctx, conn, sessionID, frame.Text)
	}
}

func (h *Handler) replyOverSocket(ctx context.Context, conn *websocket.Conn, sessionID, text string) {
	_, reply, err := h.service.Send(ctx, sessionID, text)
	if err != nil {
		h.logger.Error("chat: failed to send message", "session_id", sessionID, "error", err)
		_ = websocket.JSON.Send(conn, OutboundFrame{Type: "error", Text: "message could not be delivered"})
		return
	}
	_ = websocket.JSON.Send(conn, OutboundFrame{Type: "message", Message: &reply})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		jsonError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrEmptyMessage):
		jsonError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("chat request failed", "error", err)
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
