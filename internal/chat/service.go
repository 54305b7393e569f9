package chat

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SteveHoareau18/timetravelagency/internal/advisor"
	"github.com/SteveHoareau18/timetravelagency/internal/keylock"
	"github.com/SteveHoareau18/timetravelagency/pkg/logging"
)

// Responder answers one utterance. *advisor.Responder satisfies it.
type Responder interface {
	Respond(ctx context.Context, utterance string, history []advisor.Turn) string
}

// ServiceConfig tunes reply pacing.
type ServiceConfig struct {
	// MinReplyDelay keeps the typing indicator up long enough to read.
	MinReplyDelay time.Duration
	ReplyJitter   time.Duration
	Logger        *logging.Logger
	Now           func() time.Time
}

// Service owns chat sessions.
type Service struct {
	transcript TranscriptStore
	responder  Responder
	minDelay   time.Duration
	jitter     time.Duration
	logger     *logging.Logger
	now        func() time.Time
	jitterFn   func(time.Duration) time.Duration
	locks      *keylock.Map
}

func NewService(transcript TranscriptStore, responder Responder, cfg ServiceConfig) *Service {
	if transcript == nil || responder == nil {
		panic("chat: transcript and responder are required")
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Service{
		transcript: transcript,
		responder:  responder,
		minDelay:   cfg.MinReplyDelay,
		jitter:     cfg.ReplyJitter,
		logger:     cfg.Logger,
		now:        cfg.Now,
		jitterFn: func(limit time.Duration) time.Duration {
			return time.Duration(rand.Int63n(int64(limit)))
		},
		locks: keylock.New(),
	}
}

// Start opens a session seeded with the greeting.
func (s *Service) Start(ctx context.Context) (string, []Message, error) {
	id := uuid.NewString()
	msg := greeting(s.now())
	if err := s.transcript.Append(ctx, id, msg); err != nil {
		return "", nil, err
	}
	return id, []Message{msg}, nil
}

// History returns the session log, oldest first.
func (s *Service) History(ctx context.Context, sessionID string) ([]Message, error) {
	return s.transcript.List(ctx, sessionID)
}

// Send logs text, asks the responder and logs its reply. Sends for the same
// session are serialized so replies land in request order.
func (s *Service) Send(ctx context.Context, sessionID, text string) (Message, Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Message{}, Message{}, ErrEmptyMessage
	}

	unlock := s.locks.Lock(sessionID)
	defer unlock()

	log, err := s.transcript.List(ctx, sessionID)
	if err != nil {
		return Message{}, Message{}, err
	}

	started := time.Now()
	userMsg := newMessage(text, SenderUser, s.now())
	if err := s.transcript.Append(ctx, sessionID, userMsg); err != nil {
		return Message{}, Message{}, err
	}

	reply := s.responder.Respond(ctx, text, historyTurns(log))
	s.pace(ctx, time.Since(started))

	botMsg := newMessage(reply, SenderBot, s.now())
	if err := s.transcript.Append(context.WithoutCancel(ctx), sessionID, botMsg); err != nil {
		return userMsg, Message{}, err
	}
	s.logger.Debug("chat reply sent", "session_id", sessionID, "reply_len", len(reply))
	return userMsg, botMsg, nil
}

// pace waits out what is left of the minimum perceived delay.
func (s *Service) pace(ctx context.Context, elapsed time.Duration) {
	target := s.minDelay
	if s.jitter > 0 {
		target += s.jitterFn(s.jitter)
	}
	remaining := target - elapsed
	if remaining <= 0 {
		return
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// historyTurns maps the log to advisor turns, dropping the greeting.
func historyTurns(log []Message) []advisor.Turn {
	turns := make([]advisor.Turn, 0, len(log))
	for _, m := range log {
		if m.ID == GreetingID && m.Sender == SenderBot {
			continue
		}
		role := advisor.RoleAssistant
		if m.Sender == SenderUser {
			role = advisor.RoleUser
		}
		turns = append(turns, advisor.Turn{Role: role, Content: m.Text})
	}
	return turns
}
