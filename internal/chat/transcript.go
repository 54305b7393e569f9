package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultTranscriptTTL = 2 * time.Hour
	maxTranscriptLength  = 250
	transcriptKeyPrefix  = "chat_transcript:"
)

// TranscriptStore keeps each session's message log, oldest first.
type TranscriptStore interface {
	Append(ctx context.Context, sessionID string, msg Message) error
	List(ctx context.Context, sessionID string) ([]Message, error)
}

// MemoryTranscript is an in-process TranscriptStore. Logs expire ttl after
// their last append.
type MemoryTranscript struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	logs map[string]*memoryLog
}

type memoryLog struct {
	messages  []Message
	expiresAt time.Time
}

// NewMemoryTranscript creates a store. A non-positive ttl disables expiry.
func NewMemoryTranscript(ttl time.Duration) *MemoryTranscript {
	return &MemoryTranscript{ttl: ttl, now: time.Now, logs: make(map[string]*memoryLog)}
}

func (m *MemoryTranscript) Append(_ context.Context, sessionID string, msg Message) error {
	if sessionID == "" {
		return errors.New("chat: transcript sessionID required")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	log, ok := m.logs[sessionID]
	if !ok || m.expired(log) {
		log = &memoryLog{}
		m.logs[sessionID] = log
	}
	log.messages = append(log.messages, msg)
	if len(log.messages) > maxTranscriptLength {
		log.messages = log.messages[len(log.messages)-maxTranscriptLength:]
	}
	if m.ttl > 0 {
		log.expiresAt = m.now().Add(m.ttl)
	}
	return nil
}

func (m *MemoryTranscript) List(_ context.Context, sessionID string) ([]Message, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	log, ok := m.logs[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if m.expired(log) {
		delete(m.logs, sessionID)
		return nil, ErrSessionNotFound
	}
	out := make([]Message, len(log.messages))
	copy(out, log.messages)
	return out, nil
}

func (m *MemoryTranscript) expired(log *memoryLog) bool {
	return !log.expiresAt.IsZero() && m.now().After(log.expiresAt)
}

// RedisTranscript stores each log as a capped Redis list with a TTL.
type RedisTranscript struct {
	redis       *redis.Client
	tracer      trace.Tracer
	ttl         time.Duration
	maxMessages int64
}

func NewRedisTranscript(client *redis.Client, ttl time.Duration) *RedisTranscript {
	if client == nil {
		panic("chat: redis client cannot be nil")
	}
	if ttl <= 0 {
		ttl = defaultTranscriptTTL
	}
	return &RedisTranscript{
		redis:       client,
		tracer:      otel.Tracer("timetravel.internal.chat.transcript"),
		ttl:         ttl,
		maxMessages: maxTranscriptLength,
	}
}

func (s *RedisTranscript) Append(ctx context.Context, sessionID string, msg Message) error {
	if sessionID == "" {
		return errors.New("chat: transcript sessionID required")
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("chat: marshal transcript message: %w", err)
	}

	ctx, span := s.tracer.Start(ctx, "chat.transcript.append")
	defer span.End()

	key := transcriptKey(sessionID)
	pipe := s.redis.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -s.maxMessages, -1)
	pipe.Expire(ctx, key, s.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		span.RecordError(err)
		return fmt.Errorf("chat: append transcript message: %w", err)
	}
	return nil
}

func (s *RedisTranscript) List(ctx context.Context, sessionID string) ([]Message, error) {
	ctx, span := s.tracer.Start(ctx, "chat.transcript.list")
	defer span.End()

	raw, err := s.redis.LRange(ctx, transcriptKey(sessionID), 0, -1).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		span.RecordError(err)
		return nil, fmt.Errorf("chat: list transcript: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrSessionNotFound
	}

	out := make([]Message, 0, len(raw))
	for _, item := range raw {
		var msg Message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			span.RecordError(err)
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

func transcriptKey(sessionID string) string {
	return transcriptKeyPrefix + sessionID
}
