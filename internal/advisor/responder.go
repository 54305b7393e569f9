// Package advisor answers chat utterances, from an ordered keyword rule table
// when no remote credential is configured or from a chat completion service.
package advisor

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/SteveHoareau18/timetravelagency/internal/observability/metrics"
	"github.com/SteveHoareau18/timetravelagency/pkg/logging"
)

var errEmptyCompletion = errors.New("advisor: completion text is empty")

// Responder produces exactly one reply per utterance and never fails.
type Responder struct {
	client   LLMClient
	cfg      Config
	rules    []Rule
	defaults []string
	chooser  Chooser
	metrics  *metrics.AdvisorMetrics
	logger   *logging.Logger
	tracer   trace.Tracer
}

// Option customizes a Responder.
type Option func(*Responder)

func WithChooser(c Chooser) Option {
	return func(r *Responder) {
		if c != nil {
			r.chooser = c
		}
	}
}

func WithRules(rules []Rule, defaults []string) Option {
	return func(r *Responder) {
		r.rules = rules
		if len(defaults) > 0 {
			r.defaults = defaults
		}
	}
}

func WithMetrics(m *metrics.AdvisorMetrics) Option {
	return func(r *Responder) { r.metrics = m }
}

func WithLogger(l *logging.Logger) Option {
	return func(r *Responder) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResponder builds a responder. A nil client selects rule mode.
func NewResponder(client LLMClient, cfg Config, opts ...Option) *Responder {
	r := &Responder{
		client:   client,
		cfg:      cfg.withDefaults(),
		rules:    DefaultRules,
		defaults: DefaultReplies,
		chooser:  randChooser{},
		logger:   logging.Default(),
		tracer:   otel.Tracer("timetravel.internal.advisor"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Mode is "remote" or "rules".
func (r *Responder) Mode() string {
	if r.client != nil {
		return "remote"
	}
	return "rules"
}

// Respond answers utterance given the prior turns, oldest first.
func (r *Responder) Respond(ctx context.Context, utterance string, history []Turn) string {
	if r.client == nil {
		return r.respondWithRules(utterance)
	}
	return r.respondRemote(ctx, utterance, history)
}

func (r *Responder) respondWithRules(utterance string) string {
	if rule, ok := MatchRule(r.rules, utterance); ok {
		r.metrics.ObserveReply("rules", rule.Name)
		return rule.Reply
	}
	r.metrics.ObserveReply("rules", "default")
	idx := r.chooser.Intn(len(r.defaults))
	if idx < 0 || idx >= len(r.defaults) {
		idx = 0
	}
	return r.defaults[idx]
}

func (r *Responder) respondRemote(ctx context.Context, utterance string, history []Turn) string {
	ctx, span := r.tracer.Start(ctx, "advisor.complete", trace.WithAttributes(
		attribute.String("advisor.provider", r.cfg.Provider),
		attribute.Int("advisor.history_len", len(history)),
	))
	defer span.End()

	messages := make([]Turn, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, Turn{Role: RoleUser, Content: utterance})

	started := time.Now()
	resp, err := r.client.Complete(ctx, LLMRequest{
		Model:       r.cfg.Model,
		System:      []string{SystemPrompt},
		Messages:    messages,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
		TopP:        r.cfg.TopP,
	})
	if err == nil && strings.TrimSpace(resp.Text) == "" {
		err = errEmptyCompletion
	}
	r.metrics.ObserveRemoteLatency(r.cfg.Provider, err == nil, time.Since(started).Seconds())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		if errors.Is(err, ErrUnauthorized) {
			r.logger.Error("advisor remote call unauthorized", "provider", r.cfg.Provider, "error", err)
			r.metrics.ObserveReply("remote", "auth_fallback")
			return AuthFallback
		}
		r.logger.Warn("advisor remote call failed", "provider", r.cfg.Provider, "error", err)
		r.metrics.ObserveReply("remote", "technical_fallback")
		return TechnicalFallback
	}

	span.SetAttributes(attribute.Int("advisor.output_tokens", int(resp.Usage.OutputTokens)))
	r.metrics.ObserveReply("remote", "ok")
	return resp.Text
}
