package chat

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SteveHoareau18/timetravelagency/internal/advisor"
)

type recordingResponder struct {
	mu        sync.Mutex
	histories [][]advisor.Turn
	delay     time.Duration
}

func (r *recordingResponder) Respond(_ context.Context, utterance string, history []advisor.Turn) string {
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.histories = append(r.histories, append([]advisor.Turn(nil), history...))
	return "echo: " + utterance
}

func newTestService(responder Responder, minDelay time.Duration) *Service {
	return NewService(NewMemoryTranscript(time.Hour), responder, ServiceConfig{MinReplyDelay: minDelay})
}

func TestStartSeedsGreeting(t *testing.T) {
	svc := newTestService(&recordingResponder{}, 0)
	id, messages, err := svc.Start(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Len(t, messages, 1)
	assert.Equal(t, GreetingID, messages[0].ID)
	assert.Equal(t, SenderBot, messages[0].Sender)
	assert.Equal(t, GreetingText, messages[0].Text)
}

func TestSendAppendsAndExcludesGreetingFromHistory(t *testing.T) {
	responder := &recordingResponder{}
	svc := newTestService(responder, 0)
	ctx := context.Background()

	id, _, err := svc.Start(ctx)
	require.NoError(t, err)

	userMsg, reply, err := svc.Send(ctx, id, "  Bonjour  ")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", userMsg.Text)
	assert.Equal(t, SenderUser, userMsg.Sender)
	assert.Equal(t, "echo: Bonjour", reply.Text)
	assert.Equal(t, SenderBot, reply.Sender)

	_, _, err = svc.Send(ctx, id, "Et le prix ?")
	require.NoError(t, err)

	require.Len(t, responder.histories, 2)
	assert.Empty(t, responder.histories[0])
	assert.Equal(t, []advisor.Turn{
		{Role: advisor.RoleUser, Content: "Bonjour"},
		{Role: advisor.RoleAssistant, Content: "echo: Bonjour"},
	}, responder.histories[1])

	log, err := svc.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, log, 5)
	assert.Equal(t, GreetingID, log[0].ID)
	for i := 1; i < len(log); i++ {
		assert.False(t, log[i].Timestamp.Before(log[i-1].Timestamp))
	}
}

func TestSendHonorsMinimumDelay(t *testing.T) {
	svc := newTestService(&recordingResponder{}, 40*time.Millisecond)
	id, _, err := svc.Start(context.Background())
	require.NoError(t, err)

	started := time.Now()
	_, _, err = svc.Send(context.Background(), id, "salut")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(started), 40*time.Millisecond)
}

func TestSendDelayIncludesJitter(t *testing.T) {
	svc := NewService(NewMemoryTranscript(0), &recordingResponder{}, ServiceConfig{
		MinReplyDelay: 10 * time.Millisecond,
		ReplyJitter:   time.Second,
	})
	svc.jitterFn = func(time.Duration) time.Duration { return 20 * time.Millisecond }
	id, _, err := svc.Start(context.Background())
	require.NoError(t, err)

	started := time.Now()
	_, _, err = svc.Send(context.Background(), id, "salut")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(started), 30*time.Millisecond)
}

func TestSendErrors(t *testing.T) {
	svc := newTestService(&recordingResponder{}, 0)
	_, _, err := svc.Send(context.Background(), "missing", "hello")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	id, _, err := svc.Start(context.Background())
	require.NoError(t, err)
	_, _, err = svc.Send(context.Background(), id, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestConcurrentSendsKeepPairsTogether(t *testing.T) {
	svc := newTestService(&recordingResponder{delay: 2 * time.Millisecond}, 0)
	ctx := context.Background()
	id, _, err := svc.Start(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, err := svc.Send(ctx, id, fmt.Sprintf("question %d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	log, err := svc.History(ctx, id)
	require.NoError(t, err)
	require.Len(t, log, 17)
	for i := 1; i < len(log); i += 2 {
		require.Equal(t, SenderUser, log[i].Sender)
		require.Equal(t, SenderBot, log[i+1].Sender)
		assert.True(t, strings.HasSuffix(log[i+1].Text, log[i].Text))
	}
	assert.Zero(t, svc.locks.Len())
}
