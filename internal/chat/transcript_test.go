package chat

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTranscript(t *testing.T) {
	store := NewMemoryTranscript(time.Minute)
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	_, err := store.List(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Append(ctx, "s1", greeting(now)))
	require.NoError(t, store.Append(ctx, "s1", newMessage("hi", SenderUser, now)))

	log, err := store.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, GreetingID, log[0].ID)

	now = now.Add(2 * time.Minute)
	_, err = store.List(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryTranscriptCapsLength(t *testing.T) {
	store := NewMemoryTranscript(0)
	ctx := context.Background()
	for i := 0; i < maxTranscriptLength+10; i++ {
		require.NoError(t, store.Append(ctx, "s1", newMessage("m", SenderUser, time.Now())))
	}
	log, err := store.List(ctx, "s1")
	require.NoError(t, err)
	assert.Len(t, log, maxTranscriptLength)
}

func TestRedisTranscript(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisTranscript(client, time.Minute)
	ctx := context.Background()
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	_, err := store.List(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Append(ctx, "s1", greeting(now)))
	require.NoError(t, store.Append(ctx, "s1", newMessage("Quel est le prix ?", SenderUser, now)))

	log, err := store.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, log, 2)
	assert.Equal(t, GreetingText, log[0].Text)
	assert.Equal(t, SenderUser, log[1].Sender)
	assert.True(t, log[1].Timestamp.Equal(now))
	assert.Equal(t, time.Minute, mr.TTL("chat_transcript:s1"))

	mr.FastForward(2 * time.Minute)
	_, err = store.List(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRedisTranscriptRequiresSession(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	err := NewRedisTranscript(client, 0).Append(context.Background(), "", greeting(time.Now()))
	assert.Error(t, err)
}
