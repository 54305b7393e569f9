package advisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedChooser struct {
	idx   int
	calls int
}

func (f *fixedChooser) Intn(n int) int {
	f.calls++
	return f.idx % n
}

func replyFor(t *testing.T, name string) string {
	t.Helper()
	for _, r := range DefaultRules {
		if r.Name == name {
			return r.Reply
		}
	}
	t.Fatalf("no rule named %s", name)
	return ""
}

func TestPricingRuleIsDeterministic(t *testing.T) {
	r := NewResponder(nil, Config{})
	want := replyFor(t, "pricing")
	for i := 0; i < 5; i++ {
		assert.Equal(t, want, r.Respond(context.Background(), "Quel est le prix ?", nil))
	}
}

func TestRulesAreCaseInsensitive(t *testing.T) {
	r := NewResponder(nil, Config{})
	assert.Equal(t, replyFor(t, "florence"), r.Respond(context.Background(), "Parlez-moi de FLORENCE", nil))
	assert.Equal(t, replyFor(t, "cretaceous"), r.Respond(context.Background(), "Je veux voir un T-Rex", nil))
}

func TestRuleOrderResolvesOverlaps(t *testing.T) {
	r := NewResponder(nil, Config{})
	ctx := context.Background()

	// pricing is checked before paris
	assert.Equal(t, replyFor(t, "pricing"), r.Respond(ctx, "le tarif pour paris ?", nil))
	// safety before cretaceous
	assert.Equal(t, replyFor(t, "safety"), r.Respond(ctx, "les dinosaures, c'est dangereux ?", nil))
	// cancellation before insurance
	assert.Equal(t, replyFor(t, "cancellation"), r.Respond(ctx, "annulation et assurance", nil))
	// "modifier" belongs to paradox even in a booking question
	assert.Equal(t, replyFor(t, "paradox"), r.Respond(ctx, "puis-je modifier ma réservation", nil))
}

func TestDefaultReplyUsesChooser(t *testing.T) {
	chooser := &fixedChooser{idx: 2}
	r := NewResponder(nil, Config{}, WithChooser(chooser))

	got := r.Respond(context.Background(), "Bonjour !", nil)
	assert.Equal(t, DefaultReplies[2], got)
	assert.Equal(t, 1, chooser.calls)
}

func TestDefaultReplyMembership(t *testing.T) {
	r := NewResponder(nil, Config{})
	for i := 0; i < 20; i++ {
		assert.Contains(t, DefaultReplies, r.Respond(context.Background(), "xyz", nil))
	}
}

func TestMatchRule(t *testing.T) {
	rule, ok := MatchRule(DefaultRules, "Combien de temps dure le voyage ?")
	require.True(t, ok)
	assert.Equal(t, "duration", rule.Name)

	_, ok = MatchRule(DefaultRules, "hello")
	assert.False(t, ok)
}

func TestEveryRuleHasTriggers(t *testing.T) {
	require.Len(t, DefaultRules, 12)
	require.Len(t, DefaultReplies, 4)
	for _, r := range DefaultRules {
		assert.NotEmpty(t, r.Triggers, r.Name)
		assert.NotEmpty(t, r.Reply, r.Name)
	}
}
