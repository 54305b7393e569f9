package events

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
)

type badEvent struct{}

func (badEvent) EventType() string { return "" }

func TestNewEnvelope(t *testing.T) {
	fixedNow := time.Unix(0, 123456000).UTC()
	prevNow := nowFunc
	nowFunc = func() time.Time { return fixedNow }
	defer func() { nowFunc = prevNow }()

	id := uuid.MustParse("9a20d7d1-bf6a-4d33-bd55-5d25a816f1a8")
	env, err := NewEnvelope("booking:sess-1", "corr-1", BookingConfirmedV1{
		SessionID:     "sess-1",
		DestinationID: "1",
		Travelers:     2,
		Tier:          "standard",
		PriceEUR:      5598,
		ConfirmedAt:   fixedNow,
	}, WithEventID(id))
	if err != nil {
		t.Fatalf("NewEnvelope failed: %v", err)
	}
	if env.EventID != id {
		t.Fatalf("expected event id override, got %s", env.EventID)
	}
	if env.TimestampMicros != fixedNow.UnixMicro() {
		t.Fatalf("unexpected timestamp: %d", env.TimestampMicros)
	}
	if env.EventType != "booking.confirmed.v1" {
		t.Fatalf("unexpected type: %s", env.EventType)
	}

	var payload BookingConfirmedV1
	if err := json.Unmarshal(env.Payload, &payload); err != nil {
		t.Fatalf("payload did not decode: %v", err)
	}
	if payload.PriceEUR != 5598 {
		t.Fatalf("unexpected price: %d", payload.PriceEUR)
	}
}

func TestNewEnvelopeValidation(t *testing.T) {
	if _, err := NewEnvelope("", "", BookingConfirmedV1{}); err == nil {
		t.Fatal("expected missing aggregate error")
	}
	if _, err := NewEnvelope("booking:1", "", nil); err == nil {
		t.Fatal("expected nil event error")
	}
	if _, err := NewEnvelope("booking:1", "", badEvent{}); err == nil {
		t.Fatal("expected missing type error")
	}
}

func TestWithTimestampIgnoresZero(t *testing.T) {
	env, err := NewEnvelope("booking:1", "", BookingConfirmedV1{}, WithTimestamp(time.Time{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.TimestampMicros == 0 {
		t.Fatal("expected default timestamp to be kept")
	}
}
