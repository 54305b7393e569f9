package booking

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SteveHoareau18/timetravelagency/internal/catalog"
)

func paris(t *testing.T) *catalog.Destination {
	t.Helper()
	d, err := catalog.Lookup("1")
	require.NoError(t, err)
	return d
}

func TestNewStateDefaults(t *testing.T) {
	s := NewState()
	assert.Equal(t, 1, s.Step)
	assert.Equal(t, 1, s.Travelers)
	assert.Nil(t, s.DepartureDate)
	assert.Equal(t, TierPremium, s.Tier)
	assert.True(t, s.GuideIncluded)
	assert.Empty(t, s.Extras)
	assert.False(t, s.Confirmed)
	assert.Equal(t, s, Reset())
}

func TestComputePricePremiumBaseline(t *testing.T) {
	dest := paris(t)
	for n := MinTravelers; n <= MaxTravelers; n++ {
		s := NewState()
		s.Travelers = n
		assert.Equal(t, int64(3499*n), ComputePrice(dest, s), "travelers=%d", n)
	}
}

func TestComputePriceTierAdjustments(t *testing.T) {
	dest := paris(t)
	for n := MinTravelers; n <= MaxTravelers; n++ {
		s := NewState()
		s.Travelers = n
		premium := ComputePrice(dest, s)

		s.Tier = TierStandard
		assert.Equal(t, premium-StandardDiscountPerTraveler*int64(n), ComputePrice(dest, s))

		s.Tier = TierUltimate
		assert.Equal(t, premium+UltimateSurchargePerTraveler*int64(n), ComputePrice(dest, s))
	}
}

func TestComputePriceGuideFeeIsFlat(t *testing.T) {
	dest := paris(t)
	for n := MinTravelers; n <= MaxTravelers; n++ {
		s := NewState()
		s.Travelers = n
		with := ComputePrice(dest, s)
		s.GuideIncluded = false
		assert.Equal(t, with-GuideFee, ComputePrice(dest, s))
	}
}

func TestComputePriceExtras(t *testing.T) {
	dest := paris(t)
	s := NewState()
	base := ComputePrice(dest, s)

	s = ToggleExtra(s, "translator-50")
	assert.Equal(t, base+ExtraSurcharge, ComputePrice(dest, s))

	s = ToggleExtra(s, "vip-events")
	assert.Equal(t, base+2*ExtraSurcharge, ComputePrice(dest, s))

	once := ToggleExtra(NewState(), "translator-50")
	thrice := ToggleExtra(ToggleExtra(ToggleExtra(NewState(), "translator-50"), "translator-50"), "translator-50")
	assert.Equal(t, ComputePrice(dest, once), ComputePrice(dest, thrice))
	assert.Equal(t, []string{"translator-50"}, thrice.Extras)
}

func TestComputePriceNilDestination(t *testing.T) {
	assert.Equal(t, int64(0), ComputePrice(nil, NewState()))
}

func TestComputePriceUnparseableBase(t *testing.T) {
	dest := &catalog.Destination{ID: "x", Price: "sur demande"}
	s := NewState()
	s.GuideIncluded = false
	assert.Equal(t, -GuideFee, ComputePrice(dest, s))
	assert.Equal(t, int64(0), DisplayPrice(ComputePrice(dest, s)))
}

func TestEndToEndQuote(t *testing.T) {
	s := NewState()
	s.Travelers = 2
	s.Tier = TierStandard
	s.GuideIncluded = false
	s = ToggleExtra(s, "camera-12k-drone")

	want := int64(3499*2) - StandardDiscountPerTraveler*2 - GuideFee + ExtraSurcharge
	assert.Equal(t, want, ComputePrice(paris(t), s))
	assert.Equal(t, int64(5598), ComputePrice(paris(t), s))
}

func TestStepTransitions(t *testing.T) {
	s := NewState()
	s = Retreat(s)
	assert.Equal(t, 1, s.Step)

	s = Advance(s)
	assert.Equal(t, 2, s.Step)
	s = Advance(s)
	assert.Equal(t, 3, s.Step)
	s = Advance(s)
	assert.Equal(t, 3, s.Step)

	s = Retreat(s)
	assert.Equal(t, 2, s.Step)
}

func TestToggleExtraDoesNotAliasInput(t *testing.T) {
	original := ToggleExtra(NewState(), "vip-events")
	next := ToggleExtra(original, "certified-souvenirs")
	assert.Equal(t, []string{"vip-events"}, original.Extras)
	assert.ElementsMatch(t, []string{"vip-events", "certified-souvenirs"}, next.Extras)
}

func TestSubmitRejected(t *testing.T) {
	date := time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)

	step1 := NewState()
	step1.DepartureDate = &date
	step2 := Advance(step1)
	step3NoDate := Advance(Advance(NewState()))

	for name, s := range map[string]State{"step1": step1, "step2": step2, "step3 without date": step3NoDate} {
		_, err := Submit(s, paris(t))
		require.Error(t, err, name)

		var rejected *RejectedSubmission
		require.True(t, errors.As(err, &rejected), name)
		assert.False(t, s.Confirmed, name)
	}

	_, err := Submit(step2, paris(t))
	assert.ErrorIs(t, err, ErrNotFinalStep)
	_, err = Submit(step3NoDate, paris(t))
	assert.ErrorIs(t, err, ErrMissingDepartureDate)
}

func TestSubmitConfirms(t *testing.T) {
	date := time.Date(2027, 1, 15, 0, 0, 0, 0, time.UTC)
	s := Advance(Advance(NewState()))
	s.DepartureDate = &date
	s.Travelers = 3
	s = ToggleExtra(s, "vip-events")

	ev, err := Submit(s, paris(t))
	require.NoError(t, err)
	assert.True(t, ev.State.Confirmed)
	assert.False(t, s.Confirmed)
	assert.Equal(t, "1", ev.DestinationID)
	assert.Equal(t, int64(3499*3)+ExtraSurcharge, ev.Price)

	s.Extras[0] = "mutated"
	assert.Equal(t, []string{"vip-events"}, ev.State.Extras)
}

func TestValidateTravelers(t *testing.T) {
	assert.NoError(t, ValidateTravelers(1))
	assert.NoError(t, ValidateTravelers(4))
	assert.ErrorIs(t, ValidateTravelers(0), ErrTravelersOutOfRange)
	assert.ErrorIs(t, ValidateTravelers(5), ErrTravelersOutOfRange)
}

func TestValidateDepartureDate(t *testing.T) {
	today := time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)
	assert.NoError(t, ValidateDepartureDate(time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), today))
	assert.NoError(t, ValidateDepartureDate(time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), today))
	assert.ErrorIs(t, ValidateDepartureDate(time.Date(2026, 10, 18, 23, 0, 0, 0, time.UTC), today), ErrDepartureInPast)
}

func TestValidateDepartureDateWestOfUTC(t *testing.T) {
	newYork := time.FixedZone("UTC-5", -5*60*60)
	today := time.Date(2026, 10, 19, 10, 0, 0, 0, newYork)

	// Date-only input parsed without a zone lands on UTC midnight.
	sameDay, err := time.Parse("2006-01-02", "2026-10-19")
	require.NoError(t, err)
	assert.NoError(t, ValidateDepartureDate(sameDay, today))

	dayBefore, err := time.Parse("2006-01-02", "2026-10-18")
	require.NoError(t, err)
	assert.ErrorIs(t, ValidateDepartureDate(dayBefore, today), ErrDepartureInPast)

	lateEvening := time.Date(2026, 10, 19, 22, 0, 0, 0, newYork)
	assert.NoError(t, ValidateDepartureDate(sameDay, lateEvening))
}

func TestParseTier(t *testing.T) {
	tier, err := ParseTier(" Ultimate ")
	require.NoError(t, err)
	assert.Equal(t, TierUltimate, tier)

	_, err = ParseTier("gold")
	assert.ErrorIs(t, err, ErrUnknownTier)
}
