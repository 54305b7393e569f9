package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasePrice(t *testing.T) {
	cases := map[string]int64{
		"3 499€":    3499,
		"12 999€":   12999,
		"4 799 €":   4799,
		"":          0,
		"sur devis": 0,
		"€":         0,
	}
	for input, want := range cases {
		assert.Equal(t, want, ParseBasePrice(input), "input %q", input)
	}
}

func TestParseBasePriceOverflowDegradesToZero(t *testing.T) {
	assert.Equal(t, int64(0), ParseBasePrice("99999999999999999999999€"))
}

func TestCatalogOrderAndPrices(t *testing.T) {
	all := Destinations()
	require.Len(t, all, 3)

	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, int64(3499), all[0].BasePrice())
	assert.Equal(t, DifficultyEasy, all[0].Difficulty)

	assert.Equal(t, "2", all[1].ID)
	assert.Equal(t, int64(12999), all[1].BasePrice())
	assert.Equal(t, DifficultyExtreme, all[1].Difficulty)

	assert.Equal(t, "3", all[2].ID)
	assert.Equal(t, int64(4799), all[2].BasePrice())
	assert.Equal(t, DifficultyModerate, all[2].Difficulty)
}

func TestDestinationsReturnsCopy(t *testing.T) {
	all := Destinations()
	all[0].Name = "mutated"

	d, err := Lookup("1")
	require.NoError(t, err)
	assert.NotEqual(t, "mutated", d.Name)
}

func TestLookup(t *testing.T) {
	d, err := Lookup(" 3 ")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(d.Name, "Florence"))

	_, err = Lookup("42")
	assert.ErrorIs(t, err, ErrDestinationNotFound)
}

func TestPresentAbsence(t *testing.T) {
	assert.Equal(t, 6, Destination{Duration: "5 jours"}.PresentAbsence())
	assert.Equal(t, 7, Destination{Duration: "6 jours"}.PresentAbsence())
	assert.Equal(t, 8, Destination{Duration: "7 jours"}.PresentAbsence())
	assert.Equal(t, 8, Destination{}.PresentAbsence())
}

func TestExtras(t *testing.T) {
	extras := Extras()
	require.Len(t, extras, 4)

	seen := map[string]bool{}
	for _, e := range extras {
		assert.False(t, seen[e.ID], "duplicate extra id %s", e.ID)
		seen[e.ID] = true
		assert.NotEmpty(t, e.Label)
	}

	e, err := LookupExtra("translator-50")
	require.NoError(t, err)
	assert.Equal(t, "Traducteur premium 50 langues", e.Label)

	_, err = LookupExtra("jetpack")
	assert.ErrorIs(t, err, ErrExtraNotFound)
}

func TestFAQ(t *testing.T) {
	entries := FAQ()
	require.Len(t, entries, 8)
	for _, e := range entries {
		assert.True(t, strings.HasSuffix(e.Question, "?"), e.Question)
		assert.NotEmpty(t, e.Answer)
	}
}

func TestFormatEUR(t *testing.T) {
	normalize := func(s string) string {
		return strings.NewReplacer("\u00a0", " ", "\u202f", " ").Replace(s)
	}
	assert.Equal(t, "5 598€", normalize(FormatEUR(5598)))
	assert.Equal(t, "12 999€", normalize(FormatEUR(12999)))
	assert.Equal(t, "800€", normalize(FormatEUR(800)))
}
