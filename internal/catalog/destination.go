package catalog

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Difficulty is the physical demand label shown on a destination card.
type Difficulty string

const (
	DifficultyEasy     Difficulty = "Facile"
	DifficultyModerate Difficulty = "Modéré"
	DifficultyExtreme  Difficulty = "Extrême"
)

var (
	// ErrDestinationNotFound is returned when a destination id is unknown
	ErrDestinationNotFound = errors.New("catalog: destination not found")

	// ErrExtraNotFound is returned when an extra id is unknown
	ErrExtraNotFound = errors.New("catalog: extra not found")
)

// Destination is a bookable era. Catalog values are never mutated by callers.
type Destination struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Era             string     `json:"era"`
	Year            string     `json:"year"`
	Description     string     `json:"description"`
	Highlights      []string   `json:"highlights"`
	Activities      []string   `json:"activities"`
	HistoricalFacts []string   `json:"historical_facts"`
	Duration        string     `json:"duration"`
	Difficulty      Difficulty `json:"difficulty"`
	Price           string     `json:"price"`
	Rating          float64    `json:"rating"`
}

// BasePrice returns the per-traveler price parsed from the display string.
func (d Destination) BasePrice() int64 {
	return ParseBasePrice(d.Price)
}

// PresentAbsence is how many hours a traveler is gone from the present.
func (d Destination) PresentAbsence() int {
	switch strings.TrimSpace(d.Duration) {
	case "5 jours":
		return 6
	case "6 jours":
		return 7
	default:
		return 8
	}
}

// ParseBasePrice keeps only the digits of a display price ("12 999€" -> 12999).
// Anything that does not leave a parseable integer is priced at zero.
func ParseBasePrice(display string) int64 {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, display)
	if digits == "" {
		return 0
	}
	value, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// Extra is an optional flat-fee add-on.
type Extra struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Destinations returns the catalog in display order.
func Destinations() []Destination {
	out := make([]Destination, len(destinations))
	copy(out, destinations)
	return out
}

// Lookup finds a destination by id.
func Lookup(id string) (*Destination, error) {
	id = strings.TrimFunc(id, unicode.IsSpace)
	for i := range destinations {
		if destinations[i].ID == id {
			d := destinations[i]
			return &d, nil
		}
	}
	return nil, ErrDestinationNotFound
}

// Extras returns the optional add-ons in display order.
func Extras() []Extra {
	out := make([]Extra, len(extras))
	copy(out, extras)
	return out
}

// LookupExtra finds an extra by id.
func LookupExtra(id string) (Extra, error) {
	for _, e := range extras {
		if e.ID == id {
			return e, nil
		}
	}
	return Extra{}, ErrExtraNotFound
}
