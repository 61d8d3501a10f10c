package game

import (
	"fmt"
	"railway/bag"
	"railway/meta"
	"railway/utils"
)

type Station struct {
	ID   int
	Name string
}

func (s Station) String() string {
	return s.Name
}

// Level tells whether a route runs on the surface or through a tunnel.
type Level int

const (
	Overground Level = iota
	Underground
)

type Route struct {
	ID       string
	Station1 Station
	Station2 Station
	Length   int
	Level    Level
	Color    Color
}

// NewRoute validates and returns a route. color may be NoColor.
func NewRoute(id string, s1, s2 Station, length int, level Level, color Color) *Route {
	utils.CheckArgument(s1 != s2, "route %s joins %s to itself", id, s1)
	utils.CheckArgument(length >= meta.MIN_ROUTE_LENGTH && length <= meta.MAX_ROUTE_LENGTH,
		"route %s has length %d", id, length)
	return &Route{
		ID:       id,
		Station1: s1,
		Station2: s2,
		Length:   length,
		Level:    level,
		Color:    color,
	}
}

func (r *Route) Stations() []Station {
	return []Station{r.Station1, r.Station2}
}

// Touches reports whether s is one of the route's ends.
func (r *Route) Touches(s Station) bool {
	return r.Station1 == s || r.Station2 == s
}

func (r *Route) StationOpposite(s Station) Station {
	switch s {
	case r.Station1:
		return r.Station2
	case r.Station2:
		return r.Station1
	}
	panic(fmt.Errorf("%w: %s is not an end of route %s", utils.ErrInvalidArgument, s, r.ID))
}

func (r *Route) ClaimPoints() int {
	return meta.ROUTE_CLAIM_POINTS[r.Length]
}

// PossibleClaimCards lists every card combination that can claim the route,
// ordered by increasing number of locomotives, then by color.
func (r *Route) PossibleClaimCards() []bag.Bag[Card] {
	colors := Colors
	if r.Color != NoColor {
		colors = []Color{r.Color}
	}

	maxLocomotives := 0
	if r.Level == Underground {
		maxLocomotives = r.Length
	}

	var options []bag.Bag[Card]
	for locomotives := 0; locomotives <= maxLocomotives && locomotives < r.Length; locomotives++ {
		for _, c := range colors {
			options = append(options, bag.NewBuilder[Card]().
				AddN(r.Length-locomotives, CardOf(c)).
				AddN(locomotives, Locomotive).
				Build())
		}
	}
	if r.Level == Underground {
		options = append(options, bag.OfN(r.Length, Locomotive))
	}
	return options
}

// AdditionalClaimCardsCount returns how many more cards a tunnel claim costs
// given the cards revealed from the pile. Fewer than three cards are revealed
// only when the pile and the discards run out; each of them still counts.
func (r *Route) AdditionalClaimCardsCount(claimCards, drawnCards bag.Bag[Card]) int {
	utils.CheckArgument(r.Level == Underground, "route %s is not a tunnel", r.ID)
	utils.CheckArgument(drawnCards.Size() <= meta.ADDITIONAL_TUNNEL_CARDS,
		"expected at most %d drawn cards, got %d", meta.ADDITIONAL_TUNNEL_CARDS, drawnCards.Size())

	count := 0
	for _, c := range drawnCards.ToSlice() {
		if c == Locomotive || claimCards.CountOf(c) > 0 {
			count++
		}
	}
	return count
}

func (r *Route) String() string {
	return fmt.Sprintf("%s - %s", r.Station1, r.Station2)
}
