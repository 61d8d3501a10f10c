package game

import (
	"railway/bag"
	"railway/meta"
	"railway/utils"

	"golang.org/x/exp/slices"
)

// PublicPlayerState is what a player's opponent can see of them.
type PublicPlayerState struct {
	ticketCount int
	cardCount   int
	routes      []*Route
	carCount    int
	claimPoints int
}

func NewPublicPlayerState(ticketCount, cardCount int, routes []*Route) PublicPlayerState {
	utils.CheckArgument(ticketCount >= 0 && cardCount >= 0, "negative ticket or card count")
	s := PublicPlayerState{
		ticketCount: ticketCount,
		cardCount:   cardCount,
		routes:      slices.Clone(routes),
		carCount:    meta.INITIAL_CAR_COUNT,
	}
	for _, r := range routes {
		s.carCount -= r.Length
		s.claimPoints += r.ClaimPoints()
	}
	return s
}

func (s PublicPlayerState) TicketCount() int {
	return s.ticketCount
}

func (s PublicPlayerState) CardCount() int {
	return s.cardCount
}

// Routes returns the claimed routes in claim order.
func (s PublicPlayerState) Routes() []*Route {
	return slices.Clone(s.routes)
}

func (s PublicPlayerState) CarCount() int {
	return s.carCount
}

func (s PublicPlayerState) ClaimPoints() int {
	return s.claimPoints
}

// PlayerState is the complete state of a player, tickets and cards included.
type PlayerState struct {
	PublicPlayerState
	tickets bag.Bag[*Ticket]
	cards   bag.Bag[Card]
}

func NewPlayerState(tickets bag.Bag[*Ticket], cards bag.Bag[Card], routes []*Route) PlayerState {
	return PlayerState{
		PublicPlayerState: NewPublicPlayerState(tickets.Size(), cards.Size(), routes),
		tickets:           tickets,
		cards:             cards,
	}
}

// InitialPlayerState gives a player their initial hand.
func InitialPlayerState(initialCards bag.Bag[Card]) PlayerState {
	utils.CheckArgument(initialCards.Size() == meta.INITIAL_CARDS_COUNT,
		"expected %d initial cards, got %d", meta.INITIAL_CARDS_COUNT, initialCards.Size())
	return NewPlayerState(bag.Bag[*Ticket]{}, initialCards, nil)
}

func (s PlayerState) Tickets() bag.Bag[*Ticket] {
	return s.tickets
}

func (s PlayerState) Cards() bag.Bag[Card] {
	return s.cards
}

func (s PlayerState) WithAddedTickets(tickets bag.Bag[*Ticket]) PlayerState {
	return NewPlayerState(s.tickets.Union(tickets), s.cards, s.routes)
}

func (s PlayerState) WithAddedCard(card Card) PlayerState {
	return NewPlayerState(s.tickets, s.cards.Union(bag.Of(card)), s.routes)
}

func (s PlayerState) CanClaimRoute(r *Route) bool {
	return s.carCount >= r.Length && len(s.PossibleClaimCards(r)) > 0
}

// PossibleClaimCards filters the route's claim options down to those the
// player's hand covers.
func (s PlayerState) PossibleClaimCards(r *Route) []bag.Bag[Card] {
	utils.CheckArgument(s.carCount >= r.Length, "not enough cars to claim route %s", r.ID)
	var options []bag.Bag[Card]
	for _, option := range r.PossibleClaimCards() {
		if s.cards.Contains(option) {
			options = append(options, option)
		}
	}
	return options
}

// PossibleAdditionalCards lists the ways the player can pay the extra cost
// of a tunnel, sorted by increasing number of locomotives.
func (s PlayerState) PossibleAdditionalCards(additionalCardsCount int, initialCards bag.Bag[Card]) []bag.Bag[Card] {
	utils.CheckArgument(additionalCardsCount >= 1 && additionalCardsCount <= meta.ADDITIONAL_TUNNEL_CARDS,
		"additional card count %d", additionalCardsCount)
	utils.CheckArgument(!initialCards.IsEmpty(), "no initial cards")
	utils.CheckArgument(len(initialCards.Distinct()) <= 2, "initial cards hold more than two kinds")

	pool := s.cards.Difference(initialCards).Filter(func(c Card) bool {
		return c == Locomotive || initialCards.CountOf(c) > 0
	})
	if pool.Size() < additionalCardsCount {
		return []bag.Bag[Card]{}
	}

	options := pool.SubsetsOfSize(additionalCardsCount)
	slices.SortStableFunc(options, func(a, b bag.Bag[Card]) int {
		return a.CountOf(Locomotive) - b.CountOf(Locomotive)
	})
	return options
}

// WithClaimedRoute pays claimCards for r. It panics when the hand does not
// hold claimCards; callers check the claim beforehand.
func (s PlayerState) WithClaimedRoute(r *Route, claimCards bag.Bag[Card]) PlayerState {
	utils.CheckArgument(s.cards.Contains(claimCards), "hand does not hold %s", claimCards)
	routes := append(s.Routes(), r)
	return NewPlayerState(s.tickets, s.cards.Difference(claimCards), routes)
}

func (s PlayerState) connectivity() StationPartition {
	stationCount := 1
	for _, r := range s.routes {
		stationCount = max(stationCount, r.Station1.ID+1, r.Station2.ID+1)
	}
	builder := NewPartitionBuilder(stationCount)
	for _, r := range s.routes {
		builder.Connect(r.Station1, r.Station2)
	}
	return builder.Build()
}

// TicketValues returns the points each held ticket is currently worth.
func (s PlayerState) TicketValues() map[*Ticket]int {
	conn := s.connectivity()
	values := make(map[*Ticket]int)
	for _, t := range s.tickets.ToSlice() {
		values[t] += t.Points(conn)
	}
	return values
}

func (s PlayerState) TicketPoints() int {
	conn := s.connectivity()
	points := 0
	for _, t := range s.tickets.ToSlice() {
		points += t.Points(conn)
	}
	return points
}

func (s PlayerState) FinalPoints() int {
	return s.claimPoints + s.TicketPoints()
}
