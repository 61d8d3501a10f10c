package game

import (
	"railway/bag"
	"railway/deck"
	"railway/meta"
	"railway/utils"

	"golang.org/x/exp/rand"
)

// GameState is the complete state of a game. Every transition returns a new
// value and leaves the receiver untouched.
type GameState struct {
	PublicGameState
	tickets      deck.Deck[*Ticket]
	cardState    CardState
	playerStates map[PlayerId]PlayerState
}

func newGameState(tickets deck.Deck[*Ticket], cardState CardState, current PlayerId,
	playerStates map[PlayerId]PlayerState, lastPlayer *PlayerId) GameState {
	public := make(map[PlayerId]PublicPlayerState, len(playerStates))
	for id, s := range playerStates {
		public[id] = s.PublicPlayerState
	}
	return GameState{
		PublicGameState: NewPublicGameState(tickets.Size(), cardState.PublicCardState, current, public, lastPlayer),
		tickets:         tickets,
		cardState:       cardState,
		playerStates:    playerStates,
	}
}

// InitialGameState shuffles the tickets and the cards, deals the initial
// hands and draws the first player.
func InitialGameState(tickets bag.Bag[*Ticket], rng *rand.Rand) GameState {
	cards := deck.Of(AllCards(), rng)
	playerStates := make(map[PlayerId]PlayerState, len(PlayerIds))
	for _, id := range PlayerIds {
		playerStates[id] = InitialPlayerState(cards.TopCards(meta.INITIAL_CARDS_COUNT))
		cards = cards.WithoutTopCards(meta.INITIAL_CARDS_COUNT)
	}
	first := PlayerIds[rng.Intn(len(PlayerIds))]
	return newGameState(deck.Of(tickets, rng), InitialCardState(cards), first, playerStates, nil)
}

func (s GameState) with(playerStates map[PlayerId]PlayerState) GameState {
	return newGameState(s.tickets, s.cardState, s.currentPlayerId, playerStates, s.lastPlayer)
}

func (s GameState) withPlayerState(id PlayerId, ps PlayerState) map[PlayerId]PlayerState {
	states := make(map[PlayerId]PlayerState, len(s.playerStates))
	for k, v := range s.playerStates {
		states[k] = v
	}
	states[id] = ps
	return states
}

func (s GameState) PlayerState(id PlayerId) PlayerState {
	return s.playerStates[id]
}

func (s GameState) CurrentPlayerState() PlayerState {
	return s.playerStates[s.currentPlayerId]
}

func (s GameState) TopTickets(n int) bag.Bag[*Ticket] {
	return s.tickets.TopCards(n)
}

func (s GameState) WithoutTopTickets(n int) GameState {
	return newGameState(s.tickets.WithoutTopCards(n), s.cardState, s.currentPlayerId, s.playerStates, s.lastPlayer)
}

func (s GameState) TopCard() Card {
	return s.cardState.TopDeckCard()
}

func (s GameState) WithoutTopCard() GameState {
	return newGameState(s.tickets, s.cardState.WithoutTopDeckCard(), s.currentPlayerId, s.playerStates, s.lastPlayer)
}

func (s GameState) WithMoreDiscardedCards(cards bag.Bag[Card]) GameState {
	return newGameState(s.tickets, s.cardState.WithMoreDiscardedCards(cards), s.currentPlayerId, s.playerStates, s.lastPlayer)
}

// WithCardsDeckRecreatedIfNeeded reshuffles the discards when the pile is empty.
func (s GameState) WithCardsDeckRecreatedIfNeeded(rng *rand.Rand) GameState {
	if !s.cardState.IsDeckEmpty() {
		return s
	}
	return newGameState(s.tickets, s.cardState.WithDeckRecreatedFromDiscards(rng), s.currentPlayerId, s.playerStates, s.lastPlayer)
}

func (s GameState) WithInitiallyChosenTickets(id PlayerId, chosen bag.Bag[*Ticket]) GameState {
	utils.CheckArgument(s.playerStates[id].TicketCount() == 0, "%s already chose tickets", id)
	return s.with(s.withPlayerState(id, s.playerStates[id].WithAddedTickets(chosen)))
}

// WithChosenAdditionalTickets gives the current player chosen out of drawn
// and removes drawn from the ticket pile.
func (s GameState) WithChosenAdditionalTickets(drawn, chosen bag.Bag[*Ticket]) GameState {
	utils.CheckArgument(drawn.Contains(chosen), "chosen tickets were not drawn")
	current := s.CurrentPlayerState().WithAddedTickets(chosen)
	return newGameState(s.tickets.WithoutTopCards(drawn.Size()), s.cardState, s.currentPlayerId,
		s.withPlayerState(s.currentPlayerId, current), s.lastPlayer)
}

func (s GameState) WithDrawnFaceUpCard(slot int) GameState {
	card := s.cardState.FaceUpCard(slot)
	current := s.CurrentPlayerState().WithAddedCard(card)
	return newGameState(s.tickets, s.cardState.WithDrawnFaceUpCard(slot), s.currentPlayerId,
		s.withPlayerState(s.currentPlayerId, current), s.lastPlayer)
}

func (s GameState) WithBlindlyDrawnCard() GameState {
	current := s.CurrentPlayerState().WithAddedCard(s.cardState.TopDeckCard())
	return newGameState(s.tickets, s.cardState.WithoutTopDeckCard(), s.currentPlayerId,
		s.withPlayerState(s.currentPlayerId, current), s.lastPlayer)
}

// WithClaimedRoute lets the current player claim r and discards the cards paid.
func (s GameState) WithClaimedRoute(r *Route, cards bag.Bag[Card]) GameState {
	current := s.CurrentPlayerState().WithClaimedRoute(r, cards)
	return newGameState(s.tickets, s.cardState.WithMoreDiscardedCards(cards), s.currentPlayerId,
		s.withPlayerState(s.currentPlayerId, current), s.lastPlayer)
}

func (s GameState) LastTurnBegins() bool {
	return s.lastPlayer == nil && s.CurrentPlayerState().CarCount() <= meta.LAST_TURN_CAR_COUNT
}

// ForNextTurn hands the turn to the other player, recording the current
// player as the last one when the last turn begins.
func (s GameState) ForNextTurn() GameState {
	last := s.lastPlayer
	if s.LastTurnBegins() {
		id := s.currentPlayerId
		last = &id
	}
	return newGameState(s.tickets, s.cardState, s.currentPlayerId.Next(), s.playerStates, last)
}

func (s GameState) CardState() CardState {
	return s.cardState
}

// Public strips the hidden parts of the state.
func (s GameState) Public() PublicGameState {
	return s.PublicGameState
}
