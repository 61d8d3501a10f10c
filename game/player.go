package game

import (
	"errors"
	"railway/bag"
)

// ErrPlayerFailure is wrapped by the errors a Player panics with when it can
// no longer take part in the game, for instance after losing its connection.
var ErrPlayerFailure = errors.New("player failure")

// TurnKind is the action a player picks at the start of a turn.
type TurnKind int

const (
	DrawTickets TurnKind = iota
	DrawCards
	ClaimRoute
)

var TurnKinds = []TurnKind{DrawTickets, DrawCards, ClaimRoute}

func (k TurnKind) String() string {
	switch k {
	case DrawTickets:
		return "DRAW_TICKETS"
	case DrawCards:
		return "DRAW_CARDS"
	}
	return "CLAIM_ROUTE"
}

// Player is a decision maker taking part in a game. Calls block until the
// player has answered.
type Player interface {
	// InitPlayers tells the player its own id and the names of everyone.
	InitPlayers(ownId PlayerId, names map[PlayerId]string, rematch bool)
	ReceiveInfo(info string)
	UpdateState(state PublicGameState, own PlayerState)
	SetInitialTicketChoice(tickets bag.Bag[*Ticket])
	ChooseInitialTickets() bag.Bag[*Ticket]
	NextTurn() TurnKind
	ChooseTickets(options bag.Bag[*Ticket]) bag.Bag[*Ticket]
	// DrawSlot returns a face-up slot, or meta.DECK_SLOT for the pile.
	DrawSlot() int
	ClaimedRoute() *Route
	InitialClaimCards() bag.Bag[Card]
	// ChooseAdditionalCards returns one of options, or an empty bag to give up the claim.
	ChooseAdditionalCards(options []bag.Bag[Card]) bag.Bag[Card]
	AskForRematch()
	RematchResponse() bool
}
