package player

import (
	"railway/bag"
	"railway/game"
	"railway/meta"
)

// Decider makes decisions on behalf of a player without blocking. Each
// request carries a callback that the decider calls, possibly later and
// from another goroutine, once the decision is made.
type Decider interface {
	InitPlayers(ownId game.PlayerId, names map[game.PlayerId]string, rematch bool)
	ReceiveInfo(info string)
	SetState(state game.PublicGameState, own game.PlayerState)
	ChooseTickets(options bag.Bag[*game.Ticket], minimum int, answer func(bag.Bag[*game.Ticket]))
	StartTurn(handlers TurnHandlers)
	DrawCard(answer func(slot int))
	ChooseAdditionalCards(options []bag.Bag[game.Card], answer func(bag.Bag[game.Card]))
	AskForRematch(answer func(bool))
}

// TurnHandlers are the three ways a decider can start a turn.
type TurnHandlers struct {
	DrawTickets func()
	DrawCard    func(slot int)
	ClaimRoute  func(route *game.Route, cards bag.Bag[game.Card])
}

// Bridge turns a Decider into a game.Player. Every answer travels through a
// single-slot channel, so the decider never blocks and the engine waits.
type Bridge struct {
	decider    Decider
	tickets    chan bag.Bag[*game.Ticket]
	turnKind   chan game.TurnKind
	drawSlot   chan int
	route      chan *game.Route
	claimCards chan bag.Bag[game.Card]
	additional chan bag.Bag[game.Card]
	rematch    chan bool
}

func NewBridge(decider Decider) *Bridge {
	return &Bridge{
		decider:    decider,
		tickets:    make(chan bag.Bag[*game.Ticket], 1),
		turnKind:   make(chan game.TurnKind, 1),
		drawSlot:   make(chan int, 1),
		route:      make(chan *game.Route, 1),
		claimCards: make(chan bag.Bag[game.Card], 1),
		additional: make(chan bag.Bag[game.Card], 1),
		rematch:    make(chan bool, 1),
	}
}

func (b *Bridge) InitPlayers(ownId game.PlayerId, names map[game.PlayerId]string, rematch bool) {
	b.decider.InitPlayers(ownId, names, rematch)
}

func (b *Bridge) ReceiveInfo(info string) {
	b.decider.ReceiveInfo(info)
}

func (b *Bridge) UpdateState(state game.PublicGameState, own game.PlayerState) {
	b.decider.SetState(state, own)
}

func (b *Bridge) SetInitialTicketChoice(tickets bag.Bag[*game.Ticket]) {
	minimum := tickets.Size() - meta.DISCARDABLE_TICKETS_COUNT
	b.decider.ChooseTickets(tickets, minimum, func(chosen bag.Bag[*game.Ticket]) {
		b.tickets <- chosen
	})
}

func (b *Bridge) ChooseInitialTickets() bag.Bag[*game.Ticket] {
	return <-b.tickets
}

func (b *Bridge) NextTurn() game.TurnKind {
	b.decider.StartTurn(TurnHandlers{
		DrawTickets: func() {
			b.turnKind <- game.DrawTickets
		},
		DrawCard: func(slot int) {
			b.drawSlot <- slot
			b.turnKind <- game.DrawCards
		},
		ClaimRoute: func(route *game.Route, cards bag.Bag[game.Card]) {
			b.route <- route
			b.claimCards <- cards
			b.turnKind <- game.ClaimRoute
		},
	})
	return <-b.turnKind
}

func (b *Bridge) ChooseTickets(options bag.Bag[*game.Ticket]) bag.Bag[*game.Ticket] {
	minimum := max(options.Size()-meta.DISCARDABLE_TICKETS_COUNT, 1)
	b.decider.ChooseTickets(options, minimum, func(chosen bag.Bag[*game.Ticket]) {
		b.tickets <- chosen
	})
	return <-b.tickets
}

// DrawSlot returns the slot picked when the turn started, if any, and
// otherwise asks the decider for the second card.
func (b *Bridge) DrawSlot() int {
	select {
	case slot := <-b.drawSlot:
		return slot
	default:
	}
	b.decider.DrawCard(func(slot int) {
		b.drawSlot <- slot
	})
	return <-b.drawSlot
}

func (b *Bridge) ClaimedRoute() *game.Route {
	return <-b.route
}

func (b *Bridge) InitialClaimCards() bag.Bag[game.Card] {
	return <-b.claimCards
}

func (b *Bridge) ChooseAdditionalCards(options []bag.Bag[game.Card]) bag.Bag[game.Card] {
	b.decider.ChooseAdditionalCards(options, func(chosen bag.Bag[game.Card]) {
		b.additional <- chosen
	})
	return <-b.additional
}

func (b *Bridge) AskForRematch() {
	b.decider.AskForRematch(func(again bool) {
		b.rematch <- again
	})
}

func (b *Bridge) RematchResponse() bool {
	return <-b.rematch
}
