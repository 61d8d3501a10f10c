package server

import (
	"fmt"
	"railway/bag"
	"railway/communication"
	"railway/communication/serde"
	"railway/game"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Proxy stands in for a player on the other end of a transport. Every call
// writes one line and, for questions, blocks on exactly one reply line.
type Proxy struct {
	transport communication.Transport
	serdes    *serde.Serdes
	log       zerolog.Logger
}

var _ game.Player = (*Proxy)(nil)

func NewProxy(transport communication.Transport, board *game.Map) *Proxy {
	return &Proxy{
		transport: transport,
		serdes:    serde.NewSerdes(board),
		log:       log.With().Str("component", "proxy").Logger(),
	}
}

// fail aborts the game in progress; the engine recovers it.
func (p *Proxy) fail(err error) {
	p.log.Error().Err(err).Msg("Remote player failed")
	if !communication.IsClosed(err) {
		err = fmt.Errorf("%w: %w", game.ErrPlayerFailure, err)
	}
	panic(err)
}

func (p *Proxy) send(id communication.MessageId, args ...string) {
	line := strings.Join(append([]string{string(id)}, args...), " ")
	p.log.Debug().Str("message", string(id)).Msg("Sending")
	if err := p.transport.WriteLine(line); err != nil {
		p.fail(err)
	}
}

func (p *Proxy) receive() string {
	line, err := p.transport.ReadLine()
	if err != nil {
		p.fail(err)
	}
	return line
}

func ask[T any](p *Proxy, s serde.Serde[T], id communication.MessageId, args ...string) T {
	p.send(id, args...)
	v, err := s.Deserialize(p.receive())
	if err != nil {
		p.fail(fmt.Errorf("bad reply to %s: %w", id, err))
	}
	return v
}

func (p *Proxy) InitPlayers(ownId game.PlayerId, names map[game.PlayerId]string, rematch bool) {
	ordered := make([]string, len(game.PlayerIds))
	for i, id := range game.PlayerIds {
		ordered[i] = names[id]
	}
	p.send(communication.InitPlayers, serde.PlayerId.Serialize(ownId), serde.Strings.Serialize(ordered),
		serde.Bool.Serialize(rematch))
}

func (p *Proxy) ReceiveInfo(info string) {
	p.send(communication.ReceiveInfo, serde.String.Serialize(info))
}

func (p *Proxy) UpdateState(state game.PublicGameState, own game.PlayerState) {
	p.send(communication.UpdateState, p.serdes.PublicGameState.Serialize(state), p.serdes.PlayerState.Serialize(own))
}

func (p *Proxy) SetInitialTicketChoice(tickets bag.Bag[*game.Ticket]) {
	p.send(communication.SetInitialTickets, p.serdes.TicketBag.Serialize(tickets))
}

func (p *Proxy) ChooseInitialTickets() bag.Bag[*game.Ticket] {
	return ask(p, p.serdes.TicketBag, communication.ChooseInitialTickets)
}

func (p *Proxy) NextTurn() game.TurnKind {
	return ask(p, serde.TurnKind, communication.NextTurn)
}

func (p *Proxy) ChooseTickets(options bag.Bag[*game.Ticket]) bag.Bag[*game.Ticket] {
	return ask(p, p.serdes.TicketBag, communication.ChooseTickets, p.serdes.TicketBag.Serialize(options))
}

func (p *Proxy) DrawSlot() int {
	return ask(p, serde.Int, communication.DrawSlot)
}

func (p *Proxy) ClaimedRoute() *game.Route {
	return ask(p, p.serdes.Route, communication.Route)
}

func (p *Proxy) InitialClaimCards() bag.Bag[game.Card] {
	return ask(p, serde.CardBag, communication.Cards)
}

func (p *Proxy) ChooseAdditionalCards(options []bag.Bag[game.Card]) bag.Bag[game.Card] {
	return ask(p, serde.CardBag, communication.ChooseAdditionalCards, serde.CardBags.Serialize(options))
}

func (p *Proxy) AskForRematch() {
	p.send(communication.AskRematch)
}

func (p *Proxy) RematchResponse() bool {
	return ask(p, serde.Bool, communication.RematchAnswer)
}

func (p *Proxy) Close() error {
	return p.transport.Close()
}
