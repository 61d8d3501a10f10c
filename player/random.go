package player

import (
	"railway/bag"
	"railway/game"
	"railway/meta"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// RandomDecider picks uniformly among legal actions, claiming a route
// whenever it can. Answers are delivered from their own goroutine.
type RandomDecider struct {
	mu      sync.Mutex
	rng     *rand.Rand
	routes  []*game.Route
	rematch bool
	ownId   game.PlayerId
	names   map[game.PlayerId]string
	state   game.PublicGameState
	own     game.PlayerState
}

type RandomOption func(d *RandomDecider)

// WithRematch sets the answer given when asked for a rematch.
func WithRematch(again bool) RandomOption {
	return func(d *RandomDecider) {
		d.rematch = again
	}
}

func NewRandomDecider(routes []*game.Route, seed uint64, options ...RandomOption) *RandomDecider {
	d := &RandomDecider{
		rng:    rand.New(rand.NewSource(seed)),
		routes: routes,
	}
	for _, option := range options {
		option(d)
	}
	return d
}

// NewRandomPlayer returns a game.Player backed by a RandomDecider.
func NewRandomPlayer(routes []*game.Route, seed uint64, options ...RandomOption) *Bridge {
	return NewBridge(NewRandomDecider(routes, seed, options...))
}

func (d *RandomDecider) InitPlayers(ownId game.PlayerId, names map[game.PlayerId]string, rematch bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ownId = ownId
	d.names = names
}

func (d *RandomDecider) ReceiveInfo(info string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	log.Debug().Str("player", d.names[d.ownId]).Msg(info)
}

func (d *RandomDecider) SetState(state game.PublicGameState, own game.PlayerState) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state = state
	d.own = own
}

func (d *RandomDecider) ChooseTickets(options bag.Bag[*game.Ticket], minimum int, answer func(bag.Bag[*game.Ticket])) {
	d.mu.Lock()
	tickets := options.ToSlice()
	d.rng.Shuffle(len(tickets), func(i, j int) {
		tickets[i], tickets[j] = tickets[j], tickets[i]
	})
	keep := minimum + d.rng.Intn(len(tickets)-minimum+1)
	d.mu.Unlock()

	go answer(bag.Of(tickets[:keep]...))
}

func (d *RandomDecider) StartTurn(handlers TurnHandlers) {
	d.mu.Lock()
	defer d.mu.Unlock()

	claimable := game.ClaimableRoutes(d.routes, d.state, d.own)
	switch {
	case len(claimable) > 0:
		route := claimable[d.rng.Intn(len(claimable))]
		options := d.own.PossibleClaimCards(route)
		cards := options[d.rng.Intn(len(options))]
		go handlers.ClaimRoute(route, cards)
	case d.state.CanDrawCards() && (!d.state.CanDrawTickets() || d.rng.Intn(10) > 0):
		slot := d.rng.Intn(meta.FACE_UP_CARDS_COUNT+1) - 1
		go handlers.DrawCard(slot)
	default:
		go handlers.DrawTickets()
	}
}

func (d *RandomDecider) DrawCard(answer func(slot int)) {
	d.mu.Lock()
	slot := d.rng.Intn(meta.FACE_UP_CARDS_COUNT+1) - 1
	d.mu.Unlock()

	go answer(slot)
}

func (d *RandomDecider) ChooseAdditionalCards(options []bag.Bag[game.Card], answer func(bag.Bag[game.Card])) {
	d.mu.Lock()
	choice := d.rng.Intn(len(options) + 1)
	d.mu.Unlock()

	if choice == len(options) {
		go answer(bag.Bag[game.Card]{})
		return
	}
	go answer(options[choice])
}

func (d *RandomDecider) AskForRematch(answer func(bool)) {
	d.mu.Lock()
	again := d.rematch
	d.mu.Unlock()

	go answer(again)
}
