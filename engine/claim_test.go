package engine

import (
	"bytes"
	"railway/bag"
	"railway/game"
	"railway/meta"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
)

// scriptedPlayer answers from fixed values and records what it was asked.
type scriptedPlayer struct {
	id      game.PlayerId
	turns   *[]game.PlayerId
	kinds   []game.TurnKind
	route   *game.Route
	initial bag.Bag[game.Card]
	pay     bag.Bag[game.Card]
	offered [][]bag.Bag[game.Card]
}

func (p *scriptedPlayer) InitPlayers(ownId game.PlayerId, names map[game.PlayerId]string, rematch bool) {}
func (p *scriptedPlayer) ReceiveInfo(info string) {}
func (p *scriptedPlayer) UpdateState(state game.PublicGameState, own game.PlayerState) {}
func (p *scriptedPlayer) SetInitialTicketChoice(tickets bag.Bag[*game.Ticket]) {}

func (p *scriptedPlayer) ChooseInitialTickets() bag.Bag[*game.Ticket] {
	return bag.Bag[*game.Ticket]{}
}

func (p *scriptedPlayer) NextTurn() game.TurnKind {
	if p.turns != nil {
		*p.turns = append(*p.turns, p.id)
	}
	kind := p.kinds[0]
	if len(p.kinds) > 1 {
		p.kinds = p.kinds[1:]
	}
	return kind
}

func (p *scriptedPlayer) ChooseTickets(options bag.Bag[*game.Ticket]) bag.Bag[*game.Ticket] {
	return bag.Of(options.Get(0))
}

func (p *scriptedPlayer) DrawSlot() int {
	return meta.DECK_SLOT
}

func (p *scriptedPlayer) ClaimedRoute() *game.Route {
	return p.route
}

func (p *scriptedPlayer) InitialClaimCards() bag.Bag[game.Card] {
	return p.initial
}

func (p *scriptedPlayer) ChooseAdditionalCards(options []bag.Bag[game.Card]) bag.Bag[game.Card] {
	p.offered = append(p.offered, options)
	return p.pay
}

func (p *scriptedPlayer) AskForRematch() {}

func (p *scriptedPlayer) RematchResponse() bool {
	return false
}

func route(t *testing.T, id string) *game.Route {
	r, ok := game.DefaultMap().RouteByID(id)
	require.True(t, ok, id)
	return r
}

// tableState returns a state where the current player holds exactly hand and
// the card pile will reveal exactly pile, in some order. The opponent holds
// every other card and the current player owns GEN_FRA_1, used to get rid
// of the initial hand.
func tableState(t *testing.T, hand, pile bag.Bag[game.Card]) game.GameState {
	rng := rand.New(rand.NewSource(2))
	s := game.InitialGameState(game.DefaultMap().TicketsBag(), rand.New(rand.NewSource(1)))
	s = s.WithClaimedRoute(route(t, "GEN_FRA_1"), s.CurrentPlayerState().Cards())

	s = s.ForNextTurn()
	for {
		s = s.WithCardsDeckRecreatedIfNeeded(rng)
		if s.CardState().IsDeckEmpty() {
			break
		}
		s = s.WithBlindlyDrawnCard()
	}
	s = s.ForNextTurn()

	for _, c := range hand.ToSlice() {
		s = s.WithMoreDiscardedCards(bag.Of(c)).WithCardsDeckRecreatedIfNeeded(rng).WithBlindlyDrawnCard()
	}
	s = s.WithMoreDiscardedCards(pile)

	require.True(t, hand.Equal(s.CurrentPlayerState().Cards()))
	require.True(t, s.CardState().IsDeckEmpty())
	require.Equal(t, pile.Size(), s.CardState().DiscardsSize())
	return s
}

// claimTunnel has the current player of s claim BEL_LUG_1, a red tunnel of
// length one, with initial and pay.
func claimTunnel(t *testing.T, s game.GameState, initial, pay bag.Bag[game.Card]) (*Engine, *scriptedPlayer) {
	id := s.CurrentPlayerId()
	claimer := &scriptedPlayer{id: id, route: route(t, "BEL_LUG_1"), initial: initial, pay: pay}
	players := map[game.PlayerId]game.Player{
		id:        claimer,
		id.Next(): &scriptedPlayer{id: id.Next()},
	}
	e := NewEngine(players, names, game.DefaultMap(), WithRand(rand.New(rand.NewSource(3))))
	e.state = s
	e.claimRoute(e.infos[id], claimer)
	return e, claimer
}

func TestTunnelClaims(t *testing.T) {
	tunnel := route(t, "BEL_LUG_1")
	red := bag.Of(game.RedCard)

	t.Run("no matching card claims with the initial cards only", func(t *testing.T) {
		s := tableState(t, red, bag.Of(game.BlueCard, game.GreenCard, game.WhiteCard))
		e, claimer := claimTunnel(t, s, red, bag.Bag[game.Card]{})

		own := e.state.CurrentPlayerState()
		require.True(t, containsRoute(own.Routes(), tunnel))
		require.True(t, own.Cards().IsEmpty())
		require.Equal(t, 4, e.state.CardState().DiscardsSize())
		require.Empty(t, claimer.offered)
	})

	t.Run("a hand unable to pay loses the claim and the revealed cards are discarded", func(t *testing.T) {
		hand := bag.Of(game.RedCard, game.BlueCard)
		s := tableState(t, hand, bag.Of(game.Locomotive, game.RedCard, game.GreenCard))
		e, claimer := claimTunnel(t, s, red, bag.Bag[game.Card]{})

		own := e.state.CurrentPlayerState()
		require.False(t, containsRoute(own.Routes(), tunnel))
		require.True(t, hand.Equal(own.Cards()))
		require.Equal(t, 3, e.state.CardState().DiscardsSize())
		require.Empty(t, claimer.offered, "No option should be offered")
	})

	t.Run("giving up keeps the initial cards in hand", func(t *testing.T) {
		hand := bag.Of(game.RedCard, game.RedCard, game.Locomotive)
		s := tableState(t, hand, bag.Of(game.RedCard, game.BlueCard, game.GreenCard))
		e, claimer := claimTunnel(t, s, red, bag.Bag[game.Card]{})

		own := e.state.CurrentPlayerState()
		require.False(t, containsRoute(own.Routes(), tunnel))
		require.True(t, hand.Equal(own.Cards()))
		require.Equal(t, 3, e.state.CardState().DiscardsSize())
		require.Len(t, claimer.offered, 1)
		require.Len(t, claimer.offered[0], 2)
		require.True(t, red.Equal(claimer.offered[0][0]), "Options should start with the fewest locomotives")
		require.True(t, bag.Of(game.Locomotive).Equal(claimer.offered[0][1]))
	})

	t.Run("paying an option discards initial and additional cards", func(t *testing.T) {
		hand := bag.Of(game.RedCard, game.RedCard, game.Locomotive)
		s := tableState(t, hand, bag.Of(game.RedCard, game.BlueCard, game.GreenCard))
		e, _ := claimTunnel(t, s, red, bag.Of(game.Locomotive))

		own := e.state.CurrentPlayerState()
		require.True(t, containsRoute(own.Routes(), tunnel))
		require.True(t, red.Equal(own.Cards()))
		require.Equal(t, 5, e.state.CardState().DiscardsSize())
	})

	t.Run("an exhausted pile still charges for the cards it reveals", func(t *testing.T) {
		hand := bag.Of(game.RedCard, game.Locomotive, game.Locomotive)
		s := tableState(t, hand, bag.Of(game.Locomotive, game.Locomotive))
		e, claimer := claimTunnel(t, s, red, bag.Of(game.Locomotive, game.Locomotive))

		require.Len(t, claimer.offered, 1)
		require.Equal(t, []bag.Bag[game.Card]{bag.Of(game.Locomotive, game.Locomotive)}, claimer.offered[0])
		own := e.state.CurrentPlayerState()
		require.True(t, containsRoute(own.Routes(), tunnel))
		require.True(t, own.Cards().IsEmpty())
		require.Equal(t, 5, e.state.CardState().DiscardsSize())
	})
}

func TestLastTurns(t *testing.T) {
	board := game.DefaultMap()
	target := route(t, "GEN_FRA_1")
	s := game.InitialGameState(board.TicketsBag(), rand.New(rand.NewSource(5)))

	routes := slices.Clone(board.Routes())
	slices.SortStableFunc(routes, func(a, b *game.Route) int { return b.Length - a.Length })
	for _, r := range routes {
		if r != target && r.Length <= s.CurrentPlayerState().CarCount()-3 {
			s = s.WithClaimedRoute(r, bag.Bag[game.Card]{})
		}
	}
	require.Equal(t, 3, s.CurrentPlayerState().CarCount())

	var card game.Card
	found := false
	for _, c := range s.CurrentPlayerState().Cards().Distinct() {
		if c != game.Locomotive {
			card, found = c, true
			break
		}
	}
	require.True(t, found, "The initial hand should hold a car card")

	first := s.CurrentPlayerId()
	var turns []game.PlayerId
	players := map[game.PlayerId]game.Player{
		first: &scriptedPlayer{id: first, turns: &turns, route: target, initial: bag.Of(card),
			kinds: []game.TurnKind{game.ClaimRoute, game.DrawCards}},
		first.Next(): &scriptedPlayer{id: first.Next(), turns: &turns, kinds: []game.TurnKind{game.DrawCards}},
	}
	e := NewEngine(players, names, board, WithRand(rand.New(rand.NewSource(6))))
	e.state = s

	played := e.playTurns()

	t.Run("the trigger gives each player one more turn", func(t *testing.T) {
		require.Equal(t, 3, played)
		require.Equal(t, []game.PlayerId{first, first.Next(), first}, turns)
		after := map[game.PlayerId]int{}
		for _, id := range turns[1:] {
			after[id]++
		}
		require.Equal(t, 1, after[first])
		require.Equal(t, 1, after[first.Next()])
	})

	t.Run("the player who triggered it is the last player", func(t *testing.T) {
		last, ok := e.state.LastPlayer()
		require.True(t, ok)
		require.Equal(t, first, last)
		require.Equal(t, 2, e.state.PlayerState(first).CarCount())
		require.True(t, containsRoute(e.state.PlayerState(first).Routes(), target))
	})
}

func TestScoreLogsTicketValues(t *testing.T) {
	var buf bytes.Buffer
	saved := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	defer func() { log.Logger = saved }()

	e := NewEngine(asPlayers(botPlayers(40)), names, game.DefaultMap(), WithRand(rand.New(rand.NewSource(4))))
	_, err := e.PlayOnce(false)
	require.NoError(t, err)

	t.Run("every kept ticket is logged with its value", func(t *testing.T) {
		kept := 0
		for _, id := range game.PlayerIds {
			kept += e.State().PlayerState(id).TicketCount()
		}
		require.Positive(t, kept)
		require.Equal(t, kept, bytes.Count(buf.Bytes(), []byte(`"message":"ticket scored"`)))
	})
}
