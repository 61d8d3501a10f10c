package engine

import (
	"errors"
	"fmt"
	"railway/bag"
	"railway/experiments/metrics"
	"railway/game"
	"railway/meta"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// ErrIllegalChoice is returned when a player answers with an action the
// current state does not allow.
var ErrIllegalChoice = errors.New("illegal choice")

type Option func(e *Engine)

// WithRand sets the random source used to shuffle and pick the first player.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		if rng != nil {
			e.rng = rng
		}
	}
}

func WithCollector(collector metrics.Collector) Option {
	return func(e *Engine) {
		if collector != nil {
			e.collector = collector
		}
	}
}

// WithMaxTurns stops a game after the given number of turns.
func WithMaxTurns(turns int) Option {
	return func(e *Engine) {
		if turns > 0 {
			e.maxTurns = turns
		}
	}
}

// Result summarizes a finished game.
type Result struct {
	ID     string
	Points map[game.PlayerId]int
	Trails map[game.PlayerId]game.Trail
	Winner game.PlayerId
	Draw   bool
	Turns  int
	Metric metrics.GameMetric
}

// Engine runs games between two players. It owns the game state and is the
// only one to change it.
type Engine struct {
	players   map[game.PlayerId]game.Player
	names     map[game.PlayerId]string
	infos     map[game.PlayerId]Info
	board     *game.Map
	rng       *rand.Rand
	collector metrics.Collector
	maxTurns  int
	state     game.GameState
	log       zerolog.Logger
}

func NewEngine(players map[game.PlayerId]game.Player, names map[game.PlayerId]string, board *game.Map, options ...Option) *Engine {
	if len(players) != len(game.PlayerIds) || len(names) != len(game.PlayerIds) {
		panic(fmt.Sprintf("need exactly %d players and names", len(game.PlayerIds)))
	}

	e := &Engine{
		players:   players,
		names:     names,
		infos:     make(map[game.PlayerId]Info, len(names)),
		board:     board,
		rng:       rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		collector: metrics.NewDummyCollector(),
		maxTurns:  meta.MAX_TURNS,
		log:       log.Logger,
	}
	for id, name := range names {
		e.infos[id] = NewInfo(name)
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// State returns the current game state.
func (e *Engine) State() game.GameState {
	return e.state
}

// Play runs games until one of the players declines a rematch.
func (e *Engine) Play() ([]Result, error) {
	var results []Result
	rematch := false
	for {
		result, err := e.PlayOnce(rematch)
		if err != nil {
			return results, err
		}
		results = append(results, result)

		again, err := e.askForRematch()
		if err != nil || !again {
			return results, err
		}
		e.log.Info().Msg("both players accepted a rematch")
		rematch = true
		e.rng = rand.New(rand.NewSource(e.rng.Uint64()))
	}
}

func recoverFailure(err *error) {
	if r := recover(); r != nil {
		if failure, ok := r.(error); ok && (errors.Is(failure, game.ErrPlayerFailure) || errors.Is(failure, ErrIllegalChoice)) {
			*err = failure
			return
		}
		panic(r)
	}
}

func (e *Engine) askForRematch() (again bool, err error) {
	defer recoverFailure(&err)
	for _, id := range game.PlayerIds {
		e.players[id].AskForRematch()
	}
	again = true
	for _, id := range game.PlayerIds {
		if !e.players[id].RematchResponse() {
			again = false
		}
	}
	return again, nil
}

// PlayOnce plays a single game from setup to scoring.
func (e *Engine) PlayOnce(rematch bool) (result Result, err error) {
	defer recoverFailure(&err)

	id := uuid.NewString()
	e.log = log.With().Str("game", id).Logger()

	for _, pid := range game.PlayerIds {
		e.players[pid].InitPlayers(pid, e.names, rematch)
	}
	e.state = game.InitialGameState(e.board.TicketsBag(), e.rng)
	first := e.state.CurrentPlayerId()
	e.collector.Start(id, int(first), rematch)
	e.log.Info().Msgf("%s is starting", e.names[first])
	e.broadcast(e.infos[first].WillPlayFirst())

	e.chooseInitialTickets()
	turns := e.playTurns()

	result = e.score(id)
	result.Turns = turns
	return result, nil
}

// playTurns plays until the last player has had their final turn and
// returns the number of turns played.
func (e *Engine) playTurns() int {
	turns := 0
	for {
		if turns >= e.maxTurns {
			e.log.Warn().Msgf("stopping after %d turns", turns)
			break
		}
		if !e.canAct() {
			e.log.Warn().Msgf("%s has no legal action left, stopping", e.names[e.state.CurrentPlayerId()])
			break
		}
		player := e.state.CurrentPlayerId()
		_, wasLast := e.state.LastPlayer()
		e.playTurn()
		turns++

		last, isLast := e.state.LastPlayer()
		if wasLast && isLast && last == player {
			break
		}
	}
	return turns
}

func (e *Engine) canAct() bool {
	if e.state.CanDrawTickets() || e.state.CanDrawCards() {
		return true
	}
	return len(game.ClaimableRoutes(e.board.Routes(), e.state.Public(), e.state.CurrentPlayerState())) > 0
}

func (e *Engine) broadcast(info string) {
	for _, id := range game.PlayerIds {
		e.players[id].ReceiveInfo(info)
	}
}

func (e *Engine) updateAllStates() {
	public := e.state.Public()
	for _, id := range game.PlayerIds {
		e.players[id].UpdateState(public, e.state.PlayerState(id))
	}
}

func (e *Engine) require(cond bool, format string, args ...any) {
	if !cond {
		err := fmt.Errorf("%w: %s", ErrIllegalChoice, fmt.Sprintf(format, args...))
		e.log.Error().Err(err).Msg("player broke the rules")
		panic(err)
	}
}

func (e *Engine) chooseInitialTickets() {
	offered := make(map[game.PlayerId]bag.Bag[*game.Ticket], len(game.PlayerIds))
	for _, id := range game.PlayerIds {
		offered[id] = e.state.TopTickets(meta.INITIAL_TICKETS_COUNT)
		e.state = e.state.WithoutTopTickets(meta.INITIAL_TICKETS_COUNT)
		e.players[id].SetInitialTicketChoice(offered[id])
	}

	for _, id := range game.PlayerIds {
		e.broadcast(e.infos[id].DrewTickets(meta.INITIAL_TICKETS_COUNT))
		e.updateAllStates()
		chosen := e.players[id].ChooseInitialTickets()
		e.requireTickets(offered[id], chosen)
		e.state = e.state.WithInitiallyChosenTickets(id, chosen)
	}

	for _, id := range game.PlayerIds {
		e.broadcast(e.infos[id].KeptTickets(e.state.PlayerState(id).TicketCount()))
	}
}

func (e *Engine) requireTickets(offered, chosen bag.Bag[*game.Ticket]) {
	minimum := offered.Size() - meta.DISCARDABLE_TICKETS_COUNT
	e.require(offered.Contains(chosen), "chose tickets %s out of %s", chosen, offered)
	e.require(chosen.Size() >= minimum, "kept %d tickets, need at least %d", chosen.Size(), minimum)
}

func (e *Engine) playTurn() {
	id := e.state.CurrentPlayerId()
	info := e.infos[id]
	player := e.players[id]

	e.broadcast(info.CanPlay())
	e.updateAllStates()

	kind := player.NextTurn()
	e.log.Info().Msgf("%s plays %s", e.names[id], kind)
	e.collector.AddTurn(int(id), kind.String())

	switch kind {
	case game.DrawTickets:
		e.drawTickets(info, player)
	case game.DrawCards:
		e.drawCards(info, player)
	case game.ClaimRoute:
		e.claimRoute(info, player)
	default:
		e.require(false, "unknown turn kind %d", kind)
	}

	if e.state.LastTurnBegins() {
		cars := e.state.CurrentPlayerState().CarCount()
		e.log.Info().Msgf("%s has %d cars left, last turn begins", e.names[id], cars)
		e.broadcast(info.LastTurnBegins(cars))
	}
	e.state = e.state.ForNextTurn()
	e.updateAllStates()
}

func (e *Engine) drawTickets(info Info, player game.Player) {
	e.require(e.state.CanDrawTickets(), "no tickets left")
	count := min(meta.IN_GAME_TICKETS_COUNT, e.state.TicketsCount())
	drawn := e.state.TopTickets(count)
	e.broadcast(info.DrewTickets(count))

	chosen := player.ChooseTickets(drawn)
	e.require(drawn.Contains(chosen), "chose tickets %s out of %s", chosen, drawn)
	e.require(chosen.Size() >= 1, "kept no ticket")
	e.state = e.state.WithChosenAdditionalTickets(drawn, chosen)
	e.broadcast(info.KeptTickets(chosen.Size()))
}

func (e *Engine) drawCards(info Info, player game.Player) {
	e.require(e.state.CanDrawCards(), "not enough cards to draw")
	for i := 0; i < 2; i++ {
		if i > 0 {
			e.updateAllStates()
		}
		slot := player.DrawSlot()
		e.state = e.state.WithCardsDeckRecreatedIfNeeded(e.rng)
		if slot == meta.DECK_SLOT {
			e.state = e.state.WithBlindlyDrawnCard()
			e.broadcast(info.DrewBlindCard())
			e.log.Debug().Msg("drew a card from the pile")
			continue
		}
		e.require(slot >= 0 && slot < meta.FACE_UP_CARDS_COUNT, "slot %d does not exist", slot)
		card := e.state.CardState().FaceUpCard(slot)
		e.state = e.state.WithDrawnFaceUpCard(slot)
		e.broadcast(info.DrewVisibleCard(card))
		e.log.Debug().Msgf("drew face-up card %s", card)
	}
}

func containsBag(options []bag.Bag[game.Card], cards bag.Bag[game.Card]) bool {
	for _, o := range options {
		if o.Equal(cards) {
			return true
		}
	}
	return false
}

func (e *Engine) claimRoute(info Info, player game.Player) {
	route := player.ClaimedRoute()
	initialCards := player.InitialClaimCards()

	e.require(route != nil, "no route named")
	_, known := e.board.RouteByID(route.ID)
	e.require(known, "unknown route %s", route.ID)
	e.require(!containsRoute(e.state.ClaimedRoutes(), route), "route %s is already claimed", route.ID)
	current := e.state.CurrentPlayerState()
	e.require(current.CarCount() >= route.Length, "not enough cars for route %s", route.ID)
	e.require(containsBag(current.PossibleClaimCards(route), initialCards),
		"cannot claim route %s with %s", route.ID, initialCards)

	if route.Level == game.Overground {
		e.claim(info, route, initialCards)
		return
	}

	e.broadcast(info.AttemptsTunnelClaim(route, initialCards))
	builder := bag.NewBuilder[game.Card]()
	for i := 0; i < meta.ADDITIONAL_TUNNEL_CARDS; i++ {
		e.state = e.state.WithCardsDeckRecreatedIfNeeded(e.rng)
		if e.state.CardState().IsDeckEmpty() {
			break
		}
		builder.Add(e.state.TopCard())
		e.state = e.state.WithoutTopCard()
	}
	drawn := builder.Build()

	additional := route.AdditionalClaimCardsCount(initialCards, drawn)
	e.broadcast(info.DrewAdditionalCards(drawn, additional))
	e.state = e.state.WithMoreDiscardedCards(drawn)

	if additional == 0 {
		e.claim(info, route, initialCards)
		return
	}

	options := e.state.CurrentPlayerState().PossibleAdditionalCards(additional, initialCards)
	if len(options) == 0 {
		e.log.Info().Msgf("%s cannot pay for tunnel %s", e.names[e.state.CurrentPlayerId()], route.ID)
		e.broadcast(info.DidNotClaimRoute(route))
		return
	}

	chosen := player.ChooseAdditionalCards(options)
	if chosen.IsEmpty() {
		e.broadcast(info.DidNotClaimRoute(route))
		return
	}
	e.require(containsBag(options, chosen), "additional cards %s were not offered", chosen)
	e.claim(info, route, initialCards.Union(chosen))
}

func containsRoute(routes []*game.Route, route *game.Route) bool {
	for _, r := range routes {
		if r.ID == route.ID {
			return true
		}
	}
	return false
}

func (e *Engine) claim(info Info, route *game.Route, cards bag.Bag[game.Card]) {
	e.state = e.state.WithClaimedRoute(route, cards)
	e.log.Info().Msgf("%s claimed %s with %s", e.names[e.state.CurrentPlayerId()], route.ID, cards)
	e.broadcast(info.ClaimedRoute(route, cards))
}

func (e *Engine) score(id string) Result {
	e.updateAllStates()

	result := Result{
		ID:     id,
		Points: make(map[game.PlayerId]int, len(game.PlayerIds)),
		Trails: make(map[game.PlayerId]game.Trail, len(game.PlayerIds)),
	}
	for _, pid := range game.PlayerIds {
		ps := e.state.PlayerState(pid)
		result.Points[pid] = ps.FinalPoints()
		result.Trails[pid] = game.Longest(ps.Routes())
		for ticket, points := range ps.TicketValues() {
			e.log.Debug().Str("player", e.names[pid]).Str("ticket", ticket.Text()).Int("points", points).Msg("ticket scored")
		}
	}

	p1, p2 := game.PlayerIds[0], game.PlayerIds[1]
	longest := max(result.Trails[p1].Length(), result.Trails[p2].Length())
	for _, pid := range game.PlayerIds {
		if result.Trails[pid].Length() == longest {
			result.Points[pid] += meta.LONGEST_TRAIL_BONUS_POINTS
			e.broadcast(e.infos[pid].GetsLongestTrailBonus(result.Trails[pid]))
		}
	}

	winner := ""
	switch {
	case result.Points[p1] > result.Points[p2]:
		result.Winner = p1
		e.broadcast(e.infos[p1].Won(result.Points[p1], result.Points[p2]))
	case result.Points[p2] > result.Points[p1]:
		result.Winner = p2
		e.broadcast(e.infos[p2].Won(result.Points[p2], result.Points[p1]))
	default:
		result.Draw = true
		e.broadcast(Draw([]string{e.names[p1], e.names[p2]}, result.Points[p1]))
	}
	if !result.Draw {
		winner = e.names[result.Winner]
	}

	e.log.Info().
		Int("points1", result.Points[p1]).
		Int("points2", result.Points[p2]).
		Str("winner", winner).
		Msg("game over")

	result.Metric = e.collector.Complete(winner,
		[2]int{result.Points[p1], result.Points[p2]},
		[2]int{result.Trails[p1].Length(), result.Trails[p2].Length()})
	return result
}
