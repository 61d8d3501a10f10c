package game

import (
	"railway/meta"
	"railway/utils"
)

type PlayerId int

const (
	Player1 PlayerId = iota
	Player2
)

var PlayerIds = []PlayerId{Player1, Player2}

func (p PlayerId) Next() PlayerId {
	return PlayerIds[(int(p)+1)%len(PlayerIds)]
}

func (p PlayerId) String() string {
	if p == Player1 {
		return "PLAYER_1"
	}
	return "PLAYER_2"
}

// PublicGameState is the part of the game state both players may see.
type PublicGameState struct {
	ticketsCount    int
	cardState       PublicCardState
	currentPlayerId PlayerId
	playerStates    map[PlayerId]PublicPlayerState
	lastPlayer      *PlayerId
}

// NewPublicGameState builds a public view. lastPlayer is nil until the last
// turn has begun.
func NewPublicGameState(ticketsCount int, cardState PublicCardState, currentPlayerId PlayerId,
	playerStates map[PlayerId]PublicPlayerState, lastPlayer *PlayerId) PublicGameState {
	utils.CheckArgument(ticketsCount >= 0, "negative tickets count %d", ticketsCount)
	utils.CheckArgument(len(playerStates) == len(PlayerIds), "expected %d player states, got %d",
		len(PlayerIds), len(playerStates))
	states := make(map[PlayerId]PublicPlayerState, len(playerStates))
	for id, s := range playerStates {
		states[id] = s
	}
	var last *PlayerId
	if lastPlayer != nil {
		id := *lastPlayer
		last = &id
	}
	return PublicGameState{
		ticketsCount:    ticketsCount,
		cardState:       cardState,
		currentPlayerId: currentPlayerId,
		playerStates:    states,
		lastPlayer:      last,
	}
}

func (s PublicGameState) TicketsCount() int {
	return s.ticketsCount
}

func (s PublicGameState) CanDrawTickets() bool {
	return s.ticketsCount > 0
}

func (s PublicGameState) CardState() PublicCardState {
	return s.cardState
}

// CanDrawCards reports whether enough cards remain in the pile and the
// discards for two draws to refill the face-up cards.
func (s PublicGameState) CanDrawCards() bool {
	return s.cardState.DeckSize()+s.cardState.DiscardsSize() >= meta.FACE_UP_CARDS_COUNT
}

func (s PublicGameState) CurrentPlayerId() PlayerId {
	return s.currentPlayerId
}

func (s PublicGameState) PlayerState(id PlayerId) PublicPlayerState {
	return s.playerStates[id]
}

func (s PublicGameState) CurrentPlayerState() PublicPlayerState {
	return s.playerStates[s.currentPlayerId]
}

// ClaimedRoutes returns the routes claimed by either player.
func (s PublicGameState) ClaimedRoutes() []*Route {
	var routes []*Route
	for _, id := range PlayerIds {
		routes = append(routes, s.playerStates[id].Routes()...)
	}
	return routes
}

// LastPlayer returns the player who plays the last turn, once known.
func (s PublicGameState) LastPlayer() (PlayerId, bool) {
	if s.lastPlayer == nil {
		return 0, false
	}
	return *s.lastPlayer, true
}

// ClaimableRoutes lists the routes out of routes that nobody holds yet and
// that own could claim right now.
func ClaimableRoutes(routes []*Route, state PublicGameState, own PlayerState) []*Route {
	claimed := make(map[string]bool)
	for _, r := range state.ClaimedRoutes() {
		claimed[r.ID] = true
	}
	var claimable []*Route
	for _, r := range routes {
		if !claimed[r.ID] && own.CanClaimRoute(r) {
			claimable = append(claimable, r)
		}
	}
	return claimable
}
