package game

import (
	"errors"
	"railway/bag"
	"railway/utils"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPublicPlayerState(t *testing.T) {
	t.Run("derives cars and claim points from routes", func(t *testing.T) {
		routes := []*Route{
			NewRoute("A", berne, lucerne, 4, Overground, NoColor),
			NewRoute("B", lucerne, zurich, 1, Overground, Red),
		}
		s := NewPublicPlayerState(2, 3, routes)
		require.Equal(t, 35, s.CarCount())
		require.Equal(t, 8, s.ClaimPoints())
	})
}

func TestPlayerStateClaims(t *testing.T) {
	route := NewRoute("A", berne, lucerne, 2, Overground, Red)

	t.Run("initial state needs four cards", func(t *testing.T) {
		require.True(t, errors.Is(recoverError(func() { InitialPlayerState(cards(RedCard)) }), utils.ErrInvalidArgument))
		s := InitialPlayerState(cards(RedCard, RedCard, BlueCard, Locomotive))
		require.Equal(t, 4, s.CardCount())
		require.Equal(t, 40, s.CarCount())
	})

	t.Run("can claim when the hand covers an option", func(t *testing.T) {
		s := InitialPlayerState(cards(RedCard, RedCard, BlueCard, Locomotive))
		require.True(t, s.CanClaimRoute(route))
		options := s.PossibleClaimCards(route)
		require.Equal(t, 1, len(options))
		require.True(t, options[0].Equal(cards(RedCard, RedCard)))
	})

	t.Run("cannot claim without matching cards", func(t *testing.T) {
		s := InitialPlayerState(cards(RedCard, BlueCard, BlueCard, Locomotive))
		require.False(t, s.CanClaimRoute(route))
		require.Empty(t, s.PossibleClaimCards(route))
	})

	t.Run("cannot claim without enough cars", func(t *testing.T) {
		var routes []*Route
		for i := 0; i < 6; i++ {
			routes = append(routes, NewRoute("L", lausanne, fribourg, 6, Overground, NoColor))
		}
		routes = append(routes, NewRoute("S", lausanne, fribourg, 3, Overground, NoColor))
		s := NewPlayerState(bag.Bag[*Ticket]{}, cards(RedCard, RedCard, RedCard), routes)
		require.Equal(t, 1, s.CarCount())
		require.False(t, s.CanClaimRoute(route))
		require.True(t, errors.Is(recoverError(func() { s.PossibleClaimCards(route) }), utils.ErrInvalidArgument))
	})

	t.Run("claiming removes the cards and records the route", func(t *testing.T) {
		s := InitialPlayerState(cards(RedCard, RedCard, BlueCard, Locomotive))
		next := s.WithClaimedRoute(route, cards(RedCard, RedCard))
		require.True(t, next.Cards().Equal(cards(BlueCard, Locomotive)))
		require.Equal(t, []*Route{route}, next.Routes())
		require.Equal(t, 38, next.CarCount())
		require.Equal(t, 4, s.CardCount(), "Original state should not change")
	})

	t.Run("claiming with cards outside the hand fails fast", func(t *testing.T) {
		s := InitialPlayerState(cards(RedCard, BlueCard, BlueCard, Locomotive))
		err := recoverError(func() { s.WithClaimedRoute(route, cards(RedCard, RedCard)) })
		require.True(t, errors.Is(err, utils.ErrInvalidArgument))
	})
}

func TestPossibleAdditionalCards(t *testing.T) {
	t.Run("pool holds matching colors and locomotives", func(t *testing.T) {
		hand := cards(GreenCard, GreenCard, GreenCard, Locomotive, Locomotive, BlueCard, BlueCard)
		s := NewPlayerState(bag.Bag[*Ticket]{}, hand, nil)
		options := s.PossibleAdditionalCards(2, cards(GreenCard))
		require.Equal(t, 3, len(options))
		require.True(t, options[0].Equal(cards(GreenCard, GreenCard)))
		require.True(t, options[1].Equal(cards(GreenCard, Locomotive)))
		require.True(t, options[2].Equal(cards(Locomotive, Locomotive)))
	})

	t.Run("empty when the pool is too small", func(t *testing.T) {
		s := NewPlayerState(bag.Bag[*Ticket]{}, cards(GreenCard, GreenCard, BlueCard), nil)
		require.Empty(t, s.PossibleAdditionalCards(2, cards(GreenCard)))
	})

	t.Run("checks its arguments", func(t *testing.T) {
		s := NewPlayerState(bag.Bag[*Ticket]{}, cards(GreenCard, GreenCard), nil)
		require.True(t, errors.Is(recoverError(func() { s.PossibleAdditionalCards(0, cards(GreenCard)) }), utils.ErrInvalidArgument))
		require.True(t, errors.Is(recoverError(func() { s.PossibleAdditionalCards(4, cards(GreenCard)) }), utils.ErrInvalidArgument))
		require.True(t, errors.Is(recoverError(func() { s.PossibleAdditionalCards(1, bag.Bag[Card]{}) }), utils.ErrInvalidArgument))
		require.True(t, errors.Is(recoverError(func() { s.PossibleAdditionalCards(1, cards(GreenCard, RedCard, BlueCard)) }), utils.ErrInvalidArgument))
	})
}

func TestTicketPointsOfPlayer(t *testing.T) {
	toLucerne := NewTicket([]Trip{NewTrip(berne, lucerne, 5)})
	toZurich := NewTicket([]Trip{NewTrip(lausanne, zurich, 9)})
	routes := []*Route{
		NewRoute("A", berne, interlak, 3, Overground, Blue),
		NewRoute("B", interlak, lucerne, 4, Overground, Violet),
	}
	s := NewPlayerState(bag.Of(toLucerne, toZurich), bag.Bag[Card]{}, routes)

	t.Run("connected tickets gain and others lose", func(t *testing.T) {
		require.Equal(t, 5-9, s.TicketPoints())
		values := s.TicketValues()
		require.Equal(t, 5, values[toLucerne])
		require.Equal(t, -9, values[toZurich])
	})

	t.Run("final points add claim points", func(t *testing.T) {
		require.Equal(t, 4+7-4, s.FinalPoints())
	})

	t.Run("no routes means every ticket loses", func(t *testing.T) {
		empty := NewPlayerState(bag.Of(toLucerne), bag.Bag[Card]{}, nil)
		require.Equal(t, -5, empty.TicketPoints())
	})
}
