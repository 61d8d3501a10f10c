package game

import (
	"errors"
	"railway/bag"
	"railway/utils"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRoute(t *testing.T) {
	t.Run("rejects a route joining a station to itself", func(t *testing.T) {
		err := recoverError(func() { NewRoute("X", berne, berne, 2, Overground, Red) })
		require.True(t, errors.Is(err, utils.ErrInvalidArgument))
	})

	t.Run("rejects lengths out of bounds", func(t *testing.T) {
		require.True(t, errors.Is(recoverError(func() { NewRoute("X", berne, lucerne, 0, Overground, Red) }), utils.ErrInvalidArgument))
		require.True(t, errors.Is(recoverError(func() { NewRoute("X", berne, lucerne, 7, Overground, Red) }), utils.ErrInvalidArgument))
	})

	t.Run("opposite station", func(t *testing.T) {
		r := NewRoute("X", berne, lucerne, 4, Overground, NoColor)
		require.Equal(t, lucerne, r.StationOpposite(berne))
		require.Equal(t, berne, r.StationOpposite(lucerne))
		require.True(t, errors.Is(recoverError(func() { r.StationOpposite(zurich) }), utils.ErrInvalidArgument))
	})

	t.Run("claim points follow the table", func(t *testing.T) {
		want := []int{1, 2, 4, 7, 10, 15}
		for length := 1; length <= 6; length++ {
			require.Equal(t, want[length-1], NewRoute("X", berne, lucerne, length, Overground, NoColor).ClaimPoints())
		}
	})
}

func TestPossibleClaimCards(t *testing.T) {
	t.Run("colored surface route", func(t *testing.T) {
		r := NewRoute("X", berne, lucerne, 2, Overground, Red)
		options := r.PossibleClaimCards()
		require.Equal(t, 1, len(options))
		require.True(t, options[0].Equal(cards(RedCard, RedCard)))
	})

	t.Run("neutral surface route offers every color", func(t *testing.T) {
		r := NewRoute("X", berne, lucerne, 3, Overground, NoColor)
		options := r.PossibleClaimCards()
		require.Equal(t, len(Colors), len(options))
		for i, c := range Colors {
			require.True(t, options[i].Equal(bag.OfN(3, CardOf(c))))
		}
	})

	t.Run("colored tunnel adds locomotives", func(t *testing.T) {
		r := NewRoute("X", berne, lucerne, 2, Underground, Blue)
		options := r.PossibleClaimCards()
		require.Equal(t, 3, len(options))
		require.True(t, options[0].Equal(cards(BlueCard, BlueCard)))
		require.True(t, options[1].Equal(cards(BlueCard, Locomotive)))
		require.True(t, options[2].Equal(cards(Locomotive, Locomotive)))
	})

	t.Run("neutral tunnel ends with only locomotives", func(t *testing.T) {
		r := NewRoute("X", berne, lucerne, 2, Underground, NoColor)
		options := r.PossibleClaimCards()
		require.Equal(t, 2*len(Colors)+1, len(options))
		require.True(t, options[0].Equal(cards(BlackCard, BlackCard)))
		require.True(t, options[len(Colors)].Equal(cards(BlackCard, Locomotive)))
		require.True(t, options[len(options)-1].Equal(cards(Locomotive, Locomotive)))
	})
}

func TestAdditionalClaimCardsCount(t *testing.T) {
	tunnel := NewRoute("X", berne, lucerne, 3, Underground, NoColor)

	t.Run("matching colors and locomotives count", func(t *testing.T) {
		claim := cards(RedCard, RedCard, RedCard)
		require.Equal(t, 2, tunnel.AdditionalClaimCardsCount(claim, cards(RedCard, Locomotive, BlueCard)))
		require.Equal(t, 0, tunnel.AdditionalClaimCardsCount(claim, cards(BlueCard, GreenCard, WhiteCard)))
		require.Equal(t, 3, tunnel.AdditionalClaimCardsCount(claim, cards(Locomotive, Locomotive, RedCard)))
	})

	t.Run("locomotive-only claims only match locomotives", func(t *testing.T) {
		claim := cards(Locomotive, Locomotive, Locomotive)
		require.Equal(t, 1, tunnel.AdditionalClaimCardsCount(claim, cards(RedCard, Locomotive, BlueCard)))
	})

	t.Run("fewer revealed cards still count", func(t *testing.T) {
		claim := cards(RedCard)
		require.Equal(t, 2, tunnel.AdditionalClaimCardsCount(claim, cards(Locomotive, Locomotive)))
		require.Equal(t, 0, tunnel.AdditionalClaimCardsCount(claim, cards(BlueCard)))
		require.Equal(t, 0, tunnel.AdditionalClaimCardsCount(claim, cards()))
	})

	t.Run("requires a tunnel and at most three cards", func(t *testing.T) {
		surface := NewRoute("Y", berne, lucerne, 3, Overground, NoColor)
		claim := cards(RedCard, RedCard, RedCard)
		require.True(t, errors.Is(recoverError(func() { surface.AdditionalClaimCardsCount(claim, cards(RedCard, RedCard, RedCard)) }), utils.ErrInvalidArgument))
		require.True(t, errors.Is(recoverError(func() { tunnel.AdditionalClaimCardsCount(claim, cards(RedCard, RedCard, RedCard, RedCard)) }), utils.ErrInvalidArgument))
	})
}
