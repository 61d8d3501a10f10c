package game

import (
	"errors"
	"railway/utils"
	"testing"

	"github.com/stretchr/testify/require"
)

type fixedConnectivity map[[2]int]bool

func (f fixedConnectivity) Connected(s1, s2 Station) bool {
	return s1 == s2 || f[[2]int{s1.ID, s2.ID}] || f[[2]int{s2.ID, s1.ID}]
}

func TestTicketText(t *testing.T) {
	t.Run("single trip", func(t *testing.T) {
		ticket := NewTicket([]Trip{NewTrip(berne, lucerne, 4)})
		require.Equal(t, "Berne - Lucerne (4)", ticket.Text())
	})

	t.Run("several trips list sorted distinct destinations", func(t *testing.T) {
		germany1 := Station{ID: 10, Name: "Allemagne"}
		germany2 := Station{ID: 11, Name: "Allemagne"}
		austria := Station{ID: 12, Name: "Autriche"}
		trips := append(AllTrips([]Station{berne}, []Station{germany1, germany2}, 6), NewTrip(berne, austria, 11))
		ticket := NewTicket(trips)
		require.Equal(t, "Berne - {Allemagne (6), Autriche (11)}", ticket.Text())
	})

	t.Run("rejects mixed departures and empty trips", func(t *testing.T) {
		err := recoverError(func() { NewTicket([]Trip{NewTrip(berne, lucerne, 1), NewTrip(zurich, lucerne, 1)}) })
		require.True(t, errors.Is(err, utils.ErrInvalidArgument))
		require.True(t, errors.Is(recoverError(func() { NewTicket(nil) }), utils.ErrInvalidArgument))
	})

	t.Run("rejects non positive points", func(t *testing.T) {
		require.True(t, errors.Is(recoverError(func() { NewTrip(berne, lucerne, 0) }), utils.ErrInvalidArgument))
	})
}

func TestTicketPoints(t *testing.T) {
	ticket := NewTicket([]Trip{NewTrip(berne, lucerne, 4), NewTrip(berne, zurich, 7)})

	t.Run("best connected trip", func(t *testing.T) {
		conn := fixedConnectivity{{berne.ID, lucerne.ID}: true, {berne.ID, zurich.ID}: true}
		require.Equal(t, 7, ticket.Points(conn))
	})

	t.Run("one connected trip", func(t *testing.T) {
		conn := fixedConnectivity{{berne.ID, lucerne.ID}: true}
		require.Equal(t, 4, ticket.Points(conn))
	})

	t.Run("no connected trip costs the smallest penalty", func(t *testing.T) {
		require.Equal(t, -4, ticket.Points(fixedConnectivity{}))
	})

	t.Run("tickets compare by text", func(t *testing.T) {
		other := NewTicket([]Trip{NewTrip(zurich, lucerne, 1)})
		require.Negative(t, ticket.Compare(other))
		require.Positive(t, other.Compare(ticket))
		require.Zero(t, ticket.Compare(ticket))
	})
}

func TestStationPartition(t *testing.T) {
	t.Run("connected components", func(t *testing.T) {
		p := NewPartitionBuilder(7).
			Connect(lausanne, fribourg).
			Connect(berne, fribourg).
			Connect(lucerne, zurich).
			Build()
		require.True(t, p.Connected(lausanne, berne))
		require.True(t, p.Connected(zurich, lucerne))
		require.False(t, p.Connected(lausanne, zurich))
		require.False(t, p.Connected(interlak, neuchatel))
	})

	t.Run("reflexive and symmetric", func(t *testing.T) {
		p := NewPartitionBuilder(7).Connect(lausanne, berne).Build()
		for _, s := range []Station{lausanne, fribourg, berne, interlak, lucerne, zurich, neuchatel} {
			require.True(t, p.Connected(s, s))
		}
		require.Equal(t, p.Connected(lausanne, berne), p.Connected(berne, lausanne))
	})

	t.Run("transitive across repeated connections", func(t *testing.T) {
		p := NewPartitionBuilder(7).
			Connect(lausanne, fribourg).
			Connect(interlak, lucerne).
			Connect(fribourg, lucerne).
			Connect(zurich, neuchatel).
			Connect(neuchatel, lausanne).
			Build()
		require.True(t, p.Connected(zurich, interlak))
		require.False(t, p.Connected(zurich, berne))
	})

	t.Run("stations out of range only connect to themselves", func(t *testing.T) {
		p := NewPartitionBuilder(2).Connect(lausanne, fribourg).Build()
		far := Station{ID: 40, Name: "Far"}
		require.True(t, p.Connected(far, far))
		require.False(t, p.Connected(far, lausanne))
	})
}
