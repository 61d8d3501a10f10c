package gamemaster

import (
	"context"
	"railway/communication"
	"railway/communication/client"
	"railway/config"
	"railway/engine"
	"railway/game"
	"railway/player"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func dial(transport, addr string) (communication.Transport, error) {
	if transport == config.TransportWebSocket {
		return communication.DialWebSocket("ws://" + addr + "/")
	}
	return communication.Dial(addr)
}

func TestHost(t *testing.T) {
	board := game.DefaultMap()
	for _, transport := range []string{config.TransportTCP, config.TransportWebSocket} {
		t.Run("plays a session over "+transport, func(t *testing.T) {
			l, err := Listen(transport, "127.0.0.1:0")
			require.NoError(t, err)
			defer l.Close()

			host := NewHost(board, player.NewRandomPlayer(board.Routes(), 1), []string{"Ada", "Charles"},
				engine.WithRand(rand.New(rand.NewSource(2))))
			done := make(chan error, 1)
			go func() {
				peer, err := dial(transport, l.Addr())
				if err != nil {
					done <- err
					return
				}
				done <- client.NewClient(player.NewRandomPlayer(board.Routes(), 3), peer, board).Run()
			}()

			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			results, err := host.Serve(ctx, l)
			require.NoError(t, err)
			require.Len(t, results, 1)
			require.NoError(t, <-done)
		})
	}

	t.Run("gives up when the context ends", func(t *testing.T) {
		l, err := Listen(config.TransportTCP, "127.0.0.1:0")
		require.NoError(t, err)
		defer l.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		host := NewHost(board, player.NewRandomPlayer(board.Routes(), 1), []string{"Ada", "Charles"})
		_, err = host.Serve(ctx, l)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("unknown transports are refused", func(t *testing.T) {
		_, err := Listen("udp", "127.0.0.1:0")
		require.Error(t, err)
		require.True(t, strings.Contains(err.Error(), "udp"))
	})
}
