package gamemaster

import (
	"context"
	"railway/communication/server"
	"railway/engine"
	"railway/game"

	"github.com/rs/zerolog/log"
)

// Host runs games between a local player and one remote peer. The local
// player always plays first in the id order.
type Host struct {
	board   *game.Map
	local   game.Player
	names   []string
	options []engine.Option
}

func NewHost(board *game.Map, local game.Player, names []string, options ...engine.Option) *Host {
	return &Host{board: board, local: local, names: names, options: options}
}

// Serve waits for a peer on l and plays until a rematch is declined.
func (h *Host) Serve(ctx context.Context, l Listener) ([]engine.Result, error) {
	log.Info().Str("address", l.Addr()).Msg("Waiting for a peer")
	transport, err := l.Accept(ctx)
	if err != nil {
		return nil, err
	}
	proxy := server.NewProxy(transport, h.board)
	defer proxy.Close()

	players := map[game.PlayerId]game.Player{
		game.Player1: h.local,
		game.Player2: proxy,
	}
	names := map[game.PlayerId]string{
		game.Player1: h.names[0],
		game.Player2: h.names[1],
	}
	results, err := engine.NewEngine(players, names, h.board, h.options...).Play()
	if err != nil {
		log.Error().Err(err).Int("games", len(results)).Msg("Session aborted")
		return results, err
	}
	log.Info().Int("games", len(results)).Msg("Session over")
	return results, nil
}
