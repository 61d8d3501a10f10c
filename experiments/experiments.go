package experiments

import (
	"fmt"
	"railway/engine"
	"railway/experiments/metrics"
	"railway/game"
	"railway/player"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Simulation plays games between two random bots on one board.
type Simulation struct {
	Board *game.Map
	Names []string
	Games int
	Seed  uint64
}

// Run plays every game and returns the records of each.
func (s Simulation) Run() ([]metrics.GameRecord, []metrics.TurnRecord, error) {
	gameRecords := []metrics.GameRecord{}
	turnRecords := []metrics.TurnRecord{}
	rng := rand.New(rand.NewSource(s.Seed))
	names := map[game.PlayerId]string{game.Player1: s.Names[0], game.Player2: s.Names[1]}

	log.Info().Msgf("starting simulation of %d games...", s.Games)
	for i := 0; i < s.Games; i++ {
		collector := metrics.NewCollector()
		players := map[game.PlayerId]game.Player{
			game.Player1: player.NewRandomPlayer(s.Board.Routes(), rng.Uint64()),
			game.Player2: player.NewRandomPlayer(s.Board.Routes(), rng.Uint64()),
		}
		e := engine.NewEngine(players, names, s.Board,
			engine.WithRand(rand.New(rand.NewSource(rng.Uint64()))),
			engine.WithCollector(collector))

		result, err := e.PlayOnce(false)
		if err != nil {
			return gameRecords, turnRecords, fmt.Errorf("game %d failed: %w", i+1, err)
		}
		gameRecords = append(gameRecords, metrics.GameRecord{ID: i + 1, GameMetric: result.Metric})
		for _, tm := range collector.Turns() {
			turnRecords = append(turnRecords, metrics.TurnRecord{Game: i + 1, TurnMetric: tm})
		}
		log.Info().Msgf("completed game %d of %d with winner: %s", i+1, s.Games, result.Metric.Winner)
	}
	log.Info().Msg("completed simulation")
	return gameRecords, turnRecords, nil
}

// RunSimulation plays the simulation and stores its records under dir.
func RunSimulation(s Simulation, dir string) (string, error) {
	gameRecords, turnRecords, err := s.Run()
	if err != nil {
		return "", err
	}

	writer, err := metrics.NewWriter(dir)
	if err != nil {
		return "", fmt.Errorf("failed to create simulation writer: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")
	if err := writer.WriteTurnRecords(turnRecords); err != nil {
		return "", fmt.Errorf("failed to write turn records: %w", err)
	}
	log.Info().Msg("stored turn records")
	return writer.Dir(), nil
}
