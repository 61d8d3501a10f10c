package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"railway/communication"
	"railway/communication/client"
	"railway/config"
	"railway/engine"
	"railway/experiments"
	"railway/game"
	"railway/gamemaster"
	"railway/player"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	zerolog.SetGlobalLevel(cfg.Level())
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	board := game.DefaultMap()
	if cfg.Board != "" {
		board, err = game.LoadMap(cfg.Board)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load board")
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cfg.Mode {
	case config.ModeServer:
		err = runServer(ctx, cfg, board, seed)
	case config.ModeClient:
		err = runClient(cfg, board, seed)
	case config.ModeLocal:
		var dir string
		dir, err = experiments.RunSimulation(experiments.Simulation{
			Board: board,
			Names: cfg.Names,
			Games: cfg.Games,
			Seed:  seed,
		}, cfg.MetricsDir)
		if err == nil {
			log.Info().Str("dir", dir).Msg("Simulation stored")
		}
	}
	if err != nil {
		log.Fatal().Err(err).Str("mode", cfg.Mode).Msg("Stopped")
	}
}

// loadConfig reads the optional config file, then applies flags set on the
// command line.
func loadConfig() (*config.Config, error) {
	defaults := config.Default()
	path := flag.String("config", "", "Path to a YAML config file")
	mode := flag.String("mode", defaults.Mode, "One of server, client or local")
	host := flag.String("host", defaults.Host, "Host to connect to or listen on")
	port := flag.Int("port", defaults.Port, "Port to connect to or listen on")
	transport := flag.String("transport", defaults.Transport, "One of tcp or ws")
	name1 := flag.String("name1", defaults.Names[0], "Name of the first player")
	name2 := flag.String("name2", defaults.Names[1], "Name of the second player")
	seed := flag.Uint64("seed", defaults.Seed, "Random seed, 0 for a time based one")
	games := flag.Int("games", defaults.Games, "Number of games in local mode")
	metricsDir := flag.String("metrics", defaults.MetricsDir, "Directory for local mode records")
	level := flag.String("log", defaults.LogLevel, "Log level")
	board := flag.String("board", defaults.Board, "Path to a board file")
	flag.Parse()

	cfg := &defaults
	if *path != "" {
		loaded, err := config.LoadConfig(*path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "mode":
			cfg.Mode = *mode
		case "host":
			cfg.Host = *host
		case "port":
			cfg.Port = *port
		case "transport":
			cfg.Transport = *transport
		case "name1":
			cfg.Names[0] = *name1
		case "name2":
			cfg.Names[1] = *name2
		case "seed":
			cfg.Seed = *seed
		case "games":
			cfg.Games = *games
		case "metrics":
			cfg.MetricsDir = *metricsDir
		case "log":
			cfg.LogLevel = *level
		case "board":
			cfg.Board = *board
		}
	})
	return cfg, cfg.Validate()
}

func runServer(ctx context.Context, cfg *config.Config, board *game.Map, seed uint64) error {
	l, err := gamemaster.Listen(cfg.Transport, cfg.Address())
	if err != nil {
		return err
	}
	defer l.Close()

	rng := rand.New(rand.NewSource(seed))
	local := player.NewRandomPlayer(board.Routes(), rng.Uint64())
	host := gamemaster.NewHost(board, local, cfg.Names, engine.WithRand(rng))
	results, err := host.Serve(ctx, l)
	for i, result := range results {
		log.Info().Int("game", i+1).Str("id", result.ID).
			Int("points1", result.Points[game.Player1]).
			Int("points2", result.Points[game.Player2]).
			Msg("Result")
	}
	return err
}

func runClient(cfg *config.Config, board *game.Map, seed uint64) error {
	var (
		transport communication.Transport
		err       error
	)
	if cfg.Transport == config.TransportWebSocket {
		transport, err = communication.DialWebSocket(fmt.Sprintf("ws://%s/", cfg.Address()))
	} else {
		transport, err = communication.Dial(cfg.Address())
	}
	if err != nil {
		return err
	}
	defer transport.Close()

	log.Info().Str("address", cfg.Address()).Msg("Connected")
	return client.NewClient(player.NewRandomPlayer(board.Routes(), seed), transport, board).Run()
}
