package experiments

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"railway/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSimulation(t *testing.T) {
	s := Simulation{Board: game.DefaultMap(), Names: []string{"Ada", "Charles"}, Games: 3, Seed: 11}

	t.Run("records every game and turn", func(t *testing.T) {
		games, turns, err := s.Run()
		require.NoError(t, err)
		require.Len(t, games, 3)
		total := 0
		for i, g := range games {
			require.Equal(t, i+1, g.ID)
			require.NotEmpty(t, g.GameMetric.ID)
			require.Positive(t, g.TotalTurns)
			total += g.TotalTurns
		}
		require.Len(t, turns, total)
	})

	t.Run("is reproducible from its seed", func(t *testing.T) {
		first, _, err := s.Run()
		require.NoError(t, err)
		second, _, err := s.Run()
		require.NoError(t, err)
		for i := range first {
			require.Equal(t, first[i].Points, second[i].Points)
			require.Equal(t, first[i].TotalTurns, second[i].TotalTurns)
		}
	})

	t.Run("writes csv files", func(t *testing.T) {
		dir, err := RunSimulation(s, t.TempDir())
		require.NoError(t, err)
		f, err := os.Open(filepath.Join(dir, "game_records.csv"))
		require.NoError(t, err)
		defer f.Close()
		rows, err := csv.NewReader(f).ReadAll()
		require.NoError(t, err)
		require.Len(t, rows, 4)
		_, err = os.Stat(filepath.Join(dir, "turn_records.csv"))
		require.NoError(t, err)
	})
}
