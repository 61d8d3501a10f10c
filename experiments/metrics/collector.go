package metrics

import (
	"sync"
	"time"
)

type TurnMetric struct {
	Step     int
	Player   int // Player ID
	Kind     string
	Duration time.Duration
}

type GameMetric struct {
	ID             string // Game UUID
	StartingPlayer int    // Player ID
	Winner         string // Player name, "" for a draw
	Points         [2]int
	LongestTrails  [2]int
	Rematch        bool
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalTurns     int
}

type Collector interface {
	Start(gameID string, startingPlayer int, rematch bool)
	AddTurn(player int, kind string)
	Complete(winner string, points, longestTrails [2]int) GameMetric
	Turns() []TurnMetric
}

type collector struct {
	mu             sync.Mutex
	gameID         string
	startingPlayer int
	rematch        bool
	startTime      time.Time
	lastTurn       time.Time
	turns          []TurnMetric
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(gameID string, startingPlayer int, rematch bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gameID = gameID
	m.startingPlayer = startingPlayer
	m.rematch = rematch
	m.startTime = time.Now()
	m.lastTurn = m.startTime
	m.turns = nil
}

func (m *collector) AddTurn(player int, kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	m.turns = append(m.turns, TurnMetric{
		Step:     len(m.turns) + 1,
		Player:   player,
		Kind:     kind,
		Duration: now.Sub(m.lastTurn),
	})
	m.lastTurn = now
}

func (m *collector) Complete(winner string, points, longestTrails [2]int) GameMetric {
	m.mu.Lock()
	defer m.mu.Unlock()
	end := time.Now()
	return GameMetric{
		ID:             m.gameID,
		StartingPlayer: m.startingPlayer,
		Winner:         winner,
		Points:         points,
		LongestTrails:  longestTrails,
		Rematch:        m.rematch,
		StartTime:      m.startTime,
		EndTime:        end,
		Duration:       end.Sub(m.startTime),
		TotalTurns:     len(m.turns),
	}
}

func (m *collector) Turns() []TurnMetric {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]TurnMetric(nil), m.turns...)
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(gameID string, startingPlayer int, rematch bool) {}
func (m *dummyCollector) AddTurn(player int, kind string)                   {}
func (m *dummyCollector) Complete(winner string, points, longestTrails [2]int) GameMetric {
	return GameMetric{}
}
func (m *dummyCollector) Turns() []TurnMetric { return nil }
