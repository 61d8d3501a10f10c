package game

import (
	_ "embed"
	"fmt"
	"os"
	"railway/bag"
	"railway/meta"
	"railway/utils"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed map.yaml
var defaultMapData []byte

// Map holds the stations, routes and tickets of a board. Routes and tickets
// are listed in their canonical order, which the wire protocol relies on.
type Map struct {
	stations []Station
	routes   []*Route
	tickets  []*Ticket
}

type stationData struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

type routeData struct {
	ID     string `yaml:"id"`
	From   int    `yaml:"from"`
	To     int    `yaml:"to"`
	Length int    `yaml:"length"`
	Level  string `yaml:"level"`
	Color  string `yaml:"color"`
}

type tripData struct {
	From   []int `yaml:"from"`
	To     []int `yaml:"to"`
	Points int   `yaml:"points"`
}

type ticketData struct {
	Trips []tripData `yaml:"trips"`
}

type mapData struct {
	Stations []stationData `yaml:"stations"`
	Routes   []routeData   `yaml:"routes"`
	Tickets  []ticketData  `yaml:"tickets"`
}

var (
	defaultMap *Map
	once       sync.Once
)

// DefaultMap returns the built-in board.
func DefaultMap() *Map {
	once.Do(func() {
		m, err := ParseMap(defaultMapData)
		if err != nil {
			panic(fmt.Sprintf("built-in map is invalid: %v", err))
		}
		defaultMap = m
	})
	return defaultMap
}

// LoadMap reads a board from a YAML file.
func LoadMap(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map file: %w", err)
	}
	return ParseMap(data)
}

func ParseMap(data []byte) (*Map, error) {
	var raw mapData
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse map: %w", err)
	}

	m := &Map{}
	byID := make(map[int]Station, len(raw.Stations))
	for _, s := range raw.Stations {
		if _, ok := byID[s.ID]; ok || s.ID < 0 {
			return nil, fmt.Errorf("%w: station id %d", utils.ErrInvalidArgument, s.ID)
		}
		station := Station{ID: s.ID, Name: s.Name}
		byID[s.ID] = station
		m.stations = append(m.stations, station)
	}

	station := func(id int) (Station, error) {
		s, ok := byID[id]
		if !ok {
			return Station{}, fmt.Errorf("%w: unknown station %d", utils.ErrInvalidArgument, id)
		}
		return s, nil
	}

	routeIDs := make(map[string]bool)
	for _, r := range raw.Routes {
		from, err := station(r.From)
		if err != nil {
			return nil, err
		}
		to, err := station(r.To)
		if err != nil {
			return nil, err
		}
		if routeIDs[r.ID] || from == to || r.Length < meta.MIN_ROUTE_LENGTH || r.Length > meta.MAX_ROUTE_LENGTH {
			return nil, fmt.Errorf("%w: route %s", utils.ErrInvalidArgument, r.ID)
		}
		routeIDs[r.ID] = true

		level, err := parseLevel(r.Level)
		if err != nil {
			return nil, err
		}
		color, err := parseColor(r.Color)
		if err != nil {
			return nil, err
		}
		m.routes = append(m.routes, NewRoute(r.ID, from, to, r.Length, level, color))
	}

	for i, t := range raw.Tickets {
		var trips []Trip
		for _, trip := range t.Trips {
			from, err := stations(trip.From, station)
			if err != nil {
				return nil, err
			}
			to, err := stations(trip.To, station)
			if err != nil {
				return nil, err
			}
			if trip.Points <= 0 || len(from) == 0 || len(to) == 0 {
				return nil, fmt.Errorf("%w: ticket %d has an invalid trip", utils.ErrInvalidArgument, i)
			}
			trips = append(trips, AllTrips(from, to, trip.Points)...)
		}
		if len(trips) == 0 {
			return nil, fmt.Errorf("%w: ticket %d has no trips", utils.ErrInvalidArgument, i)
		}
		for _, trip := range trips {
			if trip.From.Name != trips[0].From.Name {
				return nil, fmt.Errorf("%w: ticket %d has several departures", utils.ErrInvalidArgument, i)
			}
		}
		m.tickets = append(m.tickets, NewTicket(trips))
	}
	return m, nil
}

func stations(ids []int, lookup func(int) (Station, error)) ([]Station, error) {
	result := make([]Station, 0, len(ids))
	for _, id := range ids {
		s, err := lookup(id)
		if err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, nil
}

func parseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "", "overground":
		return Overground, nil
	case "underground":
		return Underground, nil
	}
	return 0, fmt.Errorf("%w: level %q", utils.ErrInvalidArgument, s)
}

func parseColor(s string) (Color, error) {
	if s == "" {
		return NoColor, nil
	}
	i := utils.FindIndex(colorNames, strings.ToUpper(s))
	if i < 0 {
		return NoColor, fmt.Errorf("%w: color %q", utils.ErrInvalidArgument, s)
	}
	return Color(i), nil
}

func (m *Map) Stations() []Station {
	return append([]Station(nil), m.stations...)
}

// Routes returns every route in canonical order.
func (m *Map) Routes() []*Route {
	return append([]*Route(nil), m.routes...)
}

// Tickets returns every ticket in canonical order.
func (m *Map) Tickets() []*Ticket {
	return append([]*Ticket(nil), m.tickets...)
}

func (m *Map) TicketsBag() bag.Bag[*Ticket] {
	return bag.Of(m.tickets...)
}

func (m *Map) RouteByID(id string) (*Route, bool) {
	for _, r := range m.routes {
		if r.ID == id {
			return r, true
		}
	}
	return nil, false
}
