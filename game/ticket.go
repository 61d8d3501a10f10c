package game

import (
	"fmt"
	"railway/utils"
	"strings"

	"golang.org/x/exp/slices"
)

// StationConnectivity answers whether two stations are joined by a player's routes.
type StationConnectivity interface {
	Connected(s1, s2 Station) bool
}

type Trip struct {
	From   Station
	To     Station
	Points int
}

func NewTrip(from, to Station, points int) Trip {
	utils.CheckArgument(points > 0, "trip %s - %s is worth %d points", from, to, points)
	return Trip{From: from, To: to, Points: points}
}

// AllTrips returns one trip for every pair of departure and arrival.
func AllTrips(from, to []Station, points int) []Trip {
	utils.CheckArgument(len(from) > 0 && len(to) > 0, "trips need departures and arrivals")
	trips := make([]Trip, 0, len(from)*len(to))
	for _, f := range from {
		for _, t := range to {
			trips = append(trips, NewTrip(f, t, points))
		}
	}
	return trips
}

func (t Trip) Value(conn StationConnectivity) int {
	if conn.Connected(t.From, t.To) {
		return t.Points
	}
	return -t.Points
}

type Ticket struct {
	trips []Trip
	text  string
}

func NewTicket(trips []Trip) *Ticket {
	utils.CheckArgument(len(trips) > 0, "ticket has no trips")
	for _, trip := range trips[1:] {
		utils.CheckArgument(trip.From.Name == trips[0].From.Name,
			"ticket departs from both %s and %s", trips[0].From, trip.From)
	}
	return &Ticket{
		trips: slices.Clone(trips),
		text:  ticketText(trips),
	}
}

func ticketText(trips []Trip) string {
	from := trips[0].From.Name
	if len(trips) == 1 {
		return fmt.Sprintf("%s - %s (%d)", from, trips[0].To.Name, trips[0].Points)
	}

	var destinations []string
	for _, trip := range trips {
		d := fmt.Sprintf("%s (%d)", trip.To.Name, trip.Points)
		if !slices.Contains(destinations, d) {
			destinations = append(destinations, d)
		}
	}
	slices.Sort(destinations)
	return fmt.Sprintf("%s - {%s}", from, strings.Join(destinations, ", "))
}

func (t *Ticket) Text() string {
	return t.text
}

func (t *Ticket) String() string {
	return t.text
}

// Points is the best trip value under conn.
func (t *Ticket) Points(conn StationConnectivity) int {
	best := t.trips[0].Value(conn)
	for _, trip := range t.trips[1:] {
		best = max(best, trip.Value(conn))
	}
	return best
}

func (t *Ticket) Compare(other *Ticket) int {
	return strings.Compare(t.text, other.text)
}
