package game

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// Trail is a walk through a player's routes that uses each route at most once.
type Trail struct {
	stations []Station
	routes   []*Route
	length   int
}

func (t Trail) Length() int {
	return t.length
}

// Station1 returns the start of the trail, or nil for the empty trail.
func (t Trail) Station1() *Station {
	if len(t.stations) == 0 {
		return nil
	}
	return &t.stations[0]
}

// Station2 returns the end of the trail, or nil for the empty trail.
func (t Trail) Station2() *Station {
	if len(t.stations) == 0 {
		return nil
	}
	return &t.stations[len(t.stations)-1]
}

func (t Trail) Routes() []*Route {
	return slices.Clone(t.routes)
}

func (t Trail) extend(r *Route) Trail {
	end := t.stations[len(t.stations)-1]
	return Trail{
		stations: append(slices.Clone(t.stations), r.StationOpposite(end)),
		routes:   append(slices.Clone(t.routes), r),
		length:   t.length + r.Length,
	}
}

// Longest returns a longest trail through routes. The search seeds one trail
// per route and direction in input order and extends trails with routes in
// input order; the first trail strictly longer than every earlier one wins.
func Longest(routes []*Route) Trail {
	var longest Trail
	frontier := make([]Trail, 0, 2*len(routes))
	for _, r := range routes {
		frontier = append(frontier,
			Trail{stations: []Station{r.Station1, r.Station2}, routes: []*Route{r}, length: r.Length},
			Trail{stations: []Station{r.Station2, r.Station1}, routes: []*Route{r}, length: r.Length})
	}

	for len(frontier) > 0 {
		var next []Trail
		for _, trail := range frontier {
			if trail.length > longest.length {
				longest = trail
			}
			end := trail.stations[len(trail.stations)-1]
			for _, r := range routes {
				if r.Touches(end) && !slices.Contains(trail.routes, r) {
					next = append(next, trail.extend(r))
				}
			}
		}
		frontier = next
	}
	return longest
}

func (t Trail) String() string {
	if len(t.stations) == 0 {
		return "(0)"
	}
	names := make([]string, len(t.stations))
	for i, s := range t.stations {
		names[i] = s.Name
	}
	return fmt.Sprintf("%s (%d)", strings.Join(names, " - "), t.length)
}
