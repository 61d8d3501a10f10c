// meta/meta.go
package meta

// INITIAL_CAR_COUNT defines the number of cars each player starts with.
const INITIAL_CAR_COUNT = 40

// INITIAL_CARDS_COUNT defines the number of cards dealt to each player.
const INITIAL_CARDS_COUNT = 4

// FACE_UP_CARDS_COUNT defines the number of face-up cards on the table.
const FACE_UP_CARDS_COUNT = 5

// DECK_SLOT is the draw slot standing for the face-down pile.
const DECK_SLOT = -1

const INITIAL_TICKETS_COUNT = 5

const IN_GAME_TICKETS_COUNT = 3

// DISCARDABLE_TICKETS_COUNT defines how many of the offered tickets may be dropped.
const DISCARDABLE_TICKETS_COUNT = 2

const ADDITIONAL_TUNNEL_CARDS = 3

const LONGEST_TRAIL_BONUS_POINTS = 10

// LAST_TURN_CAR_COUNT triggers the last turn once a player has this many cars or fewer.
const LAST_TURN_CAR_COUNT = 2

const MIN_ROUTE_LENGTH = 1

const MAX_ROUTE_LENGTH = 6

const CAR_CARDS_COUNT = 12

const LOCOMOTIVE_CARDS_COUNT = 14

// ROUTE_CLAIM_POINTS maps a route length to the points its claim is worth.
var ROUTE_CLAIM_POINTS = [MAX_ROUTE_LENGTH + 1]int{0, 1, 2, 4, 7, 10, 15}

// DEFAULT_PORT defines the port the host listens on.
const DEFAULT_PORT = 5108

// MAX_TURNS guards local simulations against collaborators that never finish.
const MAX_TURNS = 1000
