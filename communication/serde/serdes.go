package serde

import (
	"encoding/base64"
	"railway/bag"
	"railway/game"
	"railway/meta"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	listSeparator      = ","
	compositeSeparator = ";"
	stateSeparator     = ":"
)

var Int = Of(
	strconv.Itoa,
	func(text string) (int, error) {
		n, err := strconv.Atoi(text)
		if err != nil {
			return 0, protocolError("invalid integer %q", text)
		}
		return n, nil
	},
)

// String carries free text as base64 so it never holds a separator.
var String = Of(
	func(s string) string {
		return base64.StdEncoding.EncodeToString([]byte(s))
	},
	func(text string) (string, error) {
		data, err := base64.StdEncoding.DecodeString(text)
		if err != nil {
			return "", protocolError("invalid base64 %q", text)
		}
		if !utf8.Valid(data) {
			return "", protocolError("text is not valid UTF-8")
		}
		return string(data), nil
	},
)

var (
	Bool     = OneOf([]bool{false, true})
	PlayerId = OneOf(game.PlayerIds)
	TurnKind = OneOf(game.TurnKinds)
	Card     = OneOf(game.Cards)
	Strings  = ListOf(String, listSeparator)
	Cards    = ListOf(Card, listSeparator)
	CardBag  = BagOf(Card, listSeparator)
	CardBags = ListOf(CardBag, compositeSeparator)
)

var PublicCardState = Of(
	func(s game.PublicCardState) string {
		return strings.Join([]string{
			Cards.Serialize(s.FaceUpCards()),
			Int.Serialize(s.DeckSize()),
			Int.Serialize(s.DiscardsSize()),
		}, compositeSeparator)
	},
	func(text string) (game.PublicCardState, error) {
		var zero game.PublicCardState
		parts, err := split(text, compositeSeparator, 3)
		if err != nil {
			return zero, err
		}
		faceUp, err := Cards.Deserialize(parts[0])
		if err != nil {
			return zero, err
		}
		if len(faceUp) != meta.FACE_UP_CARDS_COUNT {
			return zero, protocolError("expected %d face-up cards, got %d", meta.FACE_UP_CARDS_COUNT, len(faceUp))
		}
		deckSize, err := count(parts[1])
		if err != nil {
			return zero, err
		}
		discardsSize, err := count(parts[2])
		if err != nil {
			return zero, err
		}
		return game.NewPublicCardState(faceUp, deckSize, discardsSize), nil
	},
)

func count(text string) (int, error) {
	n, err := Int.Deserialize(text)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, protocolError("negative count %d", n)
	}
	return n, nil
}

// Serdes holds the codecs that depend on the board, since routes and tickets
// travel as indices into its lists.
type Serdes struct {
	Route             Serde[*game.Route]
	Ticket            Serde[*game.Ticket]
	Routes            Serde[[]*game.Route]
	TicketBag         Serde[bag.Bag[*game.Ticket]]
	PublicPlayerState Serde[game.PublicPlayerState]
	PlayerState       Serde[game.PlayerState]
	PublicGameState   Serde[game.PublicGameState]
}

func NewSerdes(board *game.Map) *Serdes {
	s := &Serdes{
		Route:  OneOf(board.Routes()),
		Ticket: OneOf(board.Tickets()),
	}
	s.Routes = ListOf(s.Route, listSeparator)
	s.TicketBag = BagOf(s.Ticket, listSeparator)
	s.PublicPlayerState = Of(s.serializePublicPlayerState, s.deserializePublicPlayerState)
	s.PlayerState = Of(s.serializePlayerState, s.deserializePlayerState)
	s.PublicGameState = Of(s.serializePublicGameState, s.deserializePublicGameState)
	return s
}

func (s *Serdes) serializePublicPlayerState(p game.PublicPlayerState) string {
	return strings.Join([]string{
		Int.Serialize(p.TicketCount()),
		Int.Serialize(p.CardCount()),
		s.Routes.Serialize(p.Routes()),
	}, compositeSeparator)
}

func (s *Serdes) deserializePublicPlayerState(text string) (game.PublicPlayerState, error) {
	var zero game.PublicPlayerState
	parts, err := split(text, compositeSeparator, 3)
	if err != nil {
		return zero, err
	}
	ticketCount, err := count(parts[0])
	if err != nil {
		return zero, err
	}
	cardCount, err := count(parts[1])
	if err != nil {
		return zero, err
	}
	routes, err := s.Routes.Deserialize(parts[2])
	if err != nil {
		return zero, err
	}
	return game.NewPublicPlayerState(ticketCount, cardCount, routes), nil
}

func (s *Serdes) serializePlayerState(p game.PlayerState) string {
	return strings.Join([]string{
		s.TicketBag.Serialize(p.Tickets()),
		CardBag.Serialize(p.Cards()),
		s.Routes.Serialize(p.Routes()),
	}, compositeSeparator)
}

func (s *Serdes) deserializePlayerState(text string) (game.PlayerState, error) {
	var zero game.PlayerState
	parts, err := split(text, compositeSeparator, 3)
	if err != nil {
		return zero, err
	}
	tickets, err := s.TicketBag.Deserialize(parts[0])
	if err != nil {
		return zero, err
	}
	cards, err := CardBag.Deserialize(parts[1])
	if err != nil {
		return zero, err
	}
	routes, err := s.Routes.Deserialize(parts[2])
	if err != nil {
		return zero, err
	}
	return game.NewPlayerState(tickets, cards, routes), nil
}

func (s *Serdes) serializePublicGameState(g game.PublicGameState) string {
	fields := []string{
		Int.Serialize(g.TicketsCount()),
		PublicCardState.Serialize(g.CardState()),
		PlayerId.Serialize(g.CurrentPlayerId()),
	}
	for _, id := range game.PlayerIds {
		fields = append(fields, s.PublicPlayerState.Serialize(g.PlayerState(id)))
	}
	last := ""
	if id, ok := g.LastPlayer(); ok {
		last = PlayerId.Serialize(id)
	}
	return strings.Join(append(fields, last), stateSeparator)
}

func (s *Serdes) deserializePublicGameState(text string) (game.PublicGameState, error) {
	var zero game.PublicGameState
	parts, err := split(text, stateSeparator, 4+len(game.PlayerIds))
	if err != nil {
		return zero, err
	}
	ticketsCount, err := count(parts[0])
	if err != nil {
		return zero, err
	}
	cardState, err := PublicCardState.Deserialize(parts[1])
	if err != nil {
		return zero, err
	}
	current, err := PlayerId.Deserialize(parts[2])
	if err != nil {
		return zero, err
	}
	playerStates := make(map[game.PlayerId]game.PublicPlayerState, len(game.PlayerIds))
	for i, id := range game.PlayerIds {
		ps, err := s.PublicPlayerState.Deserialize(parts[3+i])
		if err != nil {
			return zero, err
		}
		playerStates[id] = ps
	}
	var last *game.PlayerId
	if lastText := parts[len(parts)-1]; lastText != "" {
		id, err := PlayerId.Deserialize(lastText)
		if err != nil {
			return zero, err
		}
		last = &id
	}
	return game.NewPublicGameState(ticketsCount, cardState, current, playerStates, last), nil
}
