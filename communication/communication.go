package communication

import (
	"errors"
	"fmt"
	"railway/game"
)

// MessageId is the tag opening every protocol line.
type MessageId string

const (
	InitPlayers           MessageId = "INIT_PLAYERS"
	ReceiveInfo           MessageId = "RECEIVE_INFO"
	UpdateState           MessageId = "UPDATE_STATE"
	SetInitialTickets     MessageId = "SET_INITIAL_TICKETS"
	ChooseInitialTickets  MessageId = "CHOOSE_INITIAL_TICKETS"
	NextTurn              MessageId = "NEXT_TURN"
	ChooseTickets         MessageId = "CHOOSE_TICKETS"
	DrawSlot              MessageId = "DRAW_SLOT"
	Route                 MessageId = "ROUTE"
	Cards                 MessageId = "CARDS"
	ChooseAdditionalCards MessageId = "CHOOSE_ADDITIONAL_CARDS"
	AskRematch            MessageId = "ASK_REMATCH"
	RematchAnswer         MessageId = "REMATCH_ANSWER"
)

var MessageIds = []MessageId{
	InitPlayers, ReceiveInfo, UpdateState, SetInitialTickets, ChooseInitialTickets, NextTurn,
	ChooseTickets, DrawSlot, Route, Cards, ChooseAdditionalCards, AskRematch, RematchAnswer,
}

// ExpectsReply reports whether the receiver of a message must answer it.
func (id MessageId) ExpectsReply() bool {
	switch id {
	case ChooseInitialTickets, NextTurn, ChooseTickets, DrawSlot, Route, Cards, ChooseAdditionalCards, RematchAnswer:
		return true
	}
	return false
}

var (
	// ErrProtocol wraps every malformed or unexpected line.
	ErrProtocol = fmt.Errorf("protocol error: %w", game.ErrPlayerFailure)
	// ErrConnectionClosed is returned when the peer goes away mid-exchange.
	ErrConnectionClosed = fmt.Errorf("connection closed: %w", game.ErrPlayerFailure)
)

// Transport carries the protocol one line at a time. Lines never contain
// the line terminator.
type Transport interface {
	ReadLine() (string, error)
	WriteLine(line string) error
	Close() error
}

// IsClosed reports whether err means the peer closed the connection.
func IsClosed(err error) bool {
	return errors.Is(err, ErrConnectionClosed)
}
