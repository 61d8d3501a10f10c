package client

import (
	"fmt"
	"railway/communication"
	"railway/communication/serde"
	"railway/game"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Client runs a local player on behalf of a remote host.
type Client struct {
	player    game.Player
	transport communication.Transport
	serdes    *serde.Serdes
	log       zerolog.Logger
}

func NewClient(player game.Player, transport communication.Transport, board *game.Map) *Client {
	return &Client{
		player:    player,
		transport: transport,
		serdes:    serde.NewSerdes(board),
		log:       log.With().Str("component", "client").Logger(),
	}
}

// Run handles messages until the host closes the connection. A clean close
// between two messages returns nil.
func (c *Client) Run() error {
	for {
		line, err := c.transport.ReadLine()
		if err != nil {
			if communication.IsClosed(err) {
				c.log.Info().Msg("Host closed the connection")
				return nil
			}
			return err
		}
		if err := c.handle(line); err != nil {
			c.log.Error().Err(err).Str("line", line).Msg("Failed to handle message")
			return err
		}
	}
}

var arity = map[communication.MessageId]int{
	communication.InitPlayers:           3,
	communication.ReceiveInfo:           1,
	communication.UpdateState:           2,
	communication.SetInitialTickets:     1,
	communication.ChooseTickets:         1,
	communication.ChooseAdditionalCards: 1,
}

// handle dispatches one line and writes the reply of questions.
func (c *Client) handle(line string) error {
	fields := strings.Split(line, " ")
	id := communication.MessageId(fields[0])
	args := fields[1:]
	if !slices.Contains(communication.MessageIds, id) {
		return fmt.Errorf("%w: unknown message %q", communication.ErrProtocol, id)
	}
	if len(args) != arity[id] {
		return fmt.Errorf("%w: %s expects %d arguments, got %d", communication.ErrProtocol, id, arity[id], len(args))
	}
	c.log.Debug().Str("message", string(id)).Msg("Received")

	reply, err := c.dispatch(id, args)
	if err != nil || !id.ExpectsReply() {
		return err
	}
	return c.transport.WriteLine(reply)
}

// dispatch calls the player and returns the serialized answer, if any.
func (c *Client) dispatch(id communication.MessageId, args []string) (string, error) {
	switch id {
	case communication.InitPlayers:
		return "", c.initPlayers(args)
	case communication.ReceiveInfo:
		info, err := serde.String.Deserialize(args[0])
		if err != nil {
			return "", err
		}
		c.player.ReceiveInfo(info)
	case communication.UpdateState:
		state, err := c.serdes.PublicGameState.Deserialize(args[0])
		if err != nil {
			return "", err
		}
		own, err := c.serdes.PlayerState.Deserialize(args[1])
		if err != nil {
			return "", err
		}
		c.player.UpdateState(state, own)
	case communication.SetInitialTickets:
		tickets, err := c.serdes.TicketBag.Deserialize(args[0])
		if err != nil {
			return "", err
		}
		c.player.SetInitialTicketChoice(tickets)
	case communication.ChooseInitialTickets:
		return c.serdes.TicketBag.Serialize(c.player.ChooseInitialTickets()), nil
	case communication.NextTurn:
		return serde.TurnKind.Serialize(c.player.NextTurn()), nil
	case communication.ChooseTickets:
		options, err := c.serdes.TicketBag.Deserialize(args[0])
		if err != nil {
			return "", err
		}
		return c.serdes.TicketBag.Serialize(c.player.ChooseTickets(options)), nil
	case communication.DrawSlot:
		return serde.Int.Serialize(c.player.DrawSlot()), nil
	case communication.Route:
		return c.serdes.Route.Serialize(c.player.ClaimedRoute()), nil
	case communication.Cards:
		return serde.CardBag.Serialize(c.player.InitialClaimCards()), nil
	case communication.ChooseAdditionalCards:
		options, err := serde.CardBags.Deserialize(args[0])
		if err != nil {
			return "", err
		}
		return serde.CardBag.Serialize(c.player.ChooseAdditionalCards(options)), nil
	case communication.AskRematch:
		c.player.AskForRematch()
	case communication.RematchAnswer:
		return serde.Bool.Serialize(c.player.RematchResponse()), nil
	}
	return "", nil
}

func (c *Client) initPlayers(args []string) error {
	ownId, err := serde.PlayerId.Deserialize(args[0])
	if err != nil {
		return err
	}
	ordered, err := serde.Strings.Deserialize(args[1])
	if err != nil {
		return err
	}
	if len(ordered) != len(game.PlayerIds) {
		return fmt.Errorf("%w: expected %d names, got %d", communication.ErrProtocol, len(game.PlayerIds), len(ordered))
	}
	rematch, err := serde.Bool.Deserialize(args[2])
	if err != nil {
		return err
	}
	names := make(map[game.PlayerId]string, len(ordered))
	for i, id := range game.PlayerIds {
		names[id] = ordered[i]
	}
	c.player.InitPlayers(ownId, names, rematch)
	return nil
}

