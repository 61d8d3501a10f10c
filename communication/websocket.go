package communication

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"
)

// wsTransport sends one protocol line per text message.
type wsTransport struct {
	conn *websocket.Conn
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewWebSocketTransport(conn *websocket.Conn) Transport {
	return &wsTransport{conn: conn}
}

// DialWebSocket connects to a host serving the protocol over websockets.
func DialWebSocket(url string) (Transport, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", url, err)
	}
	return NewWebSocketTransport(conn), nil
}

// Upgrade turns an HTTP request into a websocket transport.
func Upgrade(w http.ResponseWriter, r *http.Request) (Transport, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade connection: %w", err)
	}
	return NewWebSocketTransport(conn), nil
}

func (t *wsTransport) ReadLine() (string, error) {
	kind, data, err := t.conn.ReadMessage()
	if err != nil {
		var closeErr *websocket.CloseError
		if errors.As(err, &closeErr) || isClosedErr(err) {
			return "", ErrConnectionClosed
		}
		return "", fmt.Errorf("failed to read message: %w", err)
	}
	if kind != websocket.TextMessage {
		return "", fmt.Errorf("%w: unexpected message type %d", ErrProtocol, kind)
	}
	return string(data), nil
}

func (t *wsTransport) WriteLine(line string) error {
	if err := checkLine(line); err != nil {
		return err
	}
	if err := t.conn.WriteMessage(websocket.TextMessage, []byte(line)); err != nil {
		if errors.Is(err, websocket.ErrCloseSent) || isClosedErr(err) {
			return ErrConnectionClosed
		}
		return fmt.Errorf("failed to write message: %w", err)
	}
	return nil
}

func (t *wsTransport) Close() error {
	_ = t.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return t.conn.Close()
}
