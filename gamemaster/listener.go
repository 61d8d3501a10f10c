package gamemaster

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"railway/communication"
	"railway/config"

	"github.com/rs/zerolog/log"
)

// Listener waits for a remote peer to connect.
type Listener interface {
	Accept(ctx context.Context) (communication.Transport, error)
	Addr() string
	Close() error
}

// Listen opens a listener for the given transport kind.
func Listen(transport, address string) (Listener, error) {
	ln, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", address, err)
	}
	switch transport {
	case config.TransportTCP:
		return &tcpListener{ln: ln}, nil
	case config.TransportWebSocket:
		return newWebSocketListener(ln), nil
	default:
		_ = ln.Close()
		return nil, fmt.Errorf("unknown transport %q", transport)
	}
}

type tcpListener struct {
	ln net.Listener
}

func (l *tcpListener) Accept(ctx context.Context) (communication.Transport, error) {
	type accepted struct {
		conn net.Conn
		err  error
	}
	result := make(chan accepted, 1)
	go func() {
		conn, err := l.ln.Accept()
		result <- accepted{conn, err}
	}()

	select {
	case <-ctx.Done():
		_ = l.ln.Close()
		return nil, ctx.Err()
	case a := <-result:
		if a.err != nil {
			return nil, fmt.Errorf("failed to accept connection: %w", a.err)
		}
		log.Info().Str("peer", a.conn.RemoteAddr().String()).Msg("Peer connected")
		return communication.NewLineTransport(a.conn), nil
	}
}

func (l *tcpListener) Addr() string {
	return l.ln.Addr().String()
}

func (l *tcpListener) Close() error {
	return l.ln.Close()
}

// wsListener serves a single websocket upgrade on "/".
type wsListener struct {
	ln         net.Listener
	server     *http.Server
	transports chan communication.Transport
}

func newWebSocketListener(ln net.Listener) *wsListener {
	l := &wsListener{ln: ln, transports: make(chan communication.Transport)}
	mux := http.NewServeMux()
	mux.HandleFunc("/", l.upgrade)
	l.server = &http.Server{Handler: mux}
	go func() {
		if err := l.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Websocket server stopped")
		}
	}()
	return l
}

func (l *wsListener) upgrade(w http.ResponseWriter, r *http.Request) {
	transport, err := communication.Upgrade(w, r)
	if err != nil {
		log.Warn().Err(err).Msg("Rejected connection")
		return
	}
	select {
	case l.transports <- transport:
		log.Info().Str("peer", r.RemoteAddr).Msg("Peer connected")
	case <-r.Context().Done():
		_ = transport.Close()
	}
}

func (l *wsListener) Accept(ctx context.Context) (communication.Transport, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case t := <-l.transports:
		return t, nil
	}
}

func (l *wsListener) Addr() string {
	return l.ln.Addr().String()
}

func (l *wsListener) Close() error {
	return l.server.Close()
}
