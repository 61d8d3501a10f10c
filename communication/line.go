package communication

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"unicode"
)

// lineTransport sends newline-terminated ASCII lines over a byte stream.
type lineTransport struct {
	conn   io.ReadWriteCloser
	reader *bufio.Reader
	writer *bufio.Writer
}

func NewLineTransport(conn io.ReadWriteCloser) Transport {
	return &lineTransport{
		conn:   conn,
		reader: bufio.NewReader(conn),
		writer: bufio.NewWriter(conn),
	}
}

// Dial connects to a host over TCP.
func Dial(address string) (Transport, error) {
	conn, err := net.Dial("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", address, err)
	}
	return NewLineTransport(conn), nil
}

func isClosedErr(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, net.ErrClosed) || errors.Is(err, io.ErrClosedPipe)
}

func (t *lineTransport) ReadLine() (string, error) {
	line, err := t.reader.ReadString('\n')
	if err != nil {
		if isClosedErr(err) {
			return "", ErrConnectionClosed
		}
		return "", fmt.Errorf("failed to read line: %w", err)
	}
	return strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r"), nil
}

func (t *lineTransport) WriteLine(line string) error {
	if err := checkLine(line); err != nil {
		return err
	}
	if _, err := t.writer.WriteString(line + "\n"); err != nil {
		return t.writeError(err)
	}
	if err := t.writer.Flush(); err != nil {
		return t.writeError(err)
	}
	return nil
}

func (t *lineTransport) writeError(err error) error {
	if isClosedErr(err) {
		return ErrConnectionClosed
	}
	return fmt.Errorf("failed to write line: %w", err)
}

func (t *lineTransport) Close() error {
	return t.conn.Close()
}

func checkLine(line string) error {
	for _, r := range line {
		if r > unicode.MaxASCII || r == '\n' {
			return fmt.Errorf("%w: line holds character %q", ErrProtocol, r)
		}
	}
	return nil
}
