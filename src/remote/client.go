package remote

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	quic "github.com/quic-go/quic-go"
)

const replyTimeout = 5 * time.Second

// Client sends commands to a Server over a single stream. It satisfies the
// same Executor interface as a local controller.
type Client struct {
	mu     sync.Mutex
	conn   *quic.Conn
	stream *quic.Stream
}

func Dial(ctx context.Context, addr string) (*Client, error) {
	conn, err := quic.DialAddr(ctx, addr, clientTLSConfig(), quicConfig())
	if err != nil {
		return nil, fmt.Errorf("quic dial: %w", err)
	}
	stream, err := conn.OpenStreamSync(ctx)
	if err != nil {
		_ = conn.CloseWithError(0, "open stream failed")
		return nil, fmt.Errorf("open stream: %w", err)
	}
	return &Client{conn: conn, stream: stream}, nil
}

// Execute sends one command line and waits for its reply. Errors reported by
// the server wrap ErrRemote.
func (c *Client) Execute(line string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.stream.SetDeadline(time.Now().Add(replyTimeout)); err != nil {
		return "", fmt.Errorf("set deadline: %w", err)
	}
	if err := writeFrame(c.stream, []byte(line)); err != nil {
		return "", err
	}
	payload, err := readFrame(c.stream)
	if err != nil {
		return "", fmt.Errorf("read reply: %w", err)
	}
	return decodeReply(payload)
}

func (c *Client) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

func (c *Client) Close() error {
	_ = c.stream.Close()
	return c.conn.CloseWithError(0, "bye")
}
